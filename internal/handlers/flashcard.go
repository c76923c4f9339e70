package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studypal-backend/internal/middleware"
	"studypal-backend/internal/models"
	"studypal-backend/internal/services"
)

type FlashcardHandler struct {
	flashService *services.FlashcardService
}

func NewFlashcardHandler(flashService *services.FlashcardService) *FlashcardHandler {
	return &FlashcardHandler{flashService: flashService}
}

func (h *FlashcardHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.GenerateFlashcardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.DocumentID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"document_id": "Document ID is required"}, r))
		return
	}

	set, cards, err := h.flashService.Generate(r.Context(), userID, req.DocumentID, req.Count)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"set":   set,
		"cards": cards,
	})
}

func (h *FlashcardHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	sets, err := h.flashService.ListSets(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if sets == nil {
		sets = []*models.FlashcardSet{}
	}

	writeJSON(w, http.StatusOK, sets)
}

func (h *FlashcardHandler) GetByDocument(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	docID, err := uuid.Parse(chi.URLParam(r, "documentId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid document ID", r))
		return
	}

	set, cards, err := h.flashService.GetByDocument(r.Context(), userID, docID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if cards == nil {
		cards = []models.Flashcard{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"set":   set,
		"cards": cards,
	})
}

func (h *FlashcardHandler) Review(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	cardID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid card ID", r))
		return
	}

	var req models.ReviewCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	card, err := h.flashService.Review(r.Context(), userID, cardID, req.Rating)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

func (h *FlashcardHandler) ToggleStar(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	cardID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid card ID", r))
		return
	}

	starred, err := h.flashService.ToggleStar(r.Context(), userID, cardID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"is_starred": starred})
}

func (h *FlashcardHandler) DeleteSet(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	setID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid set ID", r))
		return
	}

	if err := h.flashService.DeleteSet(r.Context(), userID, setID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Flashcard set deleted"})
}
