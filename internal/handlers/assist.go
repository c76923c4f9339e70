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

type AssistHandler struct {
	assistService *services.AssistService
}

func NewAssistHandler(assistService *services.AssistService) *AssistHandler {
	return &AssistHandler{assistService: assistService}
}

func (h *AssistHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.DocumentID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"document_id": "Document ID is required"}, r))
		return
	}

	summary, err := h.assistService.Summarize(r.Context(), userID, req.DocumentID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (h *AssistHandler) Explain(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.DocumentID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"document_id": "Document ID is required"}, r))
		return
	}

	explanation, err := h.assistService.Explain(r.Context(), userID, req.DocumentID, req.Concept)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"explanation": explanation})
}

func (h *AssistHandler) Chat(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.DocumentID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"document_id": "Document ID is required"}, r))
		return
	}

	answer, err := h.assistService.Chat(r.Context(), userID, req.DocumentID, req.Question)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Answer: answer})
}

func (h *AssistHandler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	docID, err := uuid.Parse(chi.URLParam(r, "documentId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid document ID", r))
		return
	}

	messages, err := h.assistService.History(r.Context(), userID, docID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if messages == nil {
		messages = []*models.ChatMessage{}
	}

	writeJSON(w, http.StatusOK, messages)
}
