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

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.DocumentID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"document_id": "Document ID is required"}, r))
		return
	}

	quiz, err := h.quizService.Generate(r.Context(), userID, req.DocumentID, req.NumQuestions)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, quiz)
}

func (h *QuizHandler) ListByDocument(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	docID, err := uuid.Parse(chi.URLParam(r, "documentId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid document ID", r))
		return
	}

	quizzes, err := h.quizService.ListByDocument(r.Context(), userID, docID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if quizzes == nil {
		quizzes = []*models.Quiz{}
	}

	writeJSON(w, http.StatusOK, quizzes)
}

func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid quiz ID", r))
		return
	}

	quiz, err := h.quizService.Get(r.Context(), userID, quizID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid quiz ID", r))
		return
	}

	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	quiz, results, err := h.quizService.Submit(r.Context(), userID, quizID, req.Answers)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"score":   quiz.Score,
		"results": results,
	})
}

func (h *QuizHandler) Results(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid quiz ID", r))
		return
	}

	quiz, results, err := h.quizService.Results(r.Context(), userID, quizID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"score":   quiz.Score,
		"results": results,
	})
}

func (h *QuizHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid quiz ID", r))
		return
	}

	if err := h.quizService.Delete(r.Context(), userID, quizID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Quiz deleted"})
}
