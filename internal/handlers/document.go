package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studypal-backend/internal/middleware"
	"studypal-backend/internal/models"
	"studypal-backend/internal/services"
)

const maxUploadBytes = 20 << 20 // 20 MB

var pdfMagic = []byte("%PDF-")

type DocumentHandler struct {
	docService  *services.DocumentService
	storagePath string
}

func NewDocumentHandler(docService *services.DocumentService, storagePath string) *DocumentHandler {
	return &DocumentHandler{docService: docService, storagePath: storagePath}
}

// Upload accepts a multipart PDF, stores it under the user's directory, and
// runs the ingestion pipeline synchronously. The response carries the ready
// document; there is no background processing to poll for.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("FILE_TOO_LARGE", "File exceeds the 20 MB upload limit", r))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Missing file field", r))
		return
	}
	defer file.Close()

	// Check the magic bytes rather than trusting the filename.
	magic := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(file, magic); err != nil || !bytes.Equal(magic, pdfMagic) {
		writeJSON(w, http.StatusBadRequest, errorResp("UNSUPPORTED_FORMAT", "Only PDF files are supported", r))
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to read uploaded file", r))
		return
	}

	relPath := filepath.Join("users", userID.String(), uuid.NewString()+".pdf")
	fullPath := filepath.Join(h.storagePath, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store uploaded file", r))
		return
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store uploaded file", r))
		return
	}

	size, err := io.Copy(dst, file)
	dst.Close()
	if err != nil {
		os.Remove(fullPath)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store uploaded file", r))
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		title = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	}

	doc, err := h.docService.Ingest(r.Context(), userID, title, header.Filename, relPath, size)
	if err != nil {
		os.Remove(fullPath)
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	docs, err := h.docService.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if docs == nil {
		docs = []*models.Document{}
	}

	writeJSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	docID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid document ID", r))
		return
	}

	doc, err := h.docService.GetForUser(r.Context(), userID, docID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) GetChunks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	docID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid document ID", r))
		return
	}

	chunks, err := h.docService.GetChunks(r.Context(), userID, docID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if chunks == nil {
		chunks = []models.Chunk{}
	}

	writeJSON(w, http.StatusOK, chunks)
}

func (h *DocumentHandler) Rename(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	docID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid document ID", r))
		return
	}

	var req models.UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	doc, err := h.docService.Rename(r.Context(), userID, docID, req.Title)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	docID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid document ID", r))
		return
	}

	if err := h.docService.DeleteForUser(r.Context(), userID, docID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Document deleted"})
}
