package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"studypal-backend/internal/models"
	"studypal-backend/internal/services"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			"validation error",
			&services.ValidationError{Fields: map[string]string{"email": "Invalid email format"}},
			http.StatusBadRequest, "VALIDATION_ERROR",
		},
		{
			"conflict",
			&services.ConflictError{Message: "Email already in use"},
			http.StatusConflict, "CONFLICT",
		},
		{
			"not found",
			&services.NotFoundError{Message: "Document not found"},
			http.StatusNotFound, "NOT_FOUND",
		},
		{
			"unauthorized",
			&services.UnauthorizedError{Message: "Invalid email or password"},
			http.StatusUnauthorized, "UNAUTHORIZED",
		},
		{
			"forbidden",
			&services.ForbiddenError{Message: "You do not have access to this document"},
			http.StatusForbidden, "FORBIDDEN",
		},
		{
			"empty generation",
			&services.GenerationError{Message: "Please try again."},
			http.StatusBadRequest, "AI_ERROR",
		},
		{
			"extraction failure",
			&services.ExtractionError{Path: "bad.pdf", Err: errors.New("not a PDF")},
			http.StatusBadRequest, "EXTRACTION_FAILED",
		},
		{
			"model unavailable",
			&services.CompletionError{Err: errors.New("connection refused")},
			http.StatusBadGateway, "AI_UNAVAILABLE",
		},
		{
			"unknown error",
			errors.New("boom"),
			http.StatusInternalServerError, "INTERNAL_ERROR",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Request-ID", "test-request")

			handleServiceError(rec, req, tc.err)

			if rec.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, rec.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error.Code != tc.expectedCode {
				t.Errorf("Expected code %q, got %q", tc.expectedCode, resp.Error.Code)
			}
			if resp.Error.RequestID != "test-request" {
				t.Errorf("Expected request ID to be echoed, got %q", resp.Error.RequestID)
			}
		})
	}
}

func TestHandleServiceError_ValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	handleServiceError(rec, req, &services.ValidationError{
		Fields: map[string]string{"password": "Password must be at least 6 characters"},
	})

	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Fields["password"] == "" {
		t.Error("Expected field-level validation message to be included")
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	writeJSON(rec, http.StatusCreated, map[string]string{"message": "ok"})

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}
}
