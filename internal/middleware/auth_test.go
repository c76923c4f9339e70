package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestJWTAuth_Middleware(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	userID := uuid.New()

	token, err := auth.GenerateAccessToken(userID, "user@example.com")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	var gotUserID uuid.UUID
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			handler.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, rec.Code)
			}
		})
	}

	if gotUserID != userID {
		t.Errorf("Expected user ID %s in context, got %s", userID, gotUserID)
	}
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	token, err := NewJWTAuth("secret-a").GenerateAccessToken(uuid.New(), "user@example.com")
	if err != nil {
		t.Fatal(err)
	}

	handler := NewJWTAuth("secret-b").Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not run with a token signed by another secret")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
