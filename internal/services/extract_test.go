package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestExtractTextFromPath_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	if err := os.WriteFile(path, []byte("plain text pretending to be a PDF"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewFileExtractService()
	_, err := svc.ExtractTextFromPath(path)

	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("Expected ExtractionError, got %v", err)
	}
}

func TestExtractTextFromPath_MissingFile(t *testing.T) {
	svc := NewFileExtractService()
	_, err := svc.ExtractTextFromPath(filepath.Join(t.TempDir(), "does-not-exist.pdf"))

	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("Expected ExtractionError, got %v", err)
	}
}

func TestNormalizeExtractedText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims lines", "  hello  \n  world  ", "hello\nworld"},
		{"normalizes CRLF", "a\r\nb\rc", "a\nb\nc"},
		{"collapses blank runs", "a\n\n\n\nb", "a\n\nb"},
		{"trims outer whitespace", "\n\n  text  \n\n", "text"},
		{"empty input", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeExtractedText(tc.input); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}
