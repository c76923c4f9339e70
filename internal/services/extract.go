package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractionError marks a file that could not be read as a PDF. Uploads that
// hit it must not persist any partial document state.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

type FileExtractService struct{}

func NewFileExtractService() *FileExtractService {
	return &FileExtractService{}
}

// ExtractTextFromPath reads the text layer of a PDF, pages joined by newline
// in page order. A valid PDF with no text layer (a scanned document) returns
// an empty string and no error; downstream treats that as a degenerate case.
func (s *FileExtractService) ExtractTextFromPath(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	var b strings.Builder
	totalPage := reader.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}

	return normalizeExtractedText(b.String()), nil
}

func normalizeExtractedText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	buf := bytes.Buffer{}

	emptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			emptyCount++
			if emptyCount > 1 {
				continue
			}
			buf.WriteString("\n")
			continue
		}
		emptyCount = 0
		buf.WriteString(trimmed)
		buf.WriteString("\n")
	}

	return strings.TrimSpace(buf.String())
}
