package models

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Title         string    `json:"title"`
	FileName      string    `json:"file_name"`
	FilePath      string    `json:"file_path"`
	FileSize      int64     `json:"file_size"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	Status        string    `json:"status"` // "processing" | "ready" | "failed"
	CreatedAt     time.Time `json:"created_at"`
}

// Chunk is a fixed-size word-count segment of a document's extracted text.
// Chunks reconstruct the document's word sequence when joined in index order.
type Chunk struct {
	Content    string `json:"content"`
	ChunkIndex int    `json:"chunk_index"`
}

type UpdateDocumentRequest struct {
	Title string `json:"title"`
}
