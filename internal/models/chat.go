package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one persisted turn of a document-scoped conversation.
type ChatMessage struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	DocumentID uuid.UUID `json:"document_id"`
	Role       string    `json:"role"` // "user" or "assistant"
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type ChatRequest struct {
	DocumentID uuid.UUID `json:"document_id"`
	Question   string    `json:"question"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}

type SummaryRequest struct {
	DocumentID uuid.UUID `json:"document_id"`
}

type ExplainRequest struct {
	DocumentID uuid.UUID `json:"document_id"`
	Concept    string    `json:"concept"`
}
