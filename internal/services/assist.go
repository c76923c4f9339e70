package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"studypal-backend/internal/models"
	"studypal-backend/internal/repository"
)

// AssistService covers the free-form AI operations: summaries, concept
// explanations, and document-scoped chat with persisted history.
type AssistService struct {
	chatRepo *repository.ChatRepo
	docRepo  *repository.DocumentRepo
	gemini   *GeminiService
}

func NewAssistService(chatRepo *repository.ChatRepo, docRepo *repository.DocumentRepo, gemini *GeminiService) *AssistService {
	return &AssistService{
		chatRepo: chatRepo,
		docRepo:  docRepo,
		gemini:   gemini,
	}
}

func (s *AssistService) Summarize(ctx context.Context, userID, documentID uuid.UUID) (string, error) {
	doc, err := fetchOwnedDocument(ctx, s.docRepo, userID, documentID)
	if err != nil {
		return "", err
	}

	summary, err := s.gemini.Summarize(ctx, documentID, doc.ExtractedText)
	if err != nil {
		return "", err
	}
	if summary == "" {
		return "", &GenerationError{Message: "The model did not return a summary. Please try again."}
	}
	return summary, nil
}

func (s *AssistService) Explain(ctx context.Context, userID, documentID uuid.UUID, concept string) (string, error) {
	concept = strings.TrimSpace(concept)
	if concept == "" {
		return "", &ValidationError{Fields: map[string]string{"concept": "Concept cannot be empty"}}
	}

	doc, err := fetchOwnedDocument(ctx, s.docRepo, userID, documentID)
	if err != nil {
		return "", err
	}

	explanation, err := s.gemini.Explain(ctx, concept, doc.ExtractedText)
	if err != nil {
		return "", err
	}
	if explanation == "" {
		return "", &GenerationError{Message: "The model did not return an explanation. Please try again."}
	}
	return explanation, nil
}

// Chat answers a question about the document and records both turns. The
// user's question is persisted even when the model call fails, so history
// reflects what was actually asked.
func (s *AssistService) Chat(ctx context.Context, userID, documentID uuid.UUID, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", &ValidationError{Fields: map[string]string{"question": "Question cannot be empty"}}
	}

	doc, err := fetchOwnedDocument(ctx, s.docRepo, userID, documentID)
	if err != nil {
		return "", err
	}

	userMsg := &models.ChatMessage{
		UserID:     userID,
		DocumentID: documentID,
		Role:       "user",
		Content:    question,
	}
	if err := s.chatRepo.Insert(ctx, userMsg); err != nil {
		return "", err
	}

	answer, err := s.gemini.Chat(ctx, question, doc.ExtractedText)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", &GenerationError{Message: "The model did not return an answer. Please try again."}
	}

	assistantMsg := &models.ChatMessage{
		UserID:     userID,
		DocumentID: documentID,
		Role:       "assistant",
		Content:    answer,
	}
	if err := s.chatRepo.Insert(ctx, assistantMsg); err != nil {
		return "", err
	}

	return answer, nil
}

func (s *AssistService) History(ctx context.Context, userID, documentID uuid.UUID) ([]*models.ChatMessage, error) {
	if _, err := fetchOwnedDocument(ctx, s.docRepo, userID, documentID); err != nil {
		return nil, err
	}
	return s.chatRepo.ListByDocument(ctx, userID, documentID)
}
