package services

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"studypal-backend/internal/models"
	"studypal-backend/internal/repository"
)

// DocumentService runs the ingestion pipeline (extract, chunk, persist) and
// the cascading delete for a document's dependent records.
type DocumentService struct {
	docRepo     *repository.DocumentRepo
	flashRepo   *repository.FlashcardRepo
	quizRepo    *repository.QuizRepo
	chatRepo    *repository.ChatRepo
	extract     *FileExtractService
	storagePath string
}

func NewDocumentService(
	docRepo *repository.DocumentRepo,
	flashRepo *repository.FlashcardRepo,
	quizRepo *repository.QuizRepo,
	chatRepo *repository.ChatRepo,
	extract *FileExtractService,
	storagePath string,
) *DocumentService {
	return &DocumentService{
		docRepo:     docRepo,
		flashRepo:   flashRepo,
		quizRepo:    quizRepo,
		chatRepo:    chatRepo,
		extract:     extract,
		storagePath: storagePath,
	}
}

// Ingest extracts the PDF at relPath, chunks the text, and persists the
// document with its chunks in one transaction. On extraction failure nothing
// is persisted and the error propagates to the caller.
func (s *DocumentService) Ingest(ctx context.Context, userID uuid.UUID, title, fileName, relPath string, fileSize int64) (*models.Document, error) {
	fullPath := filepath.Join(s.storagePath, relPath)

	text, err := s.extract.ExtractTextFromPath(fullPath)
	if err != nil {
		return nil, err
	}

	chunks := ChunkText(text, DefaultChunkSize)

	doc := &models.Document{
		UserID:        userID,
		Title:         title,
		FileName:      fileName,
		FilePath:      relPath,
		FileSize:      fileSize,
		ExtractedText: text,
		Status:        "ready",
	}

	if err := s.docRepo.Create(ctx, doc, chunks); err != nil {
		return nil, err
	}

	return doc, nil
}

// Delete removes a document and everything that hangs off it: flashcard
// sets, quizzes, chat history, the stored file, then the document row.
// There is no rollback; a failed file removal is logged and skipped so the
// database stays consistent even when the disk is not.
func (s *DocumentService) Delete(ctx context.Context, doc *models.Document) error {
	if err := s.flashRepo.DeleteByDocument(ctx, doc.UserID, doc.ID); err != nil {
		return err
	}
	if err := s.quizRepo.DeleteByDocument(ctx, doc.UserID, doc.ID); err != nil {
		return err
	}
	if err := s.chatRepo.DeleteByDocument(ctx, doc.UserID, doc.ID); err != nil {
		return err
	}

	fullPath := filepath.Join(s.storagePath, doc.FilePath)
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove stored file %s for document %s: %v", fullPath, doc.ID, err)
	}

	return s.docRepo.Delete(ctx, doc.ID)
}

func (s *DocumentService) List(ctx context.Context, userID uuid.UUID) ([]*models.Document, error) {
	return s.docRepo.ListByUser(ctx, userID)
}

// GetForUser loads a document and enforces ownership.
func (s *DocumentService) GetForUser(ctx context.Context, userID, documentID uuid.UUID) (*models.Document, error) {
	return fetchOwnedDocument(ctx, s.docRepo, userID, documentID)
}

func (s *DocumentService) GetChunks(ctx context.Context, userID, documentID uuid.UUID) ([]models.Chunk, error) {
	if _, err := s.GetForUser(ctx, userID, documentID); err != nil {
		return nil, err
	}
	return s.docRepo.GetChunks(ctx, documentID)
}

func (s *DocumentService) Rename(ctx context.Context, userID, documentID uuid.UUID, title string) (*models.Document, error) {
	doc, err := s.GetForUser(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &ValidationError{Fields: map[string]string{"title": "Title cannot be empty"}}
	}

	if err := s.docRepo.UpdateTitle(ctx, documentID, title); err != nil {
		return nil, err
	}
	doc.Title = title
	return doc, nil
}

func (s *DocumentService) DeleteForUser(ctx context.Context, userID, documentID uuid.UUID) error {
	doc, err := s.GetForUser(ctx, userID, documentID)
	if err != nil {
		return err
	}
	return s.Delete(ctx, doc)
}

// fetchOwnedDocument is the shared ownership gate for every document-scoped
// operation. Not found and owned-by-someone-else are distinct failures.
func fetchOwnedDocument(ctx context.Context, docRepo *repository.DocumentRepo, userID, documentID uuid.UUID) (*models.Document, error) {
	doc, err := docRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Document not found"}
		}
		return nil, err
	}
	if doc.UserID != userID {
		return nil, &ForbiddenError{Message: "You do not have access to this document"}
	}
	return doc, nil
}
