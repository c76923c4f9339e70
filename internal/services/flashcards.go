package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	fsrs "github.com/open-spaced-repetition/go-fsrs"

	"studypal-backend/internal/models"
	"studypal-backend/internal/repository"
)

// FlashcardService generates cards from document text and schedules reviews
// with FSRS. Cards for a document accumulate in one per-user set.
type FlashcardService struct {
	flashRepo  *repository.FlashcardRepo
	docRepo    *repository.DocumentRepo
	gemini     *GeminiService
	fsrsParams fsrs.Parameters
}

func NewFlashcardService(flashRepo *repository.FlashcardRepo, docRepo *repository.DocumentRepo, gemini *GeminiService) *FlashcardService {
	return &FlashcardService{
		flashRepo:  flashRepo,
		docRepo:    docRepo,
		gemini:     gemini,
		fsrsParams: fsrs.DefaultParam(),
	}
}

// Generate asks the model for count cards and appends whatever survives
// validation to the document's set. Zero usable cards is a GenerationError,
// not a silent empty append.
func (s *FlashcardService) Generate(ctx context.Context, userID, documentID uuid.UUID, count int) (*models.FlashcardSet, []models.Flashcard, error) {
	doc, err := fetchOwnedDocument(ctx, s.docRepo, userID, documentID)
	if err != nil {
		return nil, nil, err
	}

	if count <= 0 {
		count = 10
	}

	cards, err := s.gemini.GenerateFlashcards(ctx, doc.ExtractedText, count)
	if err != nil {
		return nil, nil, err
	}
	if len(cards) == 0 {
		return nil, nil, &GenerationError{Message: "The model did not return any usable flashcards. Please try again."}
	}

	set, err := s.flashRepo.GetOrCreateSet(ctx, userID, documentID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.flashRepo.AppendCards(ctx, set.ID, cards); err != nil {
		return nil, nil, err
	}
	set.CardCount += len(cards)

	return set, cards, nil
}

func (s *FlashcardService) ListSets(ctx context.Context, userID uuid.UUID) ([]*models.FlashcardSet, error) {
	return s.flashRepo.ListSetsByUser(ctx, userID)
}

// GetByDocument returns the document's set with its cards, due-first.
func (s *FlashcardService) GetByDocument(ctx context.Context, userID, documentID uuid.UUID) (*models.FlashcardSet, []models.Flashcard, error) {
	if _, err := fetchOwnedDocument(ctx, s.docRepo, userID, documentID); err != nil {
		return nil, nil, err
	}

	set, err := s.flashRepo.GetSetByUserAndDocument(ctx, userID, documentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, &NotFoundError{Message: "No flashcards for this document yet"}
		}
		return nil, nil, err
	}

	cards, err := s.flashRepo.GetCardsBySet(ctx, set.ID)
	if err != nil {
		return nil, nil, err
	}
	return set, cards, nil
}

var ratingNames = map[string]fsrs.Rating{
	"again": fsrs.Again,
	"hard":  fsrs.Hard,
	"good":  fsrs.Good,
	"easy":  fsrs.Easy,
}

// Review applies one FSRS rating to a card and persists the new schedule.
func (s *FlashcardService) Review(ctx context.Context, userID, cardID uuid.UUID, rating string) (*models.Flashcard, error) {
	fsrsRating, ok := ratingNames[rating]
	if !ok {
		return nil, &ValidationError{Fields: map[string]string{"rating": "Rating must be one of: again, hard, good, easy"}}
	}

	card, ownerID, err := s.flashRepo.GetCardByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Card not found"}
		}
		return nil, err
	}
	if ownerID != userID {
		return nil, &ForbiddenError{Message: "You do not have access to this card"}
	}

	now := time.Now()
	scheduled := s.fsrsParams.Repeat(card.ToFSRSCard(), now)
	card.ApplyFSRSCard(scheduled[fsrsRating].Card)
	card.ReviewCount++
	card.LastReviewedAt = &now

	if err := s.flashRepo.UpdateCardReview(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *FlashcardService) ToggleStar(ctx context.Context, userID, cardID uuid.UUID) (bool, error) {
	_, ownerID, err := s.flashRepo.GetCardByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, &NotFoundError{Message: "Card not found"}
		}
		return false, err
	}
	if ownerID != userID {
		return false, &ForbiddenError{Message: "You do not have access to this card"}
	}

	return s.flashRepo.ToggleStar(ctx, cardID)
}

func (s *FlashcardService) DeleteSet(ctx context.Context, userID, setID uuid.UUID) error {
	set, err := s.flashRepo.GetSetByID(ctx, setID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Message: "Flashcard set not found"}
		}
		return err
	}
	if set.UserID != userID {
		return &ForbiddenError{Message: "You do not have access to this set"}
	}

	return s.flashRepo.DeleteSet(ctx, setID)
}
