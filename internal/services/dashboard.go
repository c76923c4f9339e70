package services

import (
	"context"
	"math"

	"github.com/google/uuid"

	"studypal-backend/internal/models"
	"studypal-backend/internal/repository"
)

type DashboardStats struct {
	Documents        int     `json:"documents"`
	FlashcardSets    int     `json:"flashcard_sets"`
	TotalCards       int     `json:"total_cards"`
	ReviewedCards    int     `json:"reviewed_cards"`
	StarredCards     int     `json:"starred_cards"`
	Quizzes          int     `json:"quizzes"`
	SubmittedQuizzes int     `json:"submitted_quizzes"`
	AverageScore     float64 `json:"average_score"`
}

type DashboardService struct {
	docRepo   *repository.DocumentRepo
	flashRepo *repository.FlashcardRepo
	quizRepo  *repository.QuizRepo
}

func NewDashboardService(docRepo *repository.DocumentRepo, flashRepo *repository.FlashcardRepo, quizRepo *repository.QuizRepo) *DashboardService {
	return &DashboardService{
		docRepo:   docRepo,
		flashRepo: flashRepo,
		quizRepo:  quizRepo,
	}
}

func (s *DashboardService) Stats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.Documents, err = s.docRepo.CountByUser(ctx, userID); err != nil {
		return nil, err
	}
	if stats.FlashcardSets, err = s.flashRepo.CountSetsByUser(ctx, userID); err != nil {
		return nil, err
	}
	if stats.TotalCards, stats.ReviewedCards, stats.StarredCards, err = s.flashRepo.CardStatsByUser(ctx, userID); err != nil {
		return nil, err
	}
	if stats.Quizzes, err = s.quizRepo.CountByUser(ctx, userID); err != nil {
		return nil, err
	}

	avg := 0.0
	if stats.SubmittedQuizzes, avg, err = s.quizRepo.SubmissionStatsByUser(ctx, userID); err != nil {
		return nil, err
	}
	stats.AverageScore = math.Round(avg*10) / 10

	return stats, nil
}

func (s *DashboardService) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Document, error) {
	if limit <= 0 || limit > 20 {
		limit = 5
	}
	return s.docRepo.RecentByUser(ctx, userID, limit)
}
