package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"studypal-backend/internal/models"
	"studypal-backend/internal/repository"
)

// QuizService generates multiple-choice quizzes from document text and
// grades submissions.
type QuizService struct {
	quizRepo *repository.QuizRepo
	docRepo  *repository.DocumentRepo
	gemini   *GeminiService
}

func NewQuizService(quizRepo *repository.QuizRepo, docRepo *repository.DocumentRepo, gemini *GeminiService) *QuizService {
	return &QuizService{
		quizRepo: quizRepo,
		docRepo:  docRepo,
		gemini:   gemini,
	}
}

// Generate creates a new quiz for the document. Each call is a fresh quiz;
// earlier quizzes for the same document stay untouched.
func (s *QuizService) Generate(ctx context.Context, userID, documentID uuid.UUID, numQuestions int) (*models.Quiz, error) {
	doc, err := fetchOwnedDocument(ctx, s.docRepo, userID, documentID)
	if err != nil {
		return nil, err
	}

	if numQuestions <= 0 {
		numQuestions = 5
	}

	questions, err := s.gemini.GenerateQuiz(ctx, doc.ExtractedText, numQuestions)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, &GenerationError{Message: "The model did not return any usable quiz questions. Please try again."}
	}

	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quiz questions: %w", err)
	}

	quiz := &models.Quiz{
		UserID:        userID,
		DocumentID:    documentID,
		QuestionsJSON: questionsJSON,
		QuestionCount: len(questions),
	}

	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) ListByDocument(ctx context.Context, userID, documentID uuid.UUID) ([]*models.Quiz, error) {
	if _, err := fetchOwnedDocument(ctx, s.docRepo, userID, documentID); err != nil {
		return nil, err
	}
	return s.quizRepo.ListByDocument(ctx, userID, documentID)
}

func (s *QuizService) Get(ctx context.Context, userID, quizID uuid.UUID) (*models.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Quiz not found"}
		}
		return nil, err
	}
	if quiz.UserID != userID {
		return nil, &ForbiddenError{Message: "You do not have access to this quiz"}
	}
	return quiz, nil
}

// Submit grades the answers against the quiz's questions and persists the
// outcome. Resubmission overwrites the previous score and results.
func (s *QuizService) Submit(ctx context.Context, userID, quizID uuid.UUID, answers []*string) (*models.Quiz, []models.QuizResult, error) {
	quiz, err := s.Get(ctx, userID, quizID)
	if err != nil {
		return nil, nil, err
	}

	var questions []models.QuizQuestion
	if err := json.Unmarshal(quiz.QuestionsJSON, &questions); err != nil {
		return nil, nil, fmt.Errorf("failed to decode quiz questions: %w", err)
	}

	score, results := ScoreQuiz(questions, answers)

	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode quiz results: %w", err)
	}

	if err := s.quizRepo.SaveSubmission(ctx, quiz.ID, score, resultsJSON); err != nil {
		return nil, nil, err
	}

	quiz.Score = score
	quiz.ResultsJSON = resultsJSON
	quiz.IsSubmitted = true
	return quiz, results, nil
}

// Results returns the stored grading of a submitted quiz.
func (s *QuizService) Results(ctx context.Context, userID, quizID uuid.UUID) (*models.Quiz, []models.QuizResult, error) {
	quiz, err := s.Get(ctx, userID, quizID)
	if err != nil {
		return nil, nil, err
	}
	if !quiz.IsSubmitted {
		return nil, nil, &NotFoundError{Message: "Quiz has not been submitted yet"}
	}

	var results []models.QuizResult
	if err := json.Unmarshal(quiz.ResultsJSON, &results); err != nil {
		return nil, nil, fmt.Errorf("failed to decode quiz results: %w", err)
	}
	return quiz, results, nil
}

func (s *QuizService) Delete(ctx context.Context, userID, quizID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, quizID); err != nil {
		return err
	}
	return s.quizRepo.Delete(ctx, quizID)
}
