package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studypal-backend/internal/models"
)

type QuizRepo struct {
	pool *pgxpool.Pool
}

func NewQuizRepo(pool *pgxpool.Pool) *QuizRepo {
	return &QuizRepo{pool: pool}
}

func (r *QuizRepo) Create(ctx context.Context, q *models.Quiz) error {
	q.ID = uuid.New()
	query := `INSERT INTO quizzes (id, user_id, document_id, questions, question_count, is_submitted)
		VALUES ($1, $2, $3, $4, $5, false) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		q.ID, q.UserID, q.DocumentID, q.QuestionsJSON, q.QuestionCount,
	).Scan(&q.CreatedAt)
}

func (r *QuizRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	q := &models.Quiz{}
	query := `SELECT id, user_id, document_id, questions, question_count, score, results, is_submitted, created_at
		FROM quizzes WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.UserID, &q.DocumentID, &q.QuestionsJSON, &q.QuestionCount,
		&q.Score, &q.ResultsJSON, &q.IsSubmitted, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ListByDocument returns quiz metadata without the question payloads.
func (r *QuizRepo) ListByDocument(ctx context.Context, userID, documentID uuid.UUID) ([]*models.Quiz, error) {
	query := `SELECT id, user_id, document_id, question_count, score, is_submitted, created_at
		FROM quizzes WHERE user_id = $1 AND document_id = $2 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []*models.Quiz
	for rows.Next() {
		q := &models.Quiz{}
		err := rows.Scan(&q.ID, &q.UserID, &q.DocumentID, &q.QuestionCount, &q.Score, &q.IsSubmitted, &q.CreatedAt)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, nil
}

// SaveSubmission overwrites any previous submission for the quiz.
func (r *QuizRepo) SaveSubmission(ctx context.Context, id uuid.UUID, score int, results json.RawMessage) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE quizzes SET score = $1, results = $2, is_submitted = true WHERE id = $3",
		score, results, id,
	)
	return err
}

func (r *QuizRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM quizzes WHERE id = $1", id)
	return err
}

func (r *QuizRepo) DeleteByDocument(ctx context.Context, userID, documentID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		"DELETE FROM quizzes WHERE user_id = $1 AND document_id = $2",
		userID, documentID,
	)
	return err
}

func (r *QuizRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM quizzes WHERE user_id = $1", userID).Scan(&count)
	return count, err
}

// SubmissionStatsByUser returns the number of submitted quizzes and their
// average score. Average is 0 when nothing has been submitted yet.
func (r *QuizRepo) SubmissionStatsByUser(ctx context.Context, userID uuid.UUID) (submitted int, avgScore float64, err error) {
	query := `SELECT COUNT(*), COALESCE(AVG(score), 0)
		FROM quizzes WHERE user_id = $1 AND is_submitted`

	err = r.pool.QueryRow(ctx, query, userID).Scan(&submitted, &avgScore)
	return submitted, avgScore, err
}
