package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studypal-backend/internal/models"
)

type FlashcardRepo struct {
	pool *pgxpool.Pool
}

func NewFlashcardRepo(pool *pgxpool.Pool) *FlashcardRepo {
	return &FlashcardRepo{pool: pool}
}

// GetOrCreateSet returns the (user, document) set, creating it on first use.
// Generation always appends into this one set.
func (r *FlashcardRepo) GetOrCreateSet(ctx context.Context, userID, documentID uuid.UUID) (*models.FlashcardSet, error) {
	set, err := r.GetSetByUserAndDocument(ctx, userID, documentID)
	if err == nil {
		return set, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	set = &models.FlashcardSet{
		ID:         uuid.New(),
		UserID:     userID,
		DocumentID: documentID,
	}

	query := `INSERT INTO flashcard_sets (id, user_id, document_id, card_count)
		VALUES ($1, $2, $3, 0) RETURNING created_at`

	if err := r.pool.QueryRow(ctx, query, set.ID, userID, documentID).Scan(&set.CreatedAt); err != nil {
		return nil, err
	}
	return set, nil
}

func (r *FlashcardRepo) GetSetByUserAndDocument(ctx context.Context, userID, documentID uuid.UUID) (*models.FlashcardSet, error) {
	s := &models.FlashcardSet{}
	query := `SELECT id, user_id, document_id, card_count, created_at
		FROM flashcard_sets WHERE user_id = $1 AND document_id = $2`

	err := r.pool.QueryRow(ctx, query, userID, documentID).Scan(
		&s.ID, &s.UserID, &s.DocumentID, &s.CardCount, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *FlashcardRepo) GetSetByID(ctx context.Context, id uuid.UUID) (*models.FlashcardSet, error) {
	s := &models.FlashcardSet{}
	query := `SELECT id, user_id, document_id, card_count, created_at
		FROM flashcard_sets WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.DocumentID, &s.CardCount, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *FlashcardRepo) ListSetsByUser(ctx context.Context, userID uuid.UUID) ([]*models.FlashcardSet, error) {
	query := `SELECT id, user_id, document_id, card_count, created_at
		FROM flashcard_sets WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []*models.FlashcardSet
	for rows.Next() {
		s := &models.FlashcardSet{}
		err := rows.Scan(&s.ID, &s.UserID, &s.DocumentID, &s.CardCount, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	return sets, nil
}

// AppendCards adds newly generated cards to a set without touching the
// existing ones.
func (r *FlashcardRepo) AppendCards(ctx context.Context, setID uuid.UUID, cards []models.Flashcard) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := range cards {
		cards[i].ID = uuid.New()
		cards[i].SetID = setID

		_, err := tx.Exec(ctx,
			`INSERT INTO flashcard_cards (id, set_id, question, answer, difficulty, state)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			cards[i].ID, setID, cards[i].Question, cards[i].Answer, cards[i].Difficulty, cards[i].State,
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx,
		"UPDATE flashcard_sets SET card_count = card_count + $1 WHERE id = $2",
		len(cards), setID,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *FlashcardRepo) GetCardsBySet(ctx context.Context, setID uuid.UUID) ([]models.Flashcard, error) {
	query := `SELECT id, set_id, question, answer, difficulty, review_count, is_starred, last_reviewed_at,
		due, stability, fsrs_difficulty, elapsed_days, scheduled_days, reps, lapses, state
		FROM flashcard_cards WHERE set_id = $1 ORDER BY due ASC NULLS FIRST`

	rows, err := r.pool.Query(ctx, query, setID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		c := models.Flashcard{}
		err := rows.Scan(
			&c.ID, &c.SetID, &c.Question, &c.Answer, &c.Difficulty, &c.ReviewCount, &c.IsStarred, &c.LastReviewedAt,
			&c.Due, &c.Stability, &c.FSRSDifficulty, &c.ElapsedDays, &c.ScheduledDays, &c.Reps, &c.Lapses, &c.State,
		)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// GetCardByID loads a card together with the owning user id for access checks.
func (r *FlashcardRepo) GetCardByID(ctx context.Context, cardID uuid.UUID) (*models.Flashcard, uuid.UUID, error) {
	c := &models.Flashcard{}
	var ownerID uuid.UUID

	query := `SELECT c.id, c.set_id, c.question, c.answer, c.difficulty, c.review_count, c.is_starred, c.last_reviewed_at,
		c.due, c.stability, c.fsrs_difficulty, c.elapsed_days, c.scheduled_days, c.reps, c.lapses, c.state, s.user_id
		FROM flashcard_cards c JOIN flashcard_sets s ON c.set_id = s.id
		WHERE c.id = $1`

	err := r.pool.QueryRow(ctx, query, cardID).Scan(
		&c.ID, &c.SetID, &c.Question, &c.Answer, &c.Difficulty, &c.ReviewCount, &c.IsStarred, &c.LastReviewedAt,
		&c.Due, &c.Stability, &c.FSRSDifficulty, &c.ElapsedDays, &c.ScheduledDays, &c.Reps, &c.Lapses, &c.State,
		&ownerID,
	)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return c, ownerID, nil
}

// UpdateCardReview persists a card's post-review scheduling state.
func (r *FlashcardRepo) UpdateCardReview(ctx context.Context, c *models.Flashcard) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE flashcard_cards
		 SET review_count = $1, last_reviewed_at = $2, due = $3, stability = $4, fsrs_difficulty = $5,
		     elapsed_days = $6, scheduled_days = $7, reps = $8, lapses = $9, state = $10
		 WHERE id = $11`,
		c.ReviewCount, c.LastReviewedAt, c.Due, c.Stability, c.FSRSDifficulty,
		c.ElapsedDays, c.ScheduledDays, c.Reps, c.Lapses, c.State, c.ID,
	)
	return err
}

func (r *FlashcardRepo) ToggleStar(ctx context.Context, cardID uuid.UUID) (bool, error) {
	var starred bool
	err := r.pool.QueryRow(ctx,
		"UPDATE flashcard_cards SET is_starred = NOT is_starred WHERE id = $1 RETURNING is_starred",
		cardID,
	).Scan(&starred)
	return starred, err
}

func (r *FlashcardRepo) DeleteSet(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM flashcard_sets WHERE id = $1", id)
	return err
}

func (r *FlashcardRepo) DeleteByDocument(ctx context.Context, userID, documentID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		"DELETE FROM flashcard_sets WHERE user_id = $1 AND document_id = $2",
		userID, documentID,
	)
	return err
}

func (r *FlashcardRepo) CountSetsByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM flashcard_sets WHERE user_id = $1", userID).Scan(&count)
	return count, err
}

// CardStatsByUser returns total, reviewed, and starred card counts across
// all of a user's sets.
func (r *FlashcardRepo) CardStatsByUser(ctx context.Context, userID uuid.UUID) (total, reviewed, starred int, err error) {
	query := `SELECT COUNT(*),
		COUNT(*) FILTER (WHERE c.review_count > 0),
		COUNT(*) FILTER (WHERE c.is_starred)
		FROM flashcard_cards c JOIN flashcard_sets s ON c.set_id = s.id
		WHERE s.user_id = $1`

	err = r.pool.QueryRow(ctx, query, userID).Scan(&total, &reviewed, &starred)
	return total, reviewed, starred, err
}
