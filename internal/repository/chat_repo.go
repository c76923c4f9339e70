package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studypal-backend/internal/models"
)

type ChatRepo struct {
	pool *pgxpool.Pool
}

func NewChatRepo(pool *pgxpool.Pool) *ChatRepo {
	return &ChatRepo{pool: pool}
}

func (r *ChatRepo) Insert(ctx context.Context, m *models.ChatMessage) error {
	m.ID = uuid.New()
	query := `INSERT INTO chat_messages (id, user_id, document_id, role, content)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		m.ID, m.UserID, m.DocumentID, m.Role, m.Content,
	).Scan(&m.CreatedAt)
}

func (r *ChatRepo) ListByDocument(ctx context.Context, userID, documentID uuid.UUID) ([]*models.ChatMessage, error) {
	query := `SELECT id, user_id, document_id, role, content, created_at
		FROM chat_messages WHERE user_id = $1 AND document_id = $2 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		m := &models.ChatMessage{}
		err := rows.Scan(&m.ID, &m.UserID, &m.DocumentID, &m.Role, &m.Content, &m.CreatedAt)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (r *ChatRepo) DeleteByDocument(ctx context.Context, userID, documentID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		"DELETE FROM chat_messages WHERE user_id = $1 AND document_id = $2",
		userID, documentID,
	)
	return err
}
