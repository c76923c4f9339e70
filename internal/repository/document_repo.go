package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studypal-backend/internal/models"
)

type DocumentRepo struct {
	pool *pgxpool.Pool
}

func NewDocumentRepo(pool *pgxpool.Pool) *DocumentRepo {
	return &DocumentRepo{pool: pool}
}

// Create persists the document and its chunks in a single transaction, so an
// ingestion failure never leaves a partial chunk set behind.
func (r *DocumentRepo) Create(ctx context.Context, d *models.Document, chunks []models.Chunk) error {
	d.ID = uuid.New()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO documents (id, user_id, title, file_name, file_path, file_size, extracted_text, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at`

	err = tx.QueryRow(ctx, query,
		d.ID, d.UserID, d.Title, d.FileName, d.FilePath, d.FileSize, d.ExtractedText, d.Status,
	).Scan(&d.CreatedAt)
	if err != nil {
		return err
	}

	for _, c := range chunks {
		_, err := tx.Exec(ctx,
			"INSERT INTO document_chunks (document_id, chunk_index, content) VALUES ($1, $2, $3)",
			d.ID, c.ChunkIndex, c.Content,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *DocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	d := &models.Document{}
	query := `SELECT id, user_id, title, file_name, file_path, file_size, extracted_text, status, created_at
		FROM documents WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.UserID, &d.Title, &d.FileName, &d.FilePath, &d.FileSize, &d.ExtractedText, &d.Status, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListByUser returns document metadata without the extracted text, which can
// run to megabytes per row.
func (r *DocumentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Document, error) {
	query := `SELECT id, user_id, title, file_name, file_path, file_size, status, created_at
		FROM documents WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		d := &models.Document{}
		err := rows.Scan(&d.ID, &d.UserID, &d.Title, &d.FileName, &d.FilePath, &d.FileSize, &d.Status, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}

func (r *DocumentRepo) GetChunks(ctx context.Context, documentID uuid.UUID) ([]models.Chunk, error) {
	query := `SELECT chunk_index, content FROM document_chunks
		WHERE document_id = $1 ORDER BY chunk_index ASC`

	rows, err := r.pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []models.Chunk
	for rows.Next() {
		c := models.Chunk{}
		if err := rows.Scan(&c.ChunkIndex, &c.Content); err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
	}
	return chunks, nil
}

func (r *DocumentRepo) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	_, err := r.pool.Exec(ctx, "UPDATE documents SET title = $1 WHERE id = $2", title, id)
	return err
}

func (r *DocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM documents WHERE id = $1", id)
	return err
}

func (r *DocumentRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM documents WHERE user_id = $1", userID).Scan(&count)
	return count, err
}

func (r *DocumentRepo) RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Document, error) {
	query := `SELECT id, user_id, title, file_name, file_path, file_size, status, created_at
		FROM documents WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		d := &models.Document{}
		err := rows.Scan(&d.ID, &d.UserID, &d.Title, &d.FileName, &d.FilePath, &d.FileSize, &d.Status, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}
