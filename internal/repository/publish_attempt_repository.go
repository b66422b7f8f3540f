package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/content-studio/internal/models"
)

type PublishAttemptRepository interface {
	Create(ctx context.Context, pa *models.PublishAttempt) (int64, error)
	ListByContentID(ctx context.Context, contentID string) ([]*models.PublishAttempt, error)
}

type publishAttemptRepository struct {
	db *sql.DB
}

func NewPublishAttemptRepository(db *sql.DB) PublishAttemptRepository {
	return &publishAttemptRepository{db: db}
}

func (r *publishAttemptRepository) Create(ctx context.Context, pa *models.PublishAttempt) (int64, error) {
	query := `
		INSERT INTO publish_attempts (content_id, platform, success, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, pa.ContentID, string(pa.Platform), pa.Success, pa.Message).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *publishAttemptRepository) ListByContentID(ctx context.Context, contentID string) ([]*models.PublishAttempt, error) {
	query := `SELECT id, content_id, platform, success, message, created_at
		FROM publish_attempts WHERE content_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, contentID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var attempts []*models.PublishAttempt
	for rows.Next() {
		var pa models.PublishAttempt
		var platform string
		if err := rows.Scan(&pa.ID, &pa.ContentID, &platform, &pa.Success, &pa.Message, &pa.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		pa.Platform = models.Platform(platform)
		attempts = append(attempts, &pa)
	}
	return attempts, rows.Err()
}
