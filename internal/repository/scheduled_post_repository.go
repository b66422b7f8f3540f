package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/content-studio/internal/models"
)

type ScheduledPostRepository interface {
	List(ctx context.Context) ([]*models.ScheduledPost, error)
	GetByID(ctx context.Context, id string) (*models.ScheduledPost, error)
	ListDue(ctx context.Context, before time.Time) ([]*models.ScheduledPost, error)
	Upsert(ctx context.Context, sp *models.ScheduledPost) error
	UpdateStatus(ctx context.Context, id string, status models.ScheduledPostStatus, errMsg string) error
	RemoveByContentID(ctx context.Context, contentID string) error
}

type scheduledPostRepository struct {
	db *sql.DB
}

func NewScheduledPostRepository(db *sql.DB) ScheduledPostRepository {
	return &scheduledPostRepository{db: db}
}

const scheduledPostColumns = `id, content_id, platform, scheduled_for, status, error`

func scanScheduledPost(s rowScanner) (*models.ScheduledPost, error) {
	var sp models.ScheduledPost
	var platform, status string
	if err := s.Scan(&sp.ID, &sp.ContentID, &platform, &sp.ScheduledFor, &status, &sp.Error); err != nil {
		return nil, err
	}
	sp.Platform = models.Platform(platform)
	sp.Status = models.ScheduledPostStatus(status)
	return &sp, nil
}

func (r *scheduledPostRepository) query(ctx context.Context, query string, args ...any) ([]*models.ScheduledPost, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	var posts []*models.ScheduledPost
	for rows.Next() {
		sp, err := scanScheduledPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, fmt.Errorf("scan row: %w", err)
		}
		posts = append(posts, sp)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return posts, nil
}

func (r *scheduledPostRepository) List(ctx context.Context) ([]*models.ScheduledPost, error) {
	return r.query(ctx, `SELECT `+scheduledPostColumns+` FROM scheduled_posts ORDER BY scheduled_for`)
}

func (r *scheduledPostRepository) ListDue(ctx context.Context, before time.Time) ([]*models.ScheduledPost, error) {
	return r.query(ctx, `SELECT `+scheduledPostColumns+` FROM scheduled_posts
		WHERE status = $1 AND scheduled_for <= $2 ORDER BY scheduled_for`,
		string(models.ScheduledPostStatusPending), before)
}

func (r *scheduledPostRepository) GetByID(ctx context.Context, id string) (*models.ScheduledPost, error) {
	query := `SELECT ` + scheduledPostColumns + ` FROM scheduled_posts WHERE id = $1`

	sp, err := scanScheduledPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrScheduledPostNotFound
		}
		slog.Info(err.Error())
		return nil, fmt.Errorf("query row: %w", err)
	}
	return sp, nil
}

func (r *scheduledPostRepository) Upsert(ctx context.Context, sp *models.ScheduledPost) error {
	query := `
		INSERT INTO scheduled_posts (id, content_id, platform, scheduled_for, status, error)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			scheduled_for = EXCLUDED.scheduled_for,
			status = EXCLUDED.status,
			error = EXCLUDED.error
	`
	_, err := r.db.ExecContext(ctx, query, sp.ID, sp.ContentID, string(sp.Platform), sp.ScheduledFor, string(sp.Status), sp.Error)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *scheduledPostRepository) UpdateStatus(ctx context.Context, id string, status models.ScheduledPostStatus, errMsg string) error {
	query := `UPDATE scheduled_posts SET status = $1, error = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, string(status), errMsg, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *scheduledPostRepository) RemoveByContentID(ctx context.Context, contentID string) error {
	query := `DELETE FROM scheduled_posts WHERE content_id = $1`
	_, err := r.db.ExecContext(ctx, query, contentID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
