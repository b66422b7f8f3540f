package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/maheshrc27/content-studio/internal/models"
)

// settingsRowID is the id of the single generation settings row.
const settingsRowID = 1

type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, bool, error)
	Upsert(ctx context.Context, s *models.Settings) error
}

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, bool, error) {
	query := `SELECT id, provider, model, tone, length, include_hashtags, created_at, updated_at
		FROM generation_settings WHERE id = $1`

	var s models.Settings
	var provider, length string
	err := r.db.QueryRowContext(ctx, query, settingsRowID).Scan(
		&s.ID, &provider, &s.Model, &s.Tone, &length, &s.IncludeHashtags, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	s.Provider = models.Provider(provider)
	s.Length = models.Length(length)
	return &s, true, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, s *models.Settings) error {
	query := `
		INSERT INTO generation_settings (id, provider, model, tone, length, include_hashtags)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			provider = EXCLUDED.provider,
			model = EXCLUDED.model,
			tone = EXCLUDED.tone,
			length = EXCLUDED.length,
			include_hashtags = EXCLUDED.include_hashtags,
			updated_at = $7
	`
	_, err := r.db.ExecContext(ctx, query, settingsRowID, string(s.Provider), s.Model, s.Tone, string(s.Length), s.IncludeHashtags, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
