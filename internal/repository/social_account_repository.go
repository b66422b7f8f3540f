package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/maheshrc27/content-studio/internal/models"
)

type SocialAccountRepository interface {
	List(ctx context.Context) ([]*models.SocialAccount, error)
	GetByPlatform(ctx context.Context, platform models.Platform) (*models.SocialAccount, error)
	Upsert(ctx context.Context, sa *models.SocialAccount) error
	Disconnect(ctx context.Context, platform models.Platform) error
}

type socialAccountRepository struct {
	db *sql.DB
}

func NewSocialAccountRepository(db *sql.DB) SocialAccountRepository {
	return &socialAccountRepository{db: db}
}

const socialAccountColumns = `platform, username, connected, profile_image, api_key, created_at, updated_at`

func scanSocialAccount(s rowScanner) (*models.SocialAccount, error) {
	var sa models.SocialAccount
	var platform string
	err := s.Scan(&platform, &sa.Username, &sa.Connected, &sa.ProfileImage, &sa.APIKey, &sa.CreatedAt, &sa.UpdatedAt)
	if err != nil {
		return nil, err
	}
	sa.Platform = models.Platform(platform)
	return &sa, nil
}

func (r *socialAccountRepository) List(ctx context.Context) ([]*models.SocialAccount, error) {
	query := `SELECT ` + socialAccountColumns + ` FROM social_accounts`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.SocialAccount
	for rows.Next() {
		sa, err := scanSocialAccount(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, sa)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return accounts, nil
}

// GetByPlatform returns nil without error when the platform was never connected.
func (r *socialAccountRepository) GetByPlatform(ctx context.Context, platform models.Platform) (*models.SocialAccount, error) {
	query := `SELECT ` + socialAccountColumns + ` FROM social_accounts WHERE platform = $1`

	sa, err := scanSocialAccount(r.db.QueryRowContext(ctx, query, string(platform)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return sa, nil
}

func (r *socialAccountRepository) Upsert(ctx context.Context, sa *models.SocialAccount) error {
	query := `
		INSERT INTO social_accounts (platform, username, connected, profile_image, api_key)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (platform) DO UPDATE SET
			username = EXCLUDED.username,
			connected = EXCLUDED.connected,
			profile_image = EXCLUDED.profile_image,
			api_key = EXCLUDED.api_key,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query, string(sa.Platform), sa.Username, sa.Connected, sa.ProfileImage, sa.APIKey)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *socialAccountRepository) Disconnect(ctx context.Context, platform models.Platform) error {
	query := `
		UPDATE social_accounts
		SET connected = false,
			username = '',
			profile_image = '',
			api_key = '',
			updated_at = CURRENT_TIMESTAMP
		WHERE platform = $1
	`
	_, err := r.db.ExecContext(ctx, query, string(platform))
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
