package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/maheshrc27/content-studio/internal/models"
)

type CredentialRepository interface {
	GetByProvider(ctx context.Context, provider models.Provider) (*models.Credential, bool, error)
	List(ctx context.Context) ([]*models.Credential, error)
	Upsert(ctx context.Context, c *models.Credential) error
	Remove(ctx context.Context, provider models.Provider) error
}

type credentialRepository struct {
	db *sql.DB
}

func NewCredentialRepository(db *sql.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) GetByProvider(ctx context.Context, provider models.Provider) (*models.Credential, bool, error) {
	query := "SELECT id, provider, api_key, created_at, updated_at FROM credentials WHERE provider = $1"

	var c models.Credential
	var p string
	err := r.db.QueryRowContext(ctx, query, string(provider)).Scan(&c.ID, &p, &c.APIKey, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	c.Provider = models.Provider(p)
	return &c, true, nil
}

func (r *credentialRepository) List(ctx context.Context) ([]*models.Credential, error) {
	query := `SELECT id, provider, api_key, created_at, updated_at FROM credentials ORDER BY provider`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var creds []*models.Credential
	for rows.Next() {
		var c models.Credential
		var p string
		if err := rows.Scan(&c.ID, &p, &c.APIKey, &c.CreatedAt, &c.UpdatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		c.Provider = models.Provider(p)
		creds = append(creds, &c)
	}
	return creds, rows.Err()
}

func (r *credentialRepository) Upsert(ctx context.Context, c *models.Credential) error {
	query := `
		INSERT INTO credentials (provider, api_key)
		VALUES ($1, $2)
		ON CONFLICT (provider) DO UPDATE SET
			api_key = EXCLUDED.api_key,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query, string(c.Provider), c.APIKey)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *credentialRepository) Remove(ctx context.Context, provider models.Provider) error {
	query := `DELETE FROM credentials WHERE provider = $1`
	_, err := r.db.ExecContext(ctx, query, string(provider))
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
