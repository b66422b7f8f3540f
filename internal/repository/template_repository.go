package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
	"github.com/maheshrc27/content-studio/internal/models"
)

type TemplateRepository interface {
	List(ctx context.Context) ([]*models.Template, error)
	Upsert(ctx context.Context, t *models.Template) error
}

type templateRepository struct {
	db *sql.DB
}

func NewTemplateRepository(db *sql.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) List(ctx context.Context) ([]*models.Template, error) {
	query := `SELECT id, name, preview_image, dimensions, category, platforms FROM templates ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	var templates []*models.Template
	for rows.Next() {
		var (
			t            models.Template
			previewImage sql.NullString
			dimensions   []byte
			category     sql.NullString
			platforms    pq.StringArray
		)
		if err := rows.Scan(&t.ID, &t.Name, &previewImage, &dimensions, &category, &platforms); err != nil {
			slog.Info(err.Error())
			return nil, fmt.Errorf("scan row: %w", err)
		}
		t.PreviewImage = previewImage.String
		t.Dimensions = parseDimensions(dimensions)
		t.Category = models.TemplateCategory(category.String)
		t.Platforms = toPlatforms(platforms)
		templates = append(templates, &t)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return templates, nil
}

func (r *templateRepository) Upsert(ctx context.Context, t *models.Template) error {
	query := `
		INSERT INTO templates (id, name, preview_image, dimensions, category, platforms)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			preview_image = EXCLUDED.preview_image,
			dimensions = EXCLUDED.dimensions,
			category = EXCLUDED.category,
			platforms = EXCLUDED.platforms
	`

	dimensions, err := json.Marshal(t.Dimensions)
	if err != nil {
		return fmt.Errorf("encode dimensions: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, t.ID, t.Name, t.PreviewImage, dimensions, string(t.Category), fromPlatforms(t.Platforms))
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
