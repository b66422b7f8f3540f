package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/maheshrc27/content-studio/internal/models"
)

type ContentRepository interface {
	List(ctx context.Context) ([]*models.Content, error)
	GetByID(ctx context.Context, id string) (*models.Content, error)
	Create(ctx context.Context, c *models.Content) (*models.Content, error)
	Update(ctx context.Context, id string, patch models.ContentPatch, updatedAt time.Time) error
	Remove(ctx context.Context, id string) error
}

type contentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) ContentRepository {
	return &contentRepository{db: db}
}

const contentColumns = `id, title, generated_text, edited_text, selected_template_id, image_url,
	customizations, platforms, scheduled_for, status, created_at, updated_at`

// contentRow is the snake_case shape of a row in the content table.
type contentRow struct {
	ID                 string
	Title              string
	GeneratedText      sql.NullString
	EditedText         sql.NullString
	SelectedTemplateID sql.NullString
	ImageURL           sql.NullString
	Customizations     []byte
	Platforms          pq.StringArray
	ScheduledFor       sql.NullTime
	Status             sql.NullString
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(s rowScanner) (*models.Content, error) {
	var r contentRow
	err := s.Scan(&r.ID, &r.Title, &r.GeneratedText, &r.EditedText, &r.SelectedTemplateID, &r.ImageURL,
		&r.Customizations, &r.Platforms, &r.ScheduledFor, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return r.toContent(), nil
}

func (r *contentRow) toContent() *models.Content {
	c := &models.Content{
		ID:                 r.ID,
		Title:              r.Title,
		GeneratedText:      r.GeneratedText.String,
		EditedText:         r.EditedText.String,
		SelectedTemplateID: nullStringPtr(r.SelectedTemplateID),
		ImageURL:           nullStringPtr(r.ImageURL),
		Customizations:     decodeCustomizations(r.Customizations),
		Platforms:          toPlatforms(r.Platforms),
		Status:             models.ContentStatus(r.Status.String),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.ScheduledFor.Valid {
		t := r.ScheduledFor.Time
		c.ScheduledFor = &t
	}
	if !c.Status.Valid() {
		c.Status = models.ContentStatusDraft
	}
	return c
}

func (r *contentRepository) List(ctx context.Context) ([]*models.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM content ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	var contents []*models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, fmt.Errorf("scan row: %w", err)
		}
		contents = append(contents, c)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return contents, nil
}

func (r *contentRepository) GetByID(ctx context.Context, id string) (*models.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM content WHERE id = $1`

	c, err := scanContent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrContentNotFound
		}
		slog.Info(err.Error())
		return nil, err
	}
	return c, nil
}

func (r *contentRepository) Create(ctx context.Context, c *models.Content) (*models.Content, error) {
	query := `
		INSERT INTO content (title, generated_text, edited_text, selected_template_id, image_url,
			customizations, platforms, scheduled_for, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + contentColumns

	customizations, err := encodeCustomizations(c.Customizations)
	if err != nil {
		return nil, err
	}

	created, err := scanContent(r.db.QueryRowContext(ctx, query,
		c.Title,
		c.GeneratedText,
		c.EditedText,
		ptrNullString(c.SelectedTemplateID),
		ptrNullString(c.ImageURL),
		customizations,
		fromPlatforms(c.Platforms),
		ptrNullTime(c.ScheduledFor),
		string(c.Status),
	))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return created, nil
}

func (r *contentRepository) Update(ctx context.Context, id string, patch models.ContentPatch, updatedAt time.Time) error {
	query, args, err := buildContentUpdate(id, patch, updatedAt)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	if affected == 0 {
		return models.ErrContentNotFound
	}
	return nil
}

// buildContentUpdate renders an UPDATE touching only the columns set in patch.
func buildContentUpdate(id string, patch models.ContentPatch, updatedAt time.Time) (string, []any, error) {
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.GeneratedText != nil {
		add("generated_text", *patch.GeneratedText)
	}
	if patch.EditedText != nil {
		add("edited_text", *patch.EditedText)
	}
	if patch.SelectedTemplateID.Set {
		add("selected_template_id", ptrNullString(patch.SelectedTemplateID.Value))
	}
	if patch.ImageURL.Set {
		add("image_url", ptrNullString(patch.ImageURL.Value))
	}
	if patch.Customizations != nil {
		raw, err := encodeCustomizations(patch.Customizations)
		if err != nil {
			return "", nil, err
		}
		add("customizations", raw)
	}
	if patch.Platforms != nil {
		add("platforms", fromPlatforms(models.NormalizePlatforms(patch.Platforms)))
	}
	if patch.ScheduledFor.Set {
		add("scheduled_for", ptrNullTime(patch.ScheduledFor.Value))
	}
	if patch.Status != nil {
		add("status", string(*patch.Status))
	}
	add("updated_at", updatedAt)

	args = append(args, id)
	query := fmt.Sprintf("UPDATE content SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	return query, args, nil
}

func (r *contentRepository) Remove(ctx context.Context, id string) error {
	query := `DELETE FROM content WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func encodeCustomizations(m map[string]any) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode customizations: %w", err)
	}
	return raw, nil
}

func decodeCustomizations(raw []byte) map[string]any {
	m := map[string]any{}
	if len(raw) == 0 {
		return m
	}
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return map[string]any{}
	}
	return m
}
