package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/maheshrc27/content-studio/internal/models"
)

type ChatRepository interface {
	CreateSession(ctx context.Context, title string) (*models.ChatSession, error)
	GetSession(ctx context.Context, id string) (*models.ChatSession, error)
	ListSessions(ctx context.Context) ([]*models.ChatSession, error)
	RenameSession(ctx context.Context, id, title string) error
	RemoveSession(ctx context.Context, id string) error
	ListMessages(ctx context.Context, chatID string) ([]*models.ChatMessage, error)
	CreateMessage(ctx context.Context, m *models.ChatMessage) (*models.ChatMessage, error)
}

type chatRepository struct {
	db *sql.DB
}

func NewChatRepository(db *sql.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateSession(ctx context.Context, title string) (*models.ChatSession, error) {
	query := `INSERT INTO chat_sessions (title) VALUES ($1) RETURNING id, title, created_at, updated_at`

	var s models.ChatSession
	if err := r.db.QueryRowContext(ctx, query, title).Scan(&s.ID, &s.Title, &s.CreatedAt, &s.UpdatedAt); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return &s, nil
}

func (r *chatRepository) GetSession(ctx context.Context, id string) (*models.ChatSession, error) {
	query := `SELECT id, title, created_at, updated_at FROM chat_sessions WHERE id = $1`

	var s models.ChatSession
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Title, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrChatNotFound
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &s, nil
}

func (r *chatRepository) ListSessions(ctx context.Context) ([]*models.ChatSession, error) {
	query := `SELECT id, title, created_at, updated_at FROM chat_sessions ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.ChatSession
	for rows.Next() {
		var s models.ChatSession
		if err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt, &s.UpdatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}

func (r *chatRepository) RenameSession(ctx context.Context, id, title string) error {
	query := `UPDATE chat_sessions SET title = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, title, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrChatNotFound
	}
	return nil
}

// RemoveSession deletes the messages and then the session in one transaction.
func (r *chatRepository) RemoveSession(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_messages WHERE chat_id = $1`, id); err != nil {
		slog.Info(err.Error())
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_sessions WHERE id = $1`, id); err != nil {
		slog.Info(err.Error())
		return err
	}

	if err := tx.Commit(); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *chatRepository) ListMessages(ctx context.Context, chatID string) ([]*models.ChatMessage, error) {
	query := `SELECT id, chat_id, role, content, created_at FROM chat_messages
		WHERE chat_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, chatID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		var role string
		if err := rows.Scan(&m.ID, &m.ChatID, &role, &m.Content, &m.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		m.Role = models.ChatRole(role)
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// CreateMessage stores the message and bumps the session's updated_at.
func (r *chatRepository) CreateMessage(ctx context.Context, m *models.ChatMessage) (*models.ChatMessage, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO chat_messages (chat_id, role, content) VALUES ($1, $2, $3)
		RETURNING id, chat_id, role, content, created_at`

	var saved models.ChatMessage
	var role string
	err = tx.QueryRowContext(ctx, query, m.ChatID, string(m.Role), m.Content).
		Scan(&saved.ID, &saved.ChatID, &role, &saved.Content, &saved.CreatedAt)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	saved.Role = models.ChatRole(role)

	if _, err := tx.ExecContext(ctx, `UPDATE chat_sessions SET updated_at = CURRENT_TIMESTAMP WHERE id = $1`, m.ChatID); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &saved, nil
}
