// Package notify delivers the non-fatal, user-visible notices raised while
// the server degrades to local state (the toasts of the UI).
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Notification struct {
	Level       Level     `json:"level"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Feed is a Notifier that can also replay the most recent notifications.
type Feed interface {
	Notifier
	Recent(ctx context.Context, limit int) ([]Notification, error)
}

// LogNotifier only writes notifications to the structured log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n Notification) {
	attrs := []any{"title", n.Title, "description", n.Description}
	switch n.Level {
	case LevelError:
		slog.Error("notification", attrs...)
	case LevelWarning:
		slog.Warn("notification", attrs...)
	default:
		slog.Info("notification", attrs...)
	}
}

// MemoryFeed keeps the last capacity notifications in process.
type MemoryFeed struct {
	mu       sync.Mutex
	capacity int
	items    []Notification
}

func NewMemoryFeed(capacity int) *MemoryFeed {
	if capacity <= 0 {
		capacity = 50
	}
	return &MemoryFeed{capacity: capacity}
}

func (f *MemoryFeed) Notify(_ context.Context, n Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
	if len(f.items) > f.capacity {
		f.items = f.items[len(f.items)-f.capacity:]
	}
}

// Recent returns newest first.
func (f *MemoryFeed) Recent(_ context.Context, limit int) ([]Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit <= 0 || limit > len(f.items) {
		limit = len(f.items)
	}
	out := make([]Notification, 0, limit)
	for i := len(f.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.items[i])
	}
	return out, nil
}

// Multi fans a notification out to every notifier.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, nt := range m {
		nt.Notify(ctx, n)
	}
}

func Warning(title, description string) Notification {
	return Notification{Level: LevelWarning, Title: title, Description: description, CreatedAt: time.Now()}
}

func Error(title, description string) Notification {
	return Notification{Level: LevelError, Title: title, Description: description, CreatedAt: time.Now()}
}
