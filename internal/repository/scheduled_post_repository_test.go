package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scheduledPostRowColumns = []string{"id", "content_id", "platform", "scheduled_for", "status", "error"}

func TestScheduledPostRepository_ListDue(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewScheduledPostRepository(db)
	at := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = $1 AND scheduled_for <= $2`)).
		WithArgs("pending", at).
		WillReturnRows(sqlmock.NewRows(scheduledPostRowColumns).
			AddRow("s1", "c1", "twitter", at.Add(-time.Minute), "pending", ""))

	posts, err := repo.ListDue(context.Background(), at)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, models.PlatformTwitter, posts[0].Platform)
	assert.Equal(t, models.ScheduledPostStatusPending, posts[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledPostRepository_GetByIDNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewScheduledPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM scheduled_posts WHERE id = $1`)).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, models.ErrScheduledPostNotFound)
}

func TestScheduledPostRepository_Upsert(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewScheduledPostRepository(db)
	at := time.Date(2026, 10, 2, 9, 0, 0, 0, time.UTC)

	sp := &models.ScheduledPost{ID: "s1", ContentID: "c1", Platform: models.PlatformLinkedIn, ScheduledFor: at, Status: models.ScheduledPostStatusPending}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO scheduled_posts`)).
		WithArgs("s1", "c1", "linkedin", at, "pending", "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Upsert(context.Background(), sp))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledPostRepository_UpdateStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewScheduledPostRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE scheduled_posts SET status = $1, error = $2 WHERE id = $3`)).
		WithArgs("failed", "rate limited", "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdateStatus(context.Background(), "s1", models.ScheduledPostStatusFailed, "rate limited"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
