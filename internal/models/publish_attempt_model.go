package models

import "time"

// PublishAttempt records one platform call of a publish action.
type PublishAttempt struct {
	ID        int64     `db:"id" json:"id"`
	ContentID string    `db:"content_id" json:"content_id"`
	Platform  Platform  `db:"platform" json:"platform"`
	Success   bool      `db:"success" json:"success"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
