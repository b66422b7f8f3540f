package models

import "time"

type ScheduledPostStatus string

const (
	ScheduledPostStatusPending   ScheduledPostStatus = "pending"
	ScheduledPostStatusPublished ScheduledPostStatus = "published"
	ScheduledPostStatusFailed    ScheduledPostStatus = "failed"
)

type ScheduledPost struct {
	ID           string              `json:"id"`
	ContentID    string              `json:"contentId"`
	Platform     Platform            `json:"platform"`
	ScheduledFor time.Time           `json:"scheduledFor"`
	Status       ScheduledPostStatus `json:"status"`
	Error        string              `json:"error,omitempty"`
}

func (p *ScheduledPost) Clone() *ScheduledPost {
	out := *p
	return &out
}
