package models

import (
	"time"
)

type SocialAccount struct {
	Platform     Platform  `db:"platform" json:"platform"`
	Username     string    `db:"username" json:"username"`
	Connected    bool      `db:"connected" json:"connected"`
	ProfileImage string    `db:"profile_image" json:"profileImage,omitempty"`
	APIKey       string    `db:"api_key" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
	UpdatedAt    time.Time `db:"updated_at" json:"-"`
}
