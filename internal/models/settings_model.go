package models

import "time"

type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

func (l Length) Valid() bool {
	return l == LengthShort || l == LengthMedium || l == LengthLong
}

// MaxTokens is the completion budget requested from a provider.
func (l Length) MaxTokens() int {
	switch l {
	case LengthShort:
		return 100
	case LengthLong:
		return 400
	default:
		return 200
	}
}

const DefaultTone = "professional"

type Settings struct {
	ID              int64     `db:"id" json:"id"`
	Provider        Provider  `db:"provider" json:"provider"`
	Model           string    `db:"model" json:"model"`
	Tone            string    `db:"tone" json:"tone"`
	Length          Length    `db:"length" json:"length"`
	IncludeHashtags bool      `db:"include_hashtags" json:"include_hashtags"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

func DefaultSettings() *Settings {
	return &Settings{
		Provider: ProviderMock,
		Tone:     DefaultTone,
		Length:   LengthMedium,
	}
}
