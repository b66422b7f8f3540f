package models

import "time"

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	ProviderMock   Provider = "mock"
)

func (p Provider) Valid() bool {
	switch p {
	case ProviderOpenAI, ProviderGemini, ProviderMock:
		return true
	}
	return false
}

// RequiresKey reports whether the provider needs an API key before any call.
func (p Provider) RequiresKey() bool {
	return p == ProviderOpenAI || p == ProviderGemini
}

type Credential struct {
	ID        int64     `db:"id" json:"id"`
	Provider  Provider  `db:"provider" json:"provider"`
	APIKey    string    `db:"api_key" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ProviderStatus is what the settings screen shows per provider.
type ProviderStatus struct {
	Provider   Provider `json:"provider"`
	Configured bool     `json:"configured"`
	KeyPreview string   `json:"keyPreview,omitempty"`
	Message    string   `json:"message,omitempty"`
}
