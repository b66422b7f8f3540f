package models

// PublishRequest is one platform call of a publish action.
type PublishRequest struct {
	Platform Platform `json:"platform"`
	Content  string   `json:"content"`
	MediaURL *string  `json:"mediaUrl,omitempty"`
}

type PublishResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
