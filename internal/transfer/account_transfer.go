package transfer

import "github.com/maheshrc27/content-studio/internal/models"

type ConnectAccount struct {
	APIKey   string `json:"apiKey"`
	Username string `json:"username"`
}

type SaveCredential struct {
	Provider models.Provider `json:"provider"`
	APIKey   string          `json:"apiKey"`
}

type ChatCreation struct {
	Title string `json:"title"`
}

type ChatRename struct {
	Title string `json:"title"`
}

type ChatSend struct {
	Message  string          `json:"message"`
	Provider models.Provider `json:"provider"`
	Model    string          `json:"model"`
}

type ChatReply struct {
	User      *models.ChatMessage `json:"user"`
	Assistant *models.ChatMessage `json:"assistant"`
}
