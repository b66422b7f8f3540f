package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maheshrc27/content-studio/internal/models"
)

// PlatformClient posts to one social network with a connected account key.
type PlatformClient interface {
	Post(ctx context.Context, apiKey string, req models.PublishRequest) error
}

// SimulatedClient accepts every post and only logs it.
type SimulatedClient struct{}

func (SimulatedClient) Post(ctx context.Context, _ string, req models.PublishRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	slog.Info("publishing", "platform", req.Platform, "chars", len(req.Content), "media", req.MediaURL != nil)
	return nil
}

type SocialPublisher struct {
	accounts AccountService
	clients  map[models.Platform]PlatformClient
	fallback PlatformClient
}

// NewSocialPublisher routes each platform to its client. Platforms without an
// entry in clients use the simulated client.
func NewSocialPublisher(accounts AccountService, clients map[models.Platform]PlatformClient) *SocialPublisher {
	if clients == nil {
		clients = map[models.Platform]PlatformClient{}
	}
	return &SocialPublisher{accounts: accounts, clients: clients, fallback: SimulatedClient{}}
}

func (p *SocialPublisher) Publish(ctx context.Context, req models.PublishRequest) models.PublishResult {
	key, err := p.accounts.APIKey(ctx, req.Platform)
	if err != nil {
		slog.Info(err.Error())
		return models.PublishResult{Success: false, Message: fmt.Sprintf("Failed to publish to %s. Please try again.", req.Platform)}
	}
	if key == "" {
		return models.PublishResult{
			Success: false,
			Message: fmt.Sprintf("API key for %s is not set. Please connect your account first.", req.Platform),
		}
	}

	client, ok := p.clients[req.Platform]
	if !ok {
		client = p.fallback
	}
	if err := client.Post(ctx, key, req); err != nil {
		slog.Warn("publish failed", "platform", req.Platform, "error", err)
		return models.PublishResult{Success: false, Message: fmt.Sprintf("Failed to publish to %s: %v", req.Platform, err)}
	}
	return models.PublishResult{Success: true, Message: fmt.Sprintf("Content published to %s", req.Platform)}
}
