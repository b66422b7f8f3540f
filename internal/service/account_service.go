package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/maheshrc27/content-studio/internal/repository"
	"github.com/maheshrc27/content-studio/pkg/utils"
)

type AccountService interface {
	List(ctx context.Context) ([]*models.SocialAccount, error)
	Connect(ctx context.Context, platform models.Platform, apiKey, username string) (*models.SocialAccount, error)
	Disconnect(ctx context.Context, platform models.Platform) error
	IsConnected(ctx context.Context, platform models.Platform) (bool, error)
	APIKey(ctx context.Context, platform models.Platform) (string, error)
}

type accountService struct {
	sa     repository.SocialAccountRepository
	sealer *utils.Sealer
}

func NewAccountService(sa repository.SocialAccountRepository, sealer *utils.Sealer) AccountService {
	return &accountService{
		sa:     sa,
		sealer: sealer,
	}
}

// List returns every supported platform, disconnected ones included.
func (s *accountService) List(ctx context.Context) ([]*models.SocialAccount, error) {
	stored, err := s.sa.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list social accounts: %w", err)
	}

	byPlatform := make(map[models.Platform]*models.SocialAccount, len(stored))
	for _, acc := range stored {
		byPlatform[acc.Platform] = acc
	}

	accounts := make([]*models.SocialAccount, 0, len(models.Platforms))
	for _, p := range models.Platforms {
		if acc, ok := byPlatform[p]; ok {
			accounts = append(accounts, acc)
			continue
		}
		accounts = append(accounts, &models.SocialAccount{Platform: p})
	}
	return accounts, nil
}

func (s *accountService) Connect(ctx context.Context, platform models.Platform, apiKey, username string) (*models.SocialAccount, error) {
	if !platform.Valid() {
		slog.Info(models.ErrInvalidPlatform.Error(), "platform", platform)
		return nil, models.ErrInvalidPlatform
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, models.ErrEmptyAPIKey
	}
	if username == "" {
		username = "user_" + string(platform)
	}

	encrypted, err := s.sealer.Encrypt(apiKey)
	if err != nil {
		return nil, fmt.Errorf("encrypt api key: %w", err)
	}

	acc := &models.SocialAccount{
		Platform:     platform,
		Username:     username,
		Connected:    true,
		ProfileImage: fmt.Sprintf("https://via.placeholder.com/40?text=%s", strings.ToUpper(string(platform)[:1])),
		APIKey:       encrypted,
	}
	if err := s.sa.Upsert(ctx, acc); err != nil {
		return nil, fmt.Errorf("save social account: %w", err)
	}
	return acc, nil
}

func (s *accountService) Disconnect(ctx context.Context, platform models.Platform) error {
	if !platform.Valid() {
		return models.ErrInvalidPlatform
	}
	if err := s.sa.Disconnect(ctx, platform); err != nil {
		return fmt.Errorf("disconnect %s: %w", platform, err)
	}
	return nil
}

func (s *accountService) IsConnected(ctx context.Context, platform models.Platform) (bool, error) {
	acc, err := s.sa.GetByPlatform(ctx, platform)
	if err != nil {
		return false, err
	}
	return acc != nil && acc.Connected && acc.APIKey != "", nil
}

// APIKey returns the decrypted key, or "" when the platform is not connected.
func (s *accountService) APIKey(ctx context.Context, platform models.Platform) (string, error) {
	acc, err := s.sa.GetByPlatform(ctx, platform)
	if err != nil {
		return "", err
	}
	if acc == nil || !acc.Connected || acc.APIKey == "" {
		return "", nil
	}
	return s.sealer.Decrypt(acc.APIKey)
}
