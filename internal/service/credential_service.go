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

// CredentialService stores the AI provider keys, encrypted at rest.
type CredentialService interface {
	Save(ctx context.Context, provider models.Provider, apiKey string) error
	Remove(ctx context.Context, provider models.Provider) error
	Key(ctx context.Context, provider models.Provider) (string, error)
	Status(ctx context.Context) ([]models.ProviderStatus, error)
}

type credentialService struct {
	cr     repository.CredentialRepository
	sealer *utils.Sealer
}

func NewCredentialService(cr repository.CredentialRepository, sealer *utils.Sealer) CredentialService {
	return &credentialService{
		cr:     cr,
		sealer: sealer,
	}
}

func (s *credentialService) Save(ctx context.Context, provider models.Provider, apiKey string) error {
	if !provider.RequiresKey() {
		return models.ErrInvalidProvider
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return models.ErrEmptyAPIKey
	}

	encrypted, err := s.sealer.Encrypt(apiKey)
	if err != nil {
		return fmt.Errorf("encrypt api key: %w", err)
	}
	if err := s.cr.Upsert(ctx, &models.Credential{Provider: provider, APIKey: encrypted}); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	return nil
}

func (s *credentialService) Remove(ctx context.Context, provider models.Provider) error {
	if !provider.RequiresKey() {
		return models.ErrInvalidProvider
	}
	return s.cr.Remove(ctx, provider)
}

// Key returns the decrypted key, or ErrMissingCredential when none is stored.
func (s *credentialService) Key(ctx context.Context, provider models.Provider) (string, error) {
	cred, ok, err := s.cr.GetByProvider(ctx, provider)
	if err != nil {
		return "", err
	}
	if !ok || cred.APIKey == "" {
		return "", fmt.Errorf("%s: %w", provider, models.ErrMissingCredential)
	}
	return s.sealer.Decrypt(cred.APIKey)
}

// Status reports, for every keyed provider, whether a key is stored, so that
// a missing key is visible before anything is generated.
func (s *credentialService) Status(ctx context.Context) ([]models.ProviderStatus, error) {
	creds, err := s.cr.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	stored := make(map[models.Provider]string, len(creds))
	for _, c := range creds {
		if c.APIKey != "" {
			stored[c.Provider] = c.APIKey
		}
	}

	out := []models.ProviderStatus{}
	for _, p := range []models.Provider{models.ProviderOpenAI, models.ProviderGemini, models.ProviderMock} {
		sealed, ok := stored[p]
		st := models.ProviderStatus{Provider: p, Configured: !p.RequiresKey() || ok}
		if ok {
			if key, err := s.sealer.Decrypt(sealed); err == nil {
				st.KeyPreview = utils.MaskKey(key)
			}
		}
		if !st.Configured {
			st.Message = fmt.Sprintf("No %s API key. Add one in Settings to use this provider.", providerName(p))
			slog.Info("provider not configured", "provider", p)
		}
		out = append(out, st)
	}
	return out, nil
}

func providerName(p models.Provider) string {
	switch p {
	case models.ProviderOpenAI:
		return "OpenAI"
	case models.ProviderGemini:
		return "Gemini"
	}
	return string(p)
}
