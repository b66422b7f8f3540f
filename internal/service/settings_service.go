package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/maheshrc27/content-studio/internal/repository"
)

type SettingsService interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, s *models.Settings) (*models.Settings, error)
}

type settingsService struct {
	sr repository.SettingsRepository
}

func NewSettingsService(sr repository.SettingsRepository) SettingsService {
	return &settingsService{
		sr: sr,
	}
}

// Get returns the stored generation defaults, or the built-in ones when
// nothing is stored or the store cannot be reached.
func (s *settingsService) Get(ctx context.Context) (*models.Settings, error) {
	settings, isExist, err := s.sr.Get(ctx)
	if err != nil {
		slog.Warn("load settings failed, using defaults", "error", err)
		return models.DefaultSettings(), nil
	}
	if !isExist {
		return models.DefaultSettings(), nil
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, in *models.Settings) (*models.Settings, error) {
	settings := *in
	if settings.Provider == "" {
		settings.Provider = models.ProviderMock
	}
	if !settings.Provider.Valid() {
		return nil, models.ErrInvalidProvider
	}
	if settings.Length == "" {
		settings.Length = models.LengthMedium
	}
	if !settings.Length.Valid() {
		return nil, fmt.Errorf("length %q: %w", settings.Length, models.ErrInvalidSettings)
	}
	if settings.Tone == "" {
		settings.Tone = models.DefaultTone
	}

	if err := s.sr.Upsert(ctx, &settings); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return &settings, nil
}
