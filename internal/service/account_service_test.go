package service

import (
	"context"
	"testing"

	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_ConnectAndDisconnect(t *testing.T) {
	repo := newMemAccounts()
	svc := NewAccountService(repo, testSealer(t))
	ctx := context.Background()

	acc, err := svc.Connect(ctx, models.PlatformTwitter, "  tw-key  ", "")
	require.NoError(t, err)
	assert.Equal(t, "user_twitter", acc.Username)
	assert.True(t, acc.Connected)
	assert.NotEqual(t, "tw-key", repo.items[models.PlatformTwitter].APIKey)

	key, err := svc.APIKey(ctx, models.PlatformTwitter)
	require.NoError(t, err)
	assert.Equal(t, "tw-key", key)

	ok, err := svc.IsConnected(ctx, models.PlatformTwitter)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.Disconnect(ctx, models.PlatformTwitter))
	ok, err = svc.IsConnected(ctx, models.PlatformTwitter)
	require.NoError(t, err)
	assert.False(t, ok)

	key, err = svc.APIKey(ctx, models.PlatformTwitter)
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestAccountService_ListShowsEveryPlatform(t *testing.T) {
	svc := NewAccountService(newMemAccounts(), testSealer(t))
	ctx := context.Background()
	_, err := svc.Connect(ctx, models.PlatformLinkedIn, "li", "me")
	require.NoError(t, err)

	accounts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, len(models.Platforms))
	for i, acc := range accounts {
		assert.Equal(t, models.Platforms[i], acc.Platform)
		assert.Equal(t, acc.Platform == models.PlatformLinkedIn, acc.Connected)
	}
}

func TestAccountService_Rejects(t *testing.T) {
	svc := NewAccountService(newMemAccounts(), testSealer(t))
	ctx := context.Background()

	_, err := svc.Connect(ctx, "myspace", "k", "")
	assert.ErrorIs(t, err, models.ErrInvalidPlatform)

	_, err = svc.Connect(ctx, models.PlatformFacebook, " ", "")
	assert.ErrorIs(t, err, models.ErrEmptyAPIKey)
	assert.ErrorIs(t, err, models.ErrPrecondition)
}

func TestCredentialService(t *testing.T) {
	svc := NewCredentialService(newMemCredentials(), testSealer(t))
	ctx := context.Background()

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status, 3)
	assert.False(t, status[0].Configured)
	assert.Contains(t, status[0].Message, "No OpenAI API key")
	assert.True(t, status[2].Configured)

	_, err = svc.Key(ctx, models.ProviderGemini)
	assert.ErrorIs(t, err, models.ErrMissingCredential)

	require.NoError(t, svc.Save(ctx, models.ProviderGemini, "g"))
	key, err := svc.Key(ctx, models.ProviderGemini)
	require.NoError(t, err)
	assert.Equal(t, "g", key)

	status, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status[1].Configured)
	assert.Empty(t, status[1].Message)
	assert.Equal(t, "****", status[1].KeyPreview)

	require.NoError(t, svc.Save(ctx, models.ProviderOpenAI, "sk-live-abcd1234"))
	status, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "****1234", status[0].KeyPreview)
	assert.Empty(t, status[2].KeyPreview)

	require.NoError(t, svc.Remove(ctx, models.ProviderGemini))
	_, err = svc.Key(ctx, models.ProviderGemini)
	assert.ErrorIs(t, err, models.ErrMissingCredential)

	assert.ErrorIs(t, svc.Save(ctx, models.ProviderMock, "k"), models.ErrInvalidProvider)
	assert.ErrorIs(t, svc.Save(ctx, models.ProviderOpenAI, ""), models.ErrEmptyAPIKey)
}

func TestSettingsService(t *testing.T) {
	repo := &memSettings{}
	svc := NewSettingsService(repo)
	ctx := context.Background()

	s, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), s)

	saved, err := svc.Update(ctx, &models.Settings{Provider: models.ProviderOpenAI, Tone: "casual"})
	require.NoError(t, err)
	assert.Equal(t, models.LengthMedium, saved.Length)
	assert.Equal(t, models.ProviderOpenAI, repo.s.Provider)

	_, err = svc.Update(ctx, &models.Settings{Length: "huge"})
	assert.ErrorIs(t, err, models.ErrInvalidSettings)
	_, err = svc.Update(ctx, &models.Settings{Provider: "other"})
	assert.ErrorIs(t, err, models.ErrInvalidProvider)
}

func TestSettingsService_FallsBackOnError(t *testing.T) {
	svc := NewSettingsService(&memSettings{err: assert.AnError})
	s, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ProviderMock, s.Provider)
}
