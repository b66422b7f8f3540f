package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	config "github.com/maheshrc27/content-studio/configs"
	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/maheshrc27/content-studio/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAI(t *testing.T, srv *httptest.Server, keys map[models.Provider]string) AIService {
	t.Helper()
	sealer := testSealer(t)
	creds := NewCredentialService(newMemCredentials(), sealer)
	for p, k := range keys {
		require.NoError(t, creds.Save(context.Background(), p, k))
	}
	cfg := &config.Config{}
	if srv != nil {
		cfg.OpenAIBaseURL = srv.URL + "/v1"
		cfg.GeminiBaseURL = srv.URL + "/v1beta"
	}
	var client *http.Client
	if srv != nil {
		client = srv.Client()
	}
	return NewAIService(cfg, creds, client)
}

func TestGenerate_OpenAI(t *testing.T) {
	var got transfer.OpenAIChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"fresh post"}}]}`))
	}))
	defer srv.Close()

	ai := newAI(t, srv, map[models.Provider]string{models.ProviderOpenAI: "sk-test"})
	text, err := ai.Generate(context.Background(), "write about coffee", GenerateOptions{
		Provider: models.ProviderOpenAI,
		Length:   models.LengthShort,
		Topic:    "food",
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh post", text)
	assert.Equal(t, defaultOpenAIModel, got.Model)
	assert.Equal(t, 100, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Contains(t, got.Messages[0].Content, "Topic: food.")
	assert.Contains(t, got.Messages[0].Content, "Do not include hashtags.")
	assert.Equal(t, "write about coffee", got.Messages[1].Content)
}

func TestGenerate_OpenAIErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer srv.Close()

	ai := newAI(t, srv, map[models.Provider]string{models.ProviderOpenAI: "bad"})
	_, err := ai.Generate(context.Background(), "hi", GenerateOptions{Provider: models.ProviderOpenAI})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestGenerate_Gemini(t *testing.T) {
	var got transfer.GeminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-pro:generateContent", r.URL.Path)
		assert.Equal(t, "g-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"gemini post"}]}}]}`))
	}))
	defer srv.Close()

	ai := newAI(t, srv, map[models.Provider]string{models.ProviderGemini: "g-key"})
	text, err := ai.Generate(context.Background(), "launch day", GenerateOptions{
		Provider:        models.ProviderGemini,
		Length:          models.LengthLong,
		IncludeHashtags: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "gemini post", text)
	assert.Equal(t, 400, got.GenerationConfig.MaxOutputTokens)
	require.Len(t, got.Contents, 1)
	assert.Contains(t, got.Contents[0].Parts[0].Text, "Include hashtags: yes")
	assert.Contains(t, got.Contents[0].Parts[0].Text, "User prompt: launch day")
}

func TestGenerate_MissingKeyMakesNoCall(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	ai := newAI(t, srv, nil)
	for _, p := range []models.Provider{models.ProviderOpenAI, models.ProviderGemini} {
		_, err := ai.Generate(context.Background(), "hi", GenerateOptions{Provider: p})
		assert.ErrorIs(t, err, models.ErrMissingCredential)
	}
	assert.Zero(t, calls)
}

func TestGenerate_Preconditions(t *testing.T) {
	ai := newAI(t, nil, nil)

	_, err := ai.Generate(context.Background(), "   ", GenerateOptions{})
	assert.ErrorIs(t, err, models.ErrEmptyPrompt)

	_, err = ai.Generate(context.Background(), "hi", GenerateOptions{Provider: "claude"})
	assert.ErrorIs(t, err, models.ErrInvalidProvider)
}

func TestMockContent(t *testing.T) {
	ai := newAI(t, nil, nil)

	a, err := ai.Generate(context.Background(), "anything", GenerateOptions{Topic: "travel", Tone: "casual"})
	require.NoError(t, err)
	b, err := ai.Generate(context.Background(), "something else", GenerateOptions{Topic: "travel", Tone: "casual"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.True(t, len(a) > 0)
	assert.Contains(t, a, "Hey there!")
	assert.NotContains(t, a, ".")

	text := MockContent("x", GenerateOptions{Topic: "tech", IncludeHashtags: true})
	assert.Contains(t, text, "Dear audience,")
	assert.Contains(t, text, "#ContentCreation #SocialMedia #Engagement #Tech")

	assert.Contains(t, MockContent("x", GenerateOptions{Topic: "unknown"}), "building your brand presence")

	text = MockContent("x", GenerateOptions{Topic: "été", IncludeHashtags: true})
	assert.True(t, strings.HasSuffix(text, " #Été"), text)
	assert.True(t, utf8.ValidString(text))
}
