package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	config "github.com/maheshrc27/content-studio/configs"
	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/maheshrc27/content-studio/internal/transfer"
	"golang.org/x/oauth2"
)

const (
	defaultOpenAIModel = "gpt-4o-mini"
	defaultGeminiModel = "gemini-pro"
)

type GenerateOptions struct {
	Topic           string
	Tone            string
	Length          models.Length
	IncludeHashtags bool
	Provider        models.Provider
	Model           string
}

// withDefaults fills tone, length and provider the way the editor does when
// they are left out.
func (o GenerateOptions) withDefaults() GenerateOptions {
	if o.Tone == "" {
		o.Tone = models.DefaultTone
	}
	if o.Length == "" || !o.Length.Valid() {
		o.Length = models.LengthMedium
	}
	if o.Provider == "" {
		o.Provider = models.ProviderMock
	}
	return o
}

type AIService interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

type aiService struct {
	openAIBaseURL string
	geminiBaseURL string
	creds         CredentialService
	client        *http.Client
}

func NewAIService(cfg *config.Config, creds CredentialService, client *http.Client) AIService {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &aiService{
		openAIBaseURL: strings.TrimRight(cfg.OpenAIBaseURL, "/"),
		geminiBaseURL: strings.TrimRight(cfg.GeminiBaseURL, "/"),
		creds:         creds,
		client:        client,
	}
}

func (s *aiService) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", models.ErrEmptyPrompt
	}
	opts = opts.withDefaults()

	switch opts.Provider {
	case models.ProviderMock:
		return MockContent(prompt, opts), nil
	case models.ProviderOpenAI, models.ProviderGemini:
	default:
		return "", models.ErrInvalidProvider
	}

	key, err := s.creds.Key(ctx, opts.Provider)
	if err != nil {
		return "", err
	}

	slog.Info("generating content", "provider", opts.Provider, "length", opts.Length)
	if opts.Provider == models.ProviderOpenAI {
		return s.openAI(ctx, key, prompt, opts)
	}
	return s.gemini(ctx, key, prompt, opts)
}

func hashtagInstruction(include bool) string {
	if include {
		return "Include relevant hashtags."
	}
	return "Do not include hashtags."
}

func topicOrGeneral(topic string) string {
	if topic == "" {
		return "general"
	}
	return topic
}

func (s *aiService) openAI(ctx context.Context, key, prompt string, opts GenerateOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	body := transfer.OpenAIChatRequest{
		Model: model,
		Messages: []transfer.OpenAIMessage{
			{
				Role: "system",
				Content: fmt.Sprintf("You are a helpful assistant that creates social media content.\nTopic: %s.\nTone: %s.\nLength: %s.\n%s",
					topicOrGeneral(opts.Topic), opts.Tone, opts.Length, hashtagInstruction(opts.IncludeHashtags)),
			},
			{Role: "user", Content: prompt},
		},
		MaxTokens: opts.Length.MaxTokens(),
	}

	// the bearer token rides on an oauth2 transport built over our client
	client := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, s.client),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: key, TokenType: "Bearer"}))

	var resp transfer.OpenAIChatResponse
	if err := postJSON(ctx, client, s.openAIBaseURL+"/chat/completions", nil, body, &resp); err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("openai: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *aiService) gemini(ctx context.Context, key, prompt string, opts GenerateOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = defaultGeminiModel
	}
	includeHashtags := "no"
	if opts.IncludeHashtags {
		includeHashtags = "yes"
	}
	body := transfer.GeminiRequest{
		Contents: []transfer.GeminiContent{{
			Parts: []transfer.GeminiPart{{
				Text: fmt.Sprintf("Create social media content with the following parameters:\nTopic: %s\nTone: %s\nLength: %s\nInclude hashtags: %s\n\nUser prompt: %s",
					topicOrGeneral(opts.Topic), opts.Tone, opts.Length, includeHashtags, prompt),
			}},
		}},
		GenerationConfig: transfer.GeminiGenerationConfig{MaxOutputTokens: opts.Length.MaxTokens()},
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", s.geminiBaseURL, url.PathEscape(model))
	headers := map[string]string{"x-goog-api-key": key}

	var resp transfer.GeminiResponse
	if err := postJSON(ctx, s.client, endpoint, headers, body, &resp); err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("gemini: %s", resp.Error.Message)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty response")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// postJSON decodes error bodies into out as well, since both providers
// describe failures in the response envelope.
func postJSON(ctx context.Context, client *http.Client, endpoint string, headers map[string]string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var mockTopics = map[string]string{
	"travel":  "Discover breathtaking destinations and unforgettable experiences. The world is waiting for you to explore its wonders.",
	"food":    "Indulge in culinary delights that tantalize your taste buds. Every flavor tells a unique story.",
	"tech":    "Stay on the cutting edge of technology with the latest innovations that are shaping our future.",
	"fashion": "Express yourself through style and embrace the trends that define modern aesthetics.",
	"fitness": "Transform your body and mind with dedicated routines and expert guidance for optimal health.",
}

const mockDefaultText = "Creating engaging content is essential for building your brand presence online. Connect with your audience through authentic storytelling."

// MockContent is the offline provider. It never does I/O and always returns
// the same text for the same options.
func MockContent(_ string, opts GenerateOptions) string {
	opts = opts.withDefaults()
	text, ok := mockTopics[opts.Topic]
	if !ok {
		text = mockDefaultText
	}

	switch opts.Tone {
	case "casual":
		text = "Hey there! " + strings.ReplaceAll(text, ".", "!")
	case "professional":
		text = "Dear audience, " + text + " We invite you to engage with this content."
	case "enthusiastic":
		text = "WOW! " + strings.ReplaceAll(text, ".", "! Amazing!")
	}

	if opts.IncludeHashtags {
		text += " #ContentCreation #SocialMedia #Engagement"
		if opts.Topic != "" {
			first, size := utf8.DecodeRuneInString(opts.Topic)
			text += " #" + string(unicode.ToUpper(first)) + opts.Topic[size:]
		}
	}
	return text
}
