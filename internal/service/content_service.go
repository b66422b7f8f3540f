package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/maheshrc27/content-studio/internal/lifecycle"
	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/maheshrc27/content-studio/internal/transfer"
)

// ContentStore is the subset of the content store the editor flow uses.
type ContentStore interface {
	CreateContent(ctx context.Context, draft models.Content) *models.Content
	UpdateContent(ctx context.Context, id string, patch models.ContentPatch) (*models.Content, error)
	DeleteContent(ctx context.Context, id string) error
	GetContent(id string) (*models.Content, error)
	ListContent() []*models.Content
	ScheduledPostsFor(contentID string) []*models.ScheduledPost
	Active() (*models.Content, bool)
	SetActive(id string) error
}

type ContentService interface {
	Create(ctx context.Context, draft models.Content) *transfer.ContentView
	List(ctx context.Context) []*transfer.ContentView
	Get(ctx context.Context, id string) (*transfer.ContentView, error)
	Update(ctx context.Context, id string, patch models.ContentPatch) (*transfer.ContentView, error)
	Delete(ctx context.Context, id string) error
	// Generate runs the AI provider and merges its text into the draft. An
	// empty id starts a new draft.
	Generate(ctx context.Context, id string, req transfer.GenerateRequest) (*transfer.ContentView, error)
	GoTo(ctx context.Context, id string, step lifecycle.Step) (*transfer.ContentView, error)
	Continue(ctx context.Context, id string) (*transfer.ContentView, error)
	Active(ctx context.Context) (*transfer.ContentView, bool)
	SetActive(ctx context.Context, id string) (*transfer.ContentView, error)
}

type contentService struct {
	store    ContentStore
	steps    *lifecycle.Registry
	ai       AIService
	settings SettingsService
}

func NewContentService(store ContentStore, steps *lifecycle.Registry, ai AIService, settings SettingsService) ContentService {
	return &contentService{
		store:    store,
		steps:    steps,
		ai:       ai,
		settings: settings,
	}
}

func (s *contentService) view(c *models.Content) *transfer.ContentView {
	ctrl := s.steps.For(c)
	v := &transfer.ContentView{
		Content:        c,
		Step:           string(ctrl.Step()),
		ReachableSteps: []string{},
		PublishReady:   lifecycle.PublishReady(c),
		Missing:        []string{},
		ScheduledPosts: s.store.ScheduledPostsFor(c.ID),
	}
	for _, step := range lifecycle.ReachableSteps(c) {
		v.ReachableSteps = append(v.ReachableSteps, string(step))
	}
	for _, m := range lifecycle.Missing(c) {
		v.Missing = append(v.Missing, string(m))
	}
	return v
}

func (s *contentService) Create(ctx context.Context, draft models.Content) *transfer.ContentView {
	return s.view(s.store.CreateContent(ctx, draft))
}

func (s *contentService) List(ctx context.Context) []*transfer.ContentView {
	items := s.store.ListContent()
	out := make([]*transfer.ContentView, 0, len(items))
	for _, c := range items {
		out = append(out, s.view(c))
	}
	return out
}

func (s *contentService) Get(ctx context.Context, id string) (*transfer.ContentView, error) {
	c, err := s.store.GetContent(id)
	if err != nil {
		return nil, err
	}
	return s.view(c), nil
}

func (s *contentService) Update(ctx context.Context, id string, patch models.ContentPatch) (*transfer.ContentView, error) {
	if patch.Status != nil {
		return nil, fmt.Errorf("status %q: %w", *patch.Status, models.ErrStatusReadOnly)
	}
	for _, p := range patch.Platforms {
		if !p.Valid() {
			return nil, models.ErrInvalidPlatform
		}
	}
	if patch.ScheduledFor.Set {
		current, err := s.store.GetContent(id)
		if err != nil {
			return nil, err
		}
		if current.Status == models.ContentStatusScheduled {
			return nil, models.ErrScheduledTime
		}
	}
	c, err := s.store.UpdateContent(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return s.view(c), nil
}

func (s *contentService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteContent(ctx, id); err != nil {
		return err
	}
	s.steps.Forget(id)
	return nil
}

func (s *contentService) options(ctx context.Context, req transfer.GenerateRequest) GenerateOptions {
	defaults, _ := s.settings.Get(ctx)
	opts := GenerateOptions{
		Topic:           req.Topic,
		Tone:            req.Tone,
		Length:          req.Length,
		Provider:        req.Provider,
		Model:           req.Model,
		IncludeHashtags: defaults.IncludeHashtags,
	}
	if req.IncludeHashtags != nil {
		opts.IncludeHashtags = *req.IncludeHashtags
	}
	if opts.Tone == "" {
		opts.Tone = defaults.Tone
	}
	if opts.Length == "" {
		opts.Length = defaults.Length
	}
	if opts.Provider == "" {
		opts.Provider = defaults.Provider
		if opts.Model == "" {
			opts.Model = defaults.Model
		}
	}
	return opts
}

func (s *contentService) Generate(ctx context.Context, id string, req transfer.GenerateRequest) (*transfer.ContentView, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, models.ErrEmptyPrompt
	}
	if req.Provider != "" && !req.Provider.Valid() {
		return nil, models.ErrInvalidProvider
	}
	if id != "" {
		if _, err := s.store.GetContent(id); err != nil {
			return nil, err
		}
	}

	text, err := s.ai.Generate(ctx, req.Prompt, s.options(ctx, req))
	if err != nil {
		return nil, err
	}
	title := TitleFromPrompt(req.Prompt)

	var c *models.Content
	if id == "" {
		c = s.store.CreateContent(ctx, models.Content{Title: title, GeneratedText: text, EditedText: text})
	} else {
		c, err = s.store.UpdateContent(ctx, id, models.ContentPatch{
			Title:         &title,
			GeneratedText: &text,
			EditedText:    &text,
		})
		if err != nil {
			return nil, err
		}
	}

	if _, err := s.steps.For(c).OnGenerated(c); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

func (s *contentService) GoTo(ctx context.Context, id string, step lifecycle.Step) (*transfer.ContentView, error) {
	c, err := s.store.GetContent(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.steps.For(c).GoTo(c, step); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

func (s *contentService) Continue(ctx context.Context, id string) (*transfer.ContentView, error) {
	c, err := s.store.GetContent(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.steps.For(c).Continue(c); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

func (s *contentService) Active(ctx context.Context) (*transfer.ContentView, bool) {
	c, ok := s.store.Active()
	if !ok {
		return nil, false
	}
	return s.view(c), true
}

// SetActive selects a draft and reopens it at the furthest step its fields
// allow. An empty id clears the selection.
func (s *contentService) SetActive(ctx context.Context, id string) (*transfer.ContentView, error) {
	if err := s.store.SetActive(id); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}
	c, err := s.store.GetContent(id)
	if err != nil {
		return nil, err
	}
	s.steps.For(c).Open(c)
	return s.view(c), nil
}

const maxTitleLength = 50

// TitleFromPrompt uses the first line of the prompt, cut at a word boundary.
func TitleFromPrompt(prompt string) string {
	title := strings.TrimSpace(prompt)
	if i := strings.IndexAny(title, "\r\n"); i >= 0 {
		title = strings.TrimSpace(title[:i])
	}
	if title == "" {
		return models.DefaultTitle
	}
	runes := []rune(title)
	if len(runes) <= maxTitleLength {
		return title
	}
	cut := string(runes[:maxTitleLength])
	if i := strings.LastIndex(cut, " "); i > maxTitleLength/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "..."
}
