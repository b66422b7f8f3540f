// Package store holds the process-wide drafts, templates and scheduled posts.
//
// Every mutation is applied to memory first and then mirrored to the
// persistence gateway. Remote failures degrade to local-only state instead of
// aborting the caller's action. Accessors hand out copies; the collections
// themselves never leave the package.
package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/maheshrc27/content-studio/internal/notify"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const DefaultRemoteTimeout = 10 * time.Second

type ContentGateway interface {
	List(ctx context.Context) ([]*models.Content, error)
	Create(ctx context.Context, c *models.Content) (*models.Content, error)
	Update(ctx context.Context, id string, patch models.ContentPatch, updatedAt time.Time) error
	Remove(ctx context.Context, id string) error
}

type TemplateGateway interface {
	List(ctx context.Context) ([]*models.Template, error)
	Upsert(ctx context.Context, t *models.Template) error
}

type ScheduleGateway interface {
	List(ctx context.Context) ([]*models.ScheduledPost, error)
	Upsert(ctx context.Context, sp *models.ScheduledPost) error
	UpdateStatus(ctx context.Context, id string, status models.ScheduledPostStatus, errMsg string) error
}

type Options struct {
	// RemoteTimeout bounds every gateway call. Zero means DefaultRemoteTimeout.
	RemoteTimeout time.Duration
	Notifier      notify.Notifier
	Now           func() time.Time
}

type Store struct {
	mu        sync.RWMutex
	contents  map[string]*models.Content
	templates []*models.Template
	scheduled []*models.ScheduledPost
	activeID  string

	content  ContentGateway
	tmpl     TemplateGateway
	schedule ScheduleGateway

	notifier notify.Notifier
	timeout  time.Duration
	now      func() time.Time

	wg sync.WaitGroup
}

func New(content ContentGateway, templates TemplateGateway, schedule ScheduleGateway, opts Options) *Store {
	if opts.RemoteTimeout <= 0 {
		opts.RemoteTimeout = DefaultRemoteTimeout
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.LogNotifier{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		contents:  make(map[string]*models.Content),
		templates: models.DefaultTemplates(),
		content:   content,
		tmpl:      templates,
		schedule:  schedule,
		notifier:  opts.Notifier,
		timeout:   opts.RemoteTimeout,
		now:       opts.Now,
	}
}

// Close waits for in-flight background writes, or until ctx is done.
func (s *Store) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// remoteCtx detaches from the caller so a finished request cannot cancel a
// write that is already under way.
func (s *Store) remoteCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
}

func (s *Store) background(ctx context.Context, op string, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		rctx, cancel := s.remoteCtx(ctx)
		defer cancel()
		if err := fn(rctx); err != nil {
			slog.Warn("remote write failed", "op", op, "error", err)
		}
	}()
}

func localID(now time.Time) string {
	suffix, err := gonanoid.New(8)
	if err != nil {
		suffix = "0"
	}
	return fmt.Sprintf("local-%d-%s", now.UnixMilli(), suffix)
}

// CreateContent builds a draft from the given fields and persists it. It
// always returns a usable draft; when the gateway fails the draft is kept
// with a local id and flagged LocalOnly.
func (s *Store) CreateContent(ctx context.Context, draft models.Content) *models.Content {
	now := s.now()
	c := draft.Clone()
	c.ID = ""
	c.LocalOnly = false
	c.ApplyDefaults()
	c.CreatedAt, c.UpdatedAt = now, now

	rctx, cancel := s.remoteCtx(ctx)
	saved, err := s.content.Create(rctx, c)
	cancel()

	if err == nil && saved != nil && saved.ID != "" {
		c = saved.Clone()
		c.ApplyDefaults()
	} else {
		if err == nil {
			err = errors.New("gateway returned no id")
		}
		slog.Warn("create content failed, keeping local draft", "error", err)
		c.ID = localID(now)
		c.LocalOnly = true
		s.notifier.Notify(ctx, notify.Warning("Content saved locally due to connection error", err.Error()))
	}

	s.mu.Lock()
	s.contents[c.ID] = c
	s.mu.Unlock()
	return c.Clone()
}

// UpdateContent merges patch into the draft right away. The remote update then
// runs in the background and its failure is only logged.
func (s *Store) UpdateContent(ctx context.Context, id string, patch models.ContentPatch) (*models.Content, error) {
	now := s.now()

	s.mu.Lock()
	c, ok := s.contents[id]
	if !ok {
		s.mu.Unlock()
		return nil, models.ErrContentNotFound
	}
	patch.Apply(c, now)
	out := c.Clone()
	s.mu.Unlock()

	if !out.LocalOnly {
		s.background(ctx, "update content", func(ctx context.Context) error {
			return s.content.Update(ctx, id, patch, now)
		})
	}
	return out, nil
}

// DeleteContent drops the draft, its scheduled posts and the active reference
// to it. The remote delete is awaited so that its failure can be reported.
func (s *Store) DeleteContent(ctx context.Context, id string) error {
	s.mu.Lock()
	c, ok := s.contents[id]
	if !ok {
		s.mu.Unlock()
		return models.ErrContentNotFound
	}
	delete(s.contents, id)
	s.scheduled = slices.DeleteFunc(s.scheduled, func(sp *models.ScheduledPost) bool {
		return sp.ContentID == id
	})
	if s.activeID == id {
		s.activeID = ""
	}
	s.mu.Unlock()

	if c.LocalOnly {
		return nil
	}

	rctx, cancel := s.remoteCtx(ctx)
	defer cancel()
	if err := s.content.Remove(rctx, id); err != nil {
		slog.Warn("remote delete failed", "id", id, "error", err)
		s.notifier.Notify(ctx, notify.Error("Failed to delete content", err.Error()))
	}
	return nil
}

// SchedulePost records a pending publish intent for one platform. A pending
// post that already exists for the same draft and platform is moved to the new
// time rather than duplicated.
func (s *Store) SchedulePost(ctx context.Context, contentID string, platform models.Platform, at time.Time) (*models.ScheduledPost, error) {
	if !platform.Valid() {
		return nil, models.ErrInvalidPlatform
	}
	if !at.After(s.now()) {
		return nil, models.ErrScheduleInPast
	}

	s.mu.Lock()
	c, ok := s.contents[contentID]
	if !ok {
		s.mu.Unlock()
		return nil, models.ErrContentNotFound
	}
	localOnly := c.LocalOnly

	var sp *models.ScheduledPost
	for _, existing := range s.scheduled {
		if existing.ContentID == contentID && existing.Platform == platform &&
			existing.Status == models.ScheduledPostStatusPending {
			sp = existing
			break
		}
	}
	if sp == nil {
		sp = &models.ScheduledPost{
			ID:        "scheduled-" + gonanoid.Must(),
			ContentID: contentID,
			Platform:  platform,
			Status:    models.ScheduledPostStatusPending,
		}
		s.scheduled = append(s.scheduled, sp)
	}
	sp.ScheduledFor = at
	out := sp.Clone()
	s.mu.Unlock()

	if !localOnly {
		s.background(ctx, "schedule post", func(ctx context.Context) error {
			return s.schedule.Upsert(ctx, out.Clone())
		})
	}

	status := models.ContentStatusScheduled
	if _, err := s.UpdateContent(ctx, contentID, models.ContentPatch{
		Status:       &status,
		ScheduledFor: models.Some(at),
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SetScheduledPostStatus(ctx context.Context, id string, status models.ScheduledPostStatus, errMsg string) (*models.ScheduledPost, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.scheduled, func(sp *models.ScheduledPost) bool { return sp.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return nil, models.ErrScheduledPostNotFound
	}
	sp := s.scheduled[idx]
	sp.Status = status
	sp.Error = errMsg
	out := sp.Clone()
	parent, ok := s.contents[sp.ContentID]
	localOnly := ok && parent.LocalOnly
	s.mu.Unlock()

	if !localOnly {
		s.background(ctx, "update scheduled post", func(ctx context.Context) error {
			return s.schedule.UpdateStatus(ctx, id, status, errMsg)
		})
	}
	return out, nil
}

// LoadContent replaces the drafts with the remote set. Drafts that only exist
// locally are kept. On failure memory is left untouched.
func (s *Store) LoadContent(ctx context.Context) error {
	rctx, cancel := s.remoteCtx(ctx)
	defer cancel()
	items, err := s.content.List(rctx)
	if err != nil {
		slog.Warn("load content failed, keeping local drafts", "error", err)
		return fmt.Errorf("load content: %w", err)
	}

	next := make(map[string]*models.Content, len(items))
	for _, c := range items {
		cp := c.Clone()
		cp.ApplyDefaults()
		next[cp.ID] = cp
	}

	s.mu.Lock()
	for id, c := range s.contents {
		if c.LocalOnly {
			next[id] = c
		}
	}
	s.contents = next
	if _, ok := s.contents[s.activeID]; !ok {
		s.activeID = ""
	}
	s.mu.Unlock()
	return nil
}

// LoadTemplates replaces the catalog with the remote one. A failed or empty
// fetch falls back to the built-in catalog, which is then seeded remotely.
func (s *Store) LoadTemplates(ctx context.Context) {
	rctx, cancel := s.remoteCtx(ctx)
	items, err := s.tmpl.List(rctx)
	cancel()

	if err == nil && len(items) > 0 {
		next := make([]*models.Template, 0, len(items))
		for _, t := range items {
			next = append(next, t.Clone())
		}
		s.mu.Lock()
		s.templates = next
		s.mu.Unlock()
		return
	}

	if err != nil {
		slog.Warn("load templates failed, using built-in catalog", "error", err)
	}
	defaults := models.DefaultTemplates()
	s.mu.Lock()
	s.templates = defaults
	s.mu.Unlock()

	s.background(ctx, "seed templates", func(ctx context.Context) error {
		var errs []error
		for _, t := range models.DefaultTemplates() {
			if err := s.tmpl.Upsert(ctx, t); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

// LoadScheduledPosts replaces the scheduled posts with the remote set, keeping
// the ones created for local-only drafts.
func (s *Store) LoadScheduledPosts(ctx context.Context) error {
	rctx, cancel := s.remoteCtx(ctx)
	defer cancel()
	items, err := s.schedule.List(rctx)
	if err != nil {
		slog.Warn("load scheduled posts failed", "error", err)
		return fmt.Errorf("load scheduled posts: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]*models.ScheduledPost, 0, len(items))
	for _, sp := range items {
		next = append(next, sp.Clone())
	}
	for _, sp := range s.scheduled {
		if c, ok := s.contents[sp.ContentID]; ok && c.LocalOnly {
			next = append(next, sp)
		}
	}
	s.scheduled = next
	return nil
}

// ListContent returns copies of every draft, most recently updated first.
func (s *Store) ListContent() []*models.Content {
	s.mu.RLock()
	out := make([]*models.Content, 0, len(s.contents))
	for _, c := range s.contents {
		out = append(out, c.Clone())
	}
	s.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b *models.Content) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func (s *Store) GetContent(id string) (*models.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contents[id]
	if !ok {
		return nil, models.ErrContentNotFound
	}
	return c.Clone(), nil
}

func (s *Store) Templates() []*models.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Template, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, t.Clone())
	}
	return out
}

func (s *Store) Template(id string) (*models.Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.templates {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return nil, false
}

func (s *Store) ScheduledPosts() []*models.ScheduledPost {
	return s.filterScheduled(func(*models.ScheduledPost) bool { return true })
}

func (s *Store) ScheduledPostsFor(contentID string) []*models.ScheduledPost {
	return s.filterScheduled(func(sp *models.ScheduledPost) bool { return sp.ContentID == contentID })
}

func (s *Store) ScheduledPost(id string) (*models.ScheduledPost, error) {
	posts := s.filterScheduled(func(sp *models.ScheduledPost) bool { return sp.ID == id })
	if len(posts) == 0 {
		return nil, models.ErrScheduledPostNotFound
	}
	return posts[0], nil
}

func (s *Store) filterScheduled(keep func(*models.ScheduledPost) bool) []*models.ScheduledPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.ScheduledPost{}
	for _, sp := range s.scheduled {
		if keep(sp) {
			out = append(out, sp.Clone())
		}
	}
	return out
}

// Active returns the draft currently being worked on, if any.
func (s *Store) Active() (*models.Content, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeID == "" {
		return nil, false
	}
	c, ok := s.contents[s.activeID]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// SetActive marks id as the active draft. An empty id clears it.
func (s *Store) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" {
		if _, ok := s.contents[id]; !ok {
			return models.ErrContentNotFound
		}
	}
	s.activeID = id
	return nil
}
