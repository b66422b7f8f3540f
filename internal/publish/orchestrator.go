// Package publish turns a publish-ready draft into platform calls and writes
// the aggregate result back through the store.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/content-studio/internal/lifecycle"
	"github.com/maheshrc27/content-studio/internal/models"
)

const (
	DefaultTimeout     = 30 * time.Second
	DefaultConcurrency = 10
)

type Store interface {
	GetContent(id string) (*models.Content, error)
	UpdateContent(ctx context.Context, id string, patch models.ContentPatch) (*models.Content, error)
	SchedulePost(ctx context.Context, contentID string, platform models.Platform, at time.Time) (*models.ScheduledPost, error)
	ScheduledPost(id string) (*models.ScheduledPost, error)
	ScheduledPosts() []*models.ScheduledPost
	ScheduledPostsFor(contentID string) []*models.ScheduledPost
	SetScheduledPostStatus(ctx context.Context, id string, status models.ScheduledPostStatus, errMsg string) (*models.ScheduledPost, error)
}

// Publisher sends one draft to one platform.
type Publisher interface {
	Publish(ctx context.Context, req models.PublishRequest) models.PublishResult
}

type Accounts interface {
	IsConnected(ctx context.Context, platform models.Platform) (bool, error)
}

type AttemptRecorder interface {
	Create(ctx context.Context, pa *models.PublishAttempt) (int64, error)
}

// Dispatcher hands a scheduled post to whatever fires it at its time. Cancel
// drops what was handed over for sp at sp.ScheduledFor.
type Dispatcher interface {
	Dispatch(ctx context.Context, sp *models.ScheduledPost) error
	Cancel(ctx context.Context, sp *models.ScheduledPost) error
}

// Outcome pairs a platform with the result of its own call.
type Outcome struct {
	Platform models.Platform      `json:"platform"`
	Result   models.PublishResult `json:"result"`
}

type Report struct {
	ContentID string    `json:"contentId"`
	Success   bool      `json:"success"`
	Outcomes  []Outcome `json:"outcomes"`
}

// Failed lists the platforms whose call did not succeed, in request order.
func (r *Report) Failed() []models.Platform {
	out := []models.Platform{}
	for _, o := range r.Outcomes {
		if !o.Result.Success {
			out = append(out, o.Platform)
		}
	}
	return out
}

type Options struct {
	// Timeout bounds each platform call.
	Timeout     time.Duration
	Concurrency int
	Now         func() time.Time
}

type Orchestrator struct {
	store      Store
	publisher  Publisher
	accounts   Accounts
	attempts   AttemptRecorder
	dispatcher Dispatcher

	timeout     time.Duration
	concurrency int
	now         func() time.Time
}

// New builds an Orchestrator. attempts and dispatcher may be nil; without a
// dispatcher Schedule only records intent.
func New(store Store, publisher Publisher, accounts Accounts, attempts AttemptRecorder, dispatcher Dispatcher, opts Options) *Orchestrator {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Orchestrator{
		store:       store,
		publisher:   publisher,
		accounts:    accounts,
		attempts:    attempts,
		dispatcher:  dispatcher,
		timeout:     opts.Timeout,
		concurrency: opts.Concurrency,
		now:         opts.Now,
	}
}

// ready loads the draft and checks everything that must hold before any
// platform is contacted.
func (o *Orchestrator) ready(ctx context.Context, contentID string, only []models.Platform) (*models.Content, []models.Platform, error) {
	c, err := o.store.GetContent(contentID)
	if err != nil {
		return nil, nil, err
	}
	if err := lifecycle.Validate(c); err != nil {
		return nil, nil, err
	}

	targets := c.Platforms
	if len(only) > 0 {
		targets = models.NormalizePlatforms(only)
		for _, p := range targets {
			if !c.HasPlatform(p) {
				return nil, nil, fmt.Errorf("%s is not selected on this draft: %w", p, models.ErrInvalidPlatform)
			}
		}
	}

	for _, p := range targets {
		ok, err := o.accounts.IsConnected(ctx, p)
		if err != nil {
			return nil, nil, fmt.Errorf("check %s account: %w", p, err)
		}
		if !ok {
			return nil, nil, fmt.Errorf("%s: %w", p, models.ErrNotConnected)
		}
	}
	return c, targets, nil
}

// Publish sends the draft to every selected platform, or only to the given
// subset when retrying. The draft becomes published only if every call
// succeeds; otherwise its status is left alone.
func (o *Orchestrator) Publish(ctx context.Context, contentID string, only ...models.Platform) (*Report, error) {
	c, targets, err := o.ready(ctx, contentID, only)
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, len(targets))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, o.concurrency)

	for i, p := range targets {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(i int, p models.Platform) {
			defer wg.Done()
			defer func() { <-semaphore }()
			outcomes[i] = Outcome{Platform: p, Result: o.call(ctx, c, p)}
		}(i, p)
	}
	wg.Wait()

	report := &Report{ContentID: c.ID, Success: true, Outcomes: outcomes}
	for _, out := range outcomes {
		o.record(ctx, c.ID, out)
		if !out.Result.Success {
			report.Success = false
		}
	}

	if report.Success {
		status := models.ContentStatusPublished
		if _, err := o.store.UpdateContent(ctx, c.ID, models.ContentPatch{Status: &status}); err != nil {
			slog.Warn("mark content published", "id", c.ID, "error", err)
		}
	} else {
		slog.Info("publish incomplete", "id", c.ID, "failed", report.Failed())
	}
	return report, nil
}

// call runs one platform publish under the per-call timeout. A publisher that
// ignores its context still cannot hold the whole action past the deadline.
func (o *Orchestrator) call(ctx context.Context, c *models.Content, p models.Platform) models.PublishResult {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req := models.PublishRequest{Platform: p, Content: c.Text(), MediaURL: c.ImageURL}
	done := make(chan models.PublishResult, 1)
	go func() {
		done <- o.publisher.Publish(ctx, req)
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		return models.PublishResult{Success: false, Message: fmt.Sprintf("publish to %s timed out", p)}
	}
}

func (o *Orchestrator) record(ctx context.Context, contentID string, out Outcome) {
	if o.attempts == nil {
		return
	}
	_, err := o.attempts.Create(context.WithoutCancel(ctx), &models.PublishAttempt{
		ContentID: contentID,
		Platform:  out.Platform,
		Success:   out.Result.Success,
		Message:   out.Result.Message,
		CreatedAt: o.now(),
	})
	if err != nil {
		slog.Info(err.Error())
	}
}

// Schedule records one pending post per selected platform and hands each to
// the dispatcher. Nothing is published here.
func (o *Orchestrator) Schedule(ctx context.Context, contentID string, at time.Time) ([]*models.ScheduledPost, error) {
	if !at.After(o.now()) {
		return nil, models.ErrScheduleInPast
	}
	c, targets, err := o.ready(ctx, contentID, nil)
	if err != nil {
		return nil, err
	}

	posts := make([]*models.ScheduledPost, 0, len(targets))
	for _, p := range targets {
		prev := o.pending(c.ID, p)
		sp, err := o.store.SchedulePost(ctx, c.ID, p, at)
		if err != nil {
			return posts, fmt.Errorf("schedule %s: %w", p, err)
		}
		posts = append(posts, sp)
		if prev != nil && !prev.ScheduledFor.Equal(sp.ScheduledFor) {
			o.cancel(ctx, prev)
		}
		o.dispatch(ctx, sp)
	}
	return posts, nil
}

func (o *Orchestrator) pending(contentID string, p models.Platform) *models.ScheduledPost {
	for _, sp := range o.store.ScheduledPostsFor(contentID) {
		if sp.Platform == p && sp.Status == models.ScheduledPostStatusPending {
			return sp
		}
	}
	return nil
}

// cancel drops the task queued for a post's previous time. When it fails the
// stale task still fires, and DispatchScheduled sends it back for the new time.
func (o *Orchestrator) cancel(ctx context.Context, prev *models.ScheduledPost) {
	if o.dispatcher == nil {
		return
	}
	if err := o.dispatcher.Cancel(ctx, prev); err != nil {
		slog.Warn("cancel stale scheduled task", "id", prev.ID, "error", err)
	}
}

func (o *Orchestrator) dispatch(ctx context.Context, sp *models.ScheduledPost) {
	if o.dispatcher == nil {
		return
	}
	// the overdue sweep picks the post up again if this fails
	if err := o.dispatcher.Dispatch(ctx, sp); err != nil {
		slog.Warn("dispatch scheduled post", "id", sp.ID, "error", err)
	}
}

// DispatchScheduled fires one scheduled post. Posts that are no longer pending
// are skipped and return a nil outcome, as are posts whose time has not come
// yet; those are handed to the dispatcher again for their current time.
func (o *Orchestrator) DispatchScheduled(ctx context.Context, scheduledID string) (*Outcome, error) {
	sp, err := o.store.ScheduledPost(scheduledID)
	if err != nil {
		return nil, err
	}
	if sp.Status != models.ScheduledPostStatusPending {
		slog.Info("scheduled post already handled", "id", sp.ID, "status", sp.Status)
		return nil, nil
	}
	if sp.ScheduledFor.After(o.now()) {
		slog.Info("scheduled post fired before its time", "id", sp.ID, "scheduledFor", sp.ScheduledFor)
		o.dispatch(ctx, sp)
		return nil, nil
	}

	out, err := o.dispatchOne(ctx, sp)
	if err != nil {
		if _, serr := o.store.SetScheduledPostStatus(ctx, sp.ID, models.ScheduledPostStatusFailed, err.Error()); serr != nil {
			slog.Warn("mark scheduled post failed", "id", sp.ID, "error", serr)
		}
		return nil, err
	}

	status, msg := models.ScheduledPostStatusPublished, ""
	if !out.Result.Success {
		status, msg = models.ScheduledPostStatusFailed, out.Result.Message
	}
	if _, err := o.store.SetScheduledPostStatus(ctx, sp.ID, status, msg); err != nil {
		return out, err
	}

	if out.Result.Success && o.allPublished(sp.ContentID) {
		published := models.ContentStatusPublished
		if _, err := o.store.UpdateContent(ctx, sp.ContentID, models.ContentPatch{Status: &published}); err != nil {
			slog.Warn("mark content published", "id", sp.ContentID, "error", err)
		}
	}
	return out, nil
}

func (o *Orchestrator) dispatchOne(ctx context.Context, sp *models.ScheduledPost) (*Outcome, error) {
	c, err := o.store.GetContent(sp.ContentID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.Validate(c); err != nil {
		return nil, err
	}
	ok, err := o.accounts.IsConnected(ctx, sp.Platform)
	if err != nil {
		return nil, fmt.Errorf("check %s account: %w", sp.Platform, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", sp.Platform, models.ErrNotConnected)
	}

	out := Outcome{Platform: sp.Platform, Result: o.call(ctx, c, sp.Platform)}
	o.record(ctx, c.ID, out)
	return &out, nil
}

// allPublished looks at the latest post per platform only, so a failure that
// was rescheduled and then went out does not hold the draft back.
func (o *Orchestrator) allPublished(contentID string) bool {
	latest := map[models.Platform]*models.ScheduledPost{}
	for _, sp := range o.store.ScheduledPostsFor(contentID) {
		if cur, ok := latest[sp.Platform]; !ok || !sp.ScheduledFor.Before(cur.ScheduledFor) {
			latest[sp.Platform] = sp
		}
	}
	if len(latest) == 0 {
		return false
	}
	for _, sp := range latest {
		if sp.Status != models.ScheduledPostStatusPublished {
			return false
		}
	}
	return true
}

// RequeueOverdue hands every pending post whose time has passed back to the
// dispatcher and returns how many were handed over.
func (o *Orchestrator) RequeueOverdue(ctx context.Context) int {
	if o.dispatcher == nil {
		return 0
	}
	now := o.now()
	n := 0
	for _, sp := range o.store.ScheduledPosts() {
		if sp.Status != models.ScheduledPostStatusPending || sp.ScheduledFor.After(now) {
			continue
		}
		if err := o.dispatcher.Dispatch(ctx, sp); err != nil {
			slog.Warn("requeue scheduled post", "id", sp.ID, "error", err)
			continue
		}
		n++
	}
	return n
}
