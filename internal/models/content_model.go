package models

import (
	"slices"
	"time"
)

type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusScheduled ContentStatus = "scheduled"
	ContentStatusPublished ContentStatus = "published"
)

func (s ContentStatus) Valid() bool {
	switch s {
	case ContentStatusDraft, ContentStatusScheduled, ContentStatusPublished:
		return true
	}
	return false
}

// DefaultTitle is used when a draft is created without a title.
const DefaultTitle = "Untitled"

type Content struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	GeneratedText      string         `json:"generatedText"`
	EditedText         string         `json:"editedText"`
	SelectedTemplateID *string        `json:"selectedTemplateId"`
	ImageURL           *string        `json:"imageUrl"`
	Customizations     map[string]any `json:"customizations"`
	Platforms          []Platform     `json:"platforms"`
	ScheduledFor       *time.Time     `json:"scheduledFor"`
	Status             ContentStatus  `json:"status"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	LocalOnly          bool           `json:"localOnly,omitempty"`
}

// Text returns the text used for preview and publishing. The edited copy wins
// once it is non-empty.
func (c *Content) Text() string {
	if c.EditedText != "" {
		return c.EditedText
	}
	return c.GeneratedText
}

// Clone returns a deep copy so callers never share state with the store.
func (c *Content) Clone() *Content {
	if c == nil {
		return nil
	}
	out := *c
	if c.SelectedTemplateID != nil {
		v := *c.SelectedTemplateID
		out.SelectedTemplateID = &v
	}
	if c.ImageURL != nil {
		v := *c.ImageURL
		out.ImageURL = &v
	}
	if c.ScheduledFor != nil {
		v := *c.ScheduledFor
		out.ScheduledFor = &v
	}
	out.Platforms = slices.Clone(c.Platforms)
	if out.Platforms == nil {
		out.Platforms = []Platform{}
	}
	out.Customizations = cloneMap(c.Customizations)
	return &out
}

// HasPlatform reports whether p is one of the draft's target platforms.
func (c *Content) HasPlatform(p Platform) bool {
	return slices.Contains(c.Platforms, p)
}

// ApplyDefaults fills in every omitted field of a new draft.
func (c *Content) ApplyDefaults() {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Platforms == nil {
		c.Platforms = []Platform{}
	}
	c.Platforms = NormalizePlatforms(c.Platforms)
	if c.Customizations == nil {
		c.Customizations = map[string]any{}
	}
	if c.Status == "" {
		c.Status = ContentStatusDraft
	}
}

// ContentPatch is a partial update. Nil pointers and unset Nullables leave the
// field untouched. A non-nil empty Platforms slice clears the platform set.
type ContentPatch struct {
	Title              *string             `json:"title,omitempty"`
	GeneratedText      *string             `json:"generatedText,omitempty"`
	EditedText         *string             `json:"editedText,omitempty"`
	SelectedTemplateID Nullable[string]    `json:"selectedTemplateId"`
	ImageURL           Nullable[string]    `json:"imageUrl"`
	Customizations     map[string]any      `json:"customizations,omitempty"`
	Platforms          []Platform          `json:"platforms,omitempty"`
	ScheduledFor       Nullable[time.Time] `json:"scheduledFor"`
	Status             *ContentStatus      `json:"status,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p ContentPatch) Empty() bool {
	return p.Title == nil && p.GeneratedText == nil && p.EditedText == nil &&
		!p.SelectedTemplateID.Set && !p.ImageURL.Set && p.Customizations == nil &&
		p.Platforms == nil && !p.ScheduledFor.Set && p.Status == nil
}

// Apply merges the patch into c and stamps UpdatedAt.
func (p ContentPatch) Apply(c *Content, now time.Time) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.GeneratedText != nil {
		c.GeneratedText = *p.GeneratedText
	}
	if p.EditedText != nil {
		c.EditedText = *p.EditedText
	}
	if p.SelectedTemplateID.Set {
		c.SelectedTemplateID = p.SelectedTemplateID.Ptr()
	}
	if p.ImageURL.Set {
		c.ImageURL = p.ImageURL.Ptr()
	}
	if p.Customizations != nil {
		c.Customizations = cloneMap(p.Customizations)
	}
	if p.Platforms != nil {
		c.Platforms = NormalizePlatforms(p.Platforms)
	}
	if p.ScheduledFor.Set {
		c.ScheduledFor = p.ScheduledFor.Ptr()
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	c.UpdatedAt = now
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
