package transfer

import (
	"time"

	"github.com/maheshrc27/content-studio/internal/models"
)

type ContentCreation struct {
	Title              string            `json:"title"`
	GeneratedText      string            `json:"generatedText"`
	EditedText         string            `json:"editedText"`
	SelectedTemplateID *string           `json:"selectedTemplateId"`
	ImageURL           *string           `json:"imageUrl"`
	Customizations     map[string]any    `json:"customizations"`
	Platforms          []models.Platform `json:"platforms"`
}

func (c ContentCreation) Draft() models.Content {
	return models.Content{
		Title:              c.Title,
		GeneratedText:      c.GeneratedText,
		EditedText:         c.EditedText,
		SelectedTemplateID: c.SelectedTemplateID,
		ImageURL:           c.ImageURL,
		Customizations:     c.Customizations,
		Platforms:          c.Platforms,
	}
}

type GenerateRequest struct {
	Prompt          string          `json:"prompt"`
	Topic           string          `json:"topic"`
	Tone            string          `json:"tone"`
	Length          models.Length   `json:"length"`
	IncludeHashtags *bool           `json:"includeHashtags"`
	Provider        models.Provider `json:"provider"`
	Model           string          `json:"model"`
}

type StepChange struct {
	Step string `json:"step"`
}

type PublishRequest struct {
	// Platforms restricts the publish to a subset, used to retry failures.
	Platforms []models.Platform `json:"platforms"`
}

type ScheduleRequest struct {
	ScheduledFor time.Time `json:"scheduledFor"`
}

type ActiveRequest struct {
	ContentID string `json:"contentId"`
}

// ContentView is a draft plus the step state the editor needs.
type ContentView struct {
	*models.Content
	Step           string                  `json:"step"`
	ReachableSteps []string                `json:"reachableSteps"`
	PublishReady   bool                    `json:"publishReady"`
	Missing        []string                `json:"missing"`
	ScheduledPosts []*models.ScheduledPost `json:"scheduledPosts,omitempty"`
}
