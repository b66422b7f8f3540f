// Package lifecycle decides which editing step a draft may be on and moves it
// between steps as the draft fills in.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/maheshrc27/content-studio/internal/models"
)

type Step string

const (
	StepIdle      Step = "idle"
	StepGenerate  Step = "generate"
	StepCustomize Step = "customize"
	StepPublish   Step = "publish"
)

// Steps are the selectable steps in display order.
var Steps = []Step{StepGenerate, StepCustomize, StepPublish}

func (s Step) Valid() bool {
	switch s {
	case StepGenerate, StepCustomize, StepPublish:
		return true
	}
	return false
}

// Reachable reports whether the draft has what step needs. Generate is always
// open so a draft can be regenerated at any point.
func Reachable(c *models.Content, step Step) bool {
	if c == nil {
		return false
	}
	switch step {
	case StepGenerate:
		return true
	case StepCustomize:
		return c.GeneratedText != ""
	case StepPublish:
		return c.EditedText != "" && c.SelectedTemplateID != nil
	}
	return false
}

// ReachableSteps returns every step Reachable allows, in display order.
func ReachableSteps(c *models.Content) []Step {
	out := make([]Step, 0, len(Steps))
	for _, s := range Steps {
		if Reachable(c, s) {
			out = append(out, s)
		}
	}
	return out
}

// ResumeStep picks the step a draft opens on when it is selected: the
// furthest one its fields allow.
func ResumeStep(c *models.Content) Step {
	switch {
	case Reachable(c, StepPublish):
		return StepPublish
	case Reachable(c, StepCustomize):
		return StepCustomize
	}
	return StepGenerate
}

// Requirement names one condition of the publish-ready check.
type Requirement string

const (
	RequireTitle     Requirement = "title"
	RequireText      Requirement = "text"
	RequireTemplate  Requirement = "template"
	RequirePlatforms Requirement = "platforms"
)

// Missing lists the publish requirements the draft does not meet.
func Missing(c *models.Content) []Requirement {
	var out []Requirement
	if c == nil {
		return []Requirement{RequireTitle, RequireText, RequireTemplate, RequirePlatforms}
	}
	if c.Title == "" {
		out = append(out, RequireTitle)
	}
	if c.EditedText == "" && c.GeneratedText == "" {
		out = append(out, RequireText)
	}
	if c.SelectedTemplateID == nil {
		out = append(out, RequireTemplate)
	}
	if len(c.Platforms) == 0 {
		out = append(out, RequirePlatforms)
	}
	return out
}

// PublishReady gates the publish and schedule actions. It is stricter than
// Reachable(c, StepPublish).
func PublishReady(c *models.Content) bool {
	return len(Missing(c)) == 0
}

// Validate returns nil for a publish-ready draft, or an error wrapping
// models.ErrNotPublishReady that names what is missing.
func Validate(c *models.Content) error {
	missing := Missing(c)
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, m := range missing {
		names[i] = string(m)
	}
	err := fmt.Errorf("%w: missing %s", models.ErrNotPublishReady, strings.Join(names, ", "))
	if len(missing) == 1 && missing[0] == RequirePlatforms {
		return errors.Join(err, models.ErrNoPlatforms)
	}
	return err
}
