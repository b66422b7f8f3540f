package lifecycle

import (
	"testing"

	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// every combination of the four fields the steps look at
func draftCombinations() []*models.Content {
	var out []*models.Content
	for _, generated := range []string{"", "gen"} {
		for _, edited := range []string{"", "edit"} {
			for _, tmpl := range []*string{nil, strPtr("template-1")} {
				for _, title := range []string{"", "Title"} {
					for _, platforms := range [][]models.Platform{nil, {models.PlatformTwitter}} {
						out = append(out, &models.Content{
							Title:              title,
							GeneratedText:      generated,
							EditedText:         edited,
							SelectedTemplateID: tmpl,
							Platforms:          platforms,
						})
					}
				}
			}
		}
	}
	return out
}

func TestReachable_AllCombinations(t *testing.T) {
	for _, c := range draftCombinations() {
		assert.True(t, Reachable(c, StepGenerate))
		assert.Equal(t, c.GeneratedText != "", Reachable(c, StepCustomize), "%+v", c)
		assert.Equal(t, c.EditedText != "" && c.SelectedTemplateID != nil, Reachable(c, StepPublish), "%+v", c)
		assert.False(t, Reachable(c, StepIdle))
	}
}

func TestReachable_NilDraft(t *testing.T) {
	assert.False(t, Reachable(nil, StepGenerate))
	assert.Empty(t, ReachableSteps(nil))
}

func readyDraft() *models.Content {
	return &models.Content{
		Title:              "My Post",
		EditedText:         "Hello",
		SelectedTemplateID: strPtr("template-1"),
		Platforms:          []models.Platform{models.PlatformTwitter},
	}
}

func TestPublishReady_Boundaries(t *testing.T) {
	require.True(t, PublishReady(readyDraft()))

	cases := map[string]struct {
		mutate func(*models.Content)
		want   Requirement
	}{
		"no title":     {func(c *models.Content) { c.Title = "" }, RequireTitle},
		"no text":      {func(c *models.Content) { c.EditedText, c.GeneratedText = "", "" }, RequireText},
		"no template":  {func(c *models.Content) { c.SelectedTemplateID = nil }, RequireTemplate},
		"no platforms": {func(c *models.Content) { c.Platforms = []models.Platform{} }, RequirePlatforms},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := readyDraft()
			tc.mutate(c)
			assert.False(t, PublishReady(c))
			assert.Equal(t, []Requirement{tc.want}, Missing(c))

			err := Validate(c)
			assert.ErrorIs(t, err, models.ErrNotPublishReady)
			assert.ErrorIs(t, err, models.ErrPrecondition)
			assert.Contains(t, err.Error(), string(tc.want))
		})
	}
}

func TestPublishReady_GeneratedTextIsEnough(t *testing.T) {
	c := readyDraft()
	c.EditedText = ""
	c.GeneratedText = "from the model"
	assert.True(t, PublishReady(c))
	assert.NoError(t, Validate(c))
	assert.False(t, Reachable(c, StepPublish))
}

func TestPublishReady_AllCombinations(t *testing.T) {
	for _, c := range draftCombinations() {
		want := c.Title != "" && (c.EditedText != "" || c.GeneratedText != "") &&
			c.SelectedTemplateID != nil && len(c.Platforms) > 0
		assert.Equal(t, want, PublishReady(c), "%+v", c)
	}
}

func TestValidate_NoPlatformsOnly(t *testing.T) {
	c := readyDraft()
	c.Platforms = nil
	assert.ErrorIs(t, Validate(c), models.ErrNoPlatforms)
}

func TestResumeStep(t *testing.T) {
	assert.Equal(t, StepGenerate, ResumeStep(&models.Content{}))
	assert.Equal(t, StepCustomize, ResumeStep(&models.Content{GeneratedText: "g"}))
	assert.Equal(t, StepCustomize, ResumeStep(&models.Content{GeneratedText: "g", EditedText: "e"}))
	assert.Equal(t, StepPublish, ResumeStep(readyDraft()))
}
