package models

import "slices"

type TemplateCategory string

const (
	TemplateCategoryPost     TemplateCategory = "post"
	TemplateCategoryStory    TemplateCategory = "story"
	TemplateCategoryCarousel TemplateCategory = "carousel"
)

const (
	DefaultTemplateWidth  = 1080
	DefaultTemplateHeight = 1080
)

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Template struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	PreviewImage string           `json:"previewImage"`
	Dimensions   Dimensions       `json:"dimensions"`
	Category     TemplateCategory `json:"category"`
	Platforms    []Platform       `json:"platforms"`
}

func (t *Template) Clone() *Template {
	out := *t
	out.Platforms = slices.Clone(t.Platforms)
	if out.Platforms == nil {
		out.Platforms = []Platform{}
	}
	return &out
}

// DefaultTemplates is the built-in catalog used when the template table is
// empty or unreachable.
func DefaultTemplates() []*Template {
	return []*Template{
		{
			ID:           "template-1",
			Name:         "Instagram Square",
			PreviewImage: "https://via.placeholder.com/600x600",
			Dimensions:   Dimensions{Width: 1080, Height: 1080},
			Category:     TemplateCategoryPost,
			Platforms:    []Platform{PlatformInstagram, PlatformFacebook},
		},
		{
			ID:           "template-2",
			Name:         "Instagram Story",
			PreviewImage: "https://via.placeholder.com/1080x1920",
			Dimensions:   Dimensions{Width: 1080, Height: 1920},
			Category:     TemplateCategoryStory,
			Platforms:    []Platform{PlatformInstagram},
		},
		{
			ID:           "template-3",
			Name:         "Twitter Post",
			PreviewImage: "https://via.placeholder.com/1200x675",
			Dimensions:   Dimensions{Width: 1200, Height: 675},
			Category:     TemplateCategoryPost,
			Platforms:    []Platform{PlatformTwitter},
		},
		{
			ID:           "template-4",
			Name:         "LinkedIn Article",
			PreviewImage: "https://via.placeholder.com/1200x627",
			Dimensions:   Dimensions{Width: 1200, Height: 627},
			Category:     TemplateCategoryPost,
			Platforms:    []Platform{PlatformLinkedIn},
		},
	}
}
