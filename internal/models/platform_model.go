package models

import "slices"

type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformLinkedIn  Platform = "linkedin"
)

// Platforms lists every supported platform in display order.
var Platforms = []Platform{PlatformInstagram, PlatformFacebook, PlatformTwitter, PlatformLinkedIn}

func (p Platform) Valid() bool {
	return slices.Contains(Platforms, p)
}

// NormalizePlatforms drops duplicates while keeping first-seen order.
func NormalizePlatforms(in []Platform) []Platform {
	out := make([]Platform, 0, len(in))
	for _, p := range in {
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}
