package repository

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/lib/pq"
	"github.com/maheshrc27/content-studio/internal/models"
)

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func ptrNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func ptrNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func toPlatforms(arr pq.StringArray) []models.Platform {
	out := make([]models.Platform, 0, len(arr))
	for _, p := range arr {
		out = append(out, models.Platform(p))
	}
	return out
}

func fromPlatforms(ps []models.Platform) pq.StringArray {
	out := make(pq.StringArray, 0, len(ps))
	for _, p := range ps {
		out = append(out, string(p))
	}
	return out
}

// parseDimensions decodes the dimensions JSON blob. Anything absent, malformed
// or non-positive falls back to 1080x1080.
func parseDimensions(raw []byte) models.Dimensions {
	def := models.Dimensions{Width: models.DefaultTemplateWidth, Height: models.DefaultTemplateHeight}
	if len(bytes.TrimSpace(raw)) == 0 {
		return def
	}

	var fields struct {
		Width  json.RawMessage `json:"width"`
		Height json.RawMessage `json:"height"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return def
	}

	width, ok := parseDimension(fields.Width)
	if !ok {
		return def
	}
	height, ok := parseDimension(fields.Height)
	if !ok {
		return def
	}
	return models.Dimensions{Width: width, Height: height}
}

// parseDimension accepts a JSON number or a numeric string.
func parseDimension(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	}
	if f < 1 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
