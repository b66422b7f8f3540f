package service

import (
	"fmt"
	"slices"
	"time"

	"github.com/maheshrc27/content-studio/internal/models"
)

type ScheduleReader interface {
	ScheduledPosts() []*models.ScheduledPost
	GetContent(id string) (*models.Content, error)
}

type CalendarEntry struct {
	Post         *models.ScheduledPost `json:"post"`
	ContentTitle string                `json:"contentTitle"`
}

type CalendarDay struct {
	Date    string          `json:"date"`
	Entries []CalendarEntry `json:"entries"`
}

// CalendarMonth groups the scheduled posts of month ("YYYY-MM") by day in loc.
// Days are ascending and posts within a day are ordered by time.
func CalendarMonth(store ScheduleReader, month string, loc *time.Location) ([]CalendarDay, error) {
	if loc == nil {
		loc = time.UTC
	}
	start, err := time.ParseInLocation("2006-01", month, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: month must be YYYY-MM", models.ErrPrecondition)
	}
	end := start.AddDate(0, 1, 0)

	posts := slices.DeleteFunc(store.ScheduledPosts(), func(sp *models.ScheduledPost) bool {
		at := sp.ScheduledFor.In(loc)
		return at.Before(start) || !at.Before(end)
	})
	slices.SortFunc(posts, func(a, b *models.ScheduledPost) int {
		return a.ScheduledFor.Compare(b.ScheduledFor)
	})

	days := []CalendarDay{}
	for _, sp := range posts {
		date := sp.ScheduledFor.In(loc).Format(time.DateOnly)
		entry := CalendarEntry{Post: sp}
		if c, err := store.GetContent(sp.ContentID); err == nil {
			entry.ContentTitle = c.Title
		}
		if n := len(days); n > 0 && days[n-1].Date == date {
			days[n-1].Entries = append(days[n-1].Entries, entry)
			continue
		}
		days = append(days, CalendarDay{Date: date, Entries: []CalendarEntry{entry}})
	}
	return days, nil
}
