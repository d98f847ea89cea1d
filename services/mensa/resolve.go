package mensa

import (
	"strings"
	"time"
)

// day-first, the convention of the site's audience
var dateLayouts = []string{
	"2.1.2006",
	"2.1.06",
	"2006-01-02",
}

// ResolveDate interprets the free text after a menu command as a
// target calendar date. It never fails: without a usable trailing
// date token it falls back to today, rolled to tomorrow once the
// local time reaches 15:00 (the kitchen has long closed by then).
func ResolveDate(text string, now time.Time) time.Time {
	fields := strings.Fields(text)
	if len(fields) > 1 {
		token := fields[len(fields)-1]
		for _, layout := range dateLayouts {
			parsed, err := time.ParseInLocation(layout, token, now.Location())
			if err == nil {
				return midnight(parsed, now.Location())
			}
		}
		// "24.12." style, year implied by the current one
		parsed, err := time.ParseInLocation("2.1.", token, now.Location())
		if err == nil {
			return time.Date(now.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, now.Location())
		}
	}

	day := now
	if now.Hour() >= 15 {
		day = now.AddDate(0, 0, 1)
	}
	return midnight(day, now.Location())
}

func midnight(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func IsWeekend(day time.Time) bool {
	weekday := day.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}
