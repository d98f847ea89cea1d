package mensa

import (
	"testing"
	"time"

	"mensabot-backend/lib/timezone"
)

func localTime(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, timezone.Location)
}

func TestResolveDate(t *testing.T) {
	// a Wednesday morning
	now := localTime(2024, 12, 18, 10, 30)

	testCases := []struct {
		name     string
		text     string
		now      time.Time
		expected time.Time
	}{
		{
			name:     "explicit date, day first",
			text:     "/menu 24.12.2024",
			now:      now,
			expected: localTime(2024, 12, 24, 0, 0),
		},
		{
			name:     "padded date",
			text:     "/menu 05.01.2025",
			now:      now,
			expected: localTime(2025, 1, 5, 0, 0),
		},
		{
			name:     "short year",
			text:     "/fullmenu 24.12.24",
			now:      now,
			expected: localTime(2024, 12, 24, 0, 0),
		},
		{
			name:     "day and month only",
			text:     "/menu 24.12.",
			now:      now,
			expected: localTime(2024, 12, 24, 0, 0),
		},
		{
			name:     "iso date",
			text:     "/menu 2024-12-24",
			now:      now,
			expected: localTime(2024, 12, 24, 0, 0),
		},
		{
			name:     "no date before 15:00",
			text:     "/menu",
			now:      localTime(2024, 12, 18, 14, 59),
			expected: localTime(2024, 12, 18, 0, 0),
		},
		{
			name:     "no date at 15:01 rolls to tomorrow",
			text:     "/menu",
			now:      localTime(2024, 12, 18, 15, 1),
			expected: localTime(2024, 12, 19, 0, 0),
		},
		{
			name:     "garbage token falls back",
			text:     "/menu morgen",
			now:      localTime(2024, 12, 18, 9, 0),
			expected: localTime(2024, 12, 18, 0, 0),
		},
		{
			name:     "garbage token after 15:00 rolls too",
			text:     "/menu morgen",
			now:      localTime(2024, 12, 18, 16, 0),
			expected: localTime(2024, 12, 19, 0, 0),
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			got := ResolveDate(test.text, test.now)
			if !got.Equal(test.expected) {
				t.Fatalf("resolved %v, expected %v", got, test.expected)
			}
		})
	}
}

func TestIsWeekend(t *testing.T) {
	if IsWeekend(localTime(2024, 12, 18, 0, 0)) {
		t.Fatal("Wednesday is not a weekend")
	}
	if !IsWeekend(localTime(2024, 12, 21, 0, 0)) {
		t.Fatal("Saturday is a weekend")
	}
	if !IsWeekend(localTime(2024, 12, 22, 0, 0)) {
		t.Fatal("Sunday is a weekend")
	}
}
