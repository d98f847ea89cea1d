package mensa

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"mensabot-backend/lib/timezone"
)

const closedMessage = "Am Wochenende bleibt die Mensaküche kalt"

// Service is the menu pipeline behind the chat transport: it resolves
// dates, consults the cache and renders display text. It never leaks
// pipeline errors to users, failures turn into fixed messages.
type Service struct {
	cache *MenuCache
}

func NewService(cache *MenuCache) Service {
	return Service{cache: cache}
}

// DisplayText produces the menu text for a date. Weekends
// short-circuit before the cache is ever consulted.
func (s Service) DisplayText(ctx context.Context, day time.Time, full bool) string {
	if IsWeekend(day) {
		return closedMessage
	}

	menu, err := s.cache.GetOrFetch(ctx, day)
	if err != nil {
		slog.ErrorContext(
			ctx, "error getting menu",
			"date", day.Format(time.DateOnly),
			"err", err,
		)
		return "Kein Menü gefunden für " + day.Format("02.01.2006")
	}
	return Render(menu, full, day)
}

// HandleCommand interprets a /menu or /fullmenu command with an
// optional trailing date.
func (s Service) HandleCommand(ctx context.Context, text string) string {
	full := strings.HasPrefix(text, "/fullmenu")
	day := ResolveDate(text, timezone.Now())
	return s.DisplayText(ctx, day, full)
}

// DailyDigest returns the text for the scheduled push, or ok=false
// when nothing should be sent at all.
func (s Service) DailyDigest(ctx context.Context) (string, bool) {
	return s.digestFor(ctx, timezone.Now())
}

func (s Service) digestFor(ctx context.Context, day time.Time) (string, bool) {
	if IsWeekend(day) {
		return "", false
	}

	menu, err := s.cache.GetOrFetch(ctx, day)
	if err != nil {
		slog.ErrorContext(
			ctx, "error getting menu for daily push",
			"date", day.Format(time.DateOnly),
			"err", err,
		)
		return "Kein Menü gefunden für " + day.Format("02.01.2006"), true
	}
	if len(menu) == 0 {
		// the page parsed but listed nothing, pushing an empty menu
		// to every chat helps nobody
		slog.WarnContext(
			ctx, "menu parsed empty, suppressing daily push",
			"date", day.Format(time.DateOnly),
		)
		return "", false
	}
	return Render(menu, false, day), true
}
