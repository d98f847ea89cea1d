package mensa

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"
)

var tracer = otel.Tracer("services/mensa")

// RetryPolicy bounds how long a cache miss may keep hammering the
// menu provider. All failure kinds are retried alike, transient and
// permanent causes are not told apart at this layer.
type RetryPolicy struct {
	// fixed wait between attempts
	Interval time.Duration
	// total elapsed time allowed across all attempts
	Budget time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Interval: time.Second * 2,
		Budget:   time.Second * 30,
	}
}

// MenuCache memoizes the fetch/extract/parse pipeline per calendar
// date. Entries are never invalidated, a published menu is assumed
// immutable for the process lifetime; capacity pressure evicts the
// least-recently-used date.
type MenuCache struct {
	fetch   Fetcher
	extract Extractor
	retry   RetryPolicy

	entries *lru.Cache[string, DailyMenu]
	group   singleflight.Group
}

func NewMenuCache(fetch Fetcher, extract Extractor, capacity int, retry RetryPolicy) (*MenuCache, error) {
	entries, err := lru.New[string, DailyMenu](capacity)
	if err != nil {
		return nil, err
	}
	return &MenuCache{
		fetch:   fetch,
		extract: extract,
		retry:   retry,
		entries: entries,
	}, nil
}

// GetOrFetch returns the menu for a date, loading and caching it on a
// miss. Concurrent misses for the same date share one in-flight load.
// Only successful loads are cached, a failed load surfaces as
// ErrMenuUnavailable wrapping its root cause.
func (c *MenuCache) GetOrFetch(ctx context.Context, day time.Time) (DailyMenu, error) {
	ctx, span := tracer.Start(ctx, "GetOrFetch")
	defer span.End()

	key := day.Format(time.DateOnly)
	span.SetAttributes(attribute.String("date", key))

	if menu, hit := c.entries.Get(key); hit {
		return menu, nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		// another caller may have populated the entry while we
		// waited on the flight group
		if menu, hit := c.entries.Get(key); hit {
			return menu, nil
		}
		menu, err := c.loadWithRetry(ctx, day)
		if err != nil {
			return nil, err
		}
		c.entries.Add(key, menu)
		return menu, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "retry budget exhausted")
		return nil, fmt.Errorf("%w (date %s): %w", ErrMenuUnavailable, key, err)
	}
	return result.(DailyMenu), nil
}

func (c *MenuCache) loadWithRetry(ctx context.Context, day time.Time) (DailyMenu, error) {
	deadline := time.Now().Add(c.retry.Budget)

	for attempt := 1; ; attempt++ {
		menu, err := c.load(ctx, day)
		if err == nil {
			return menu, nil
		}
		slog.WarnContext(
			ctx, "menu load failed",
			"date", day.Format(time.DateOnly),
			"attempt", attempt,
			"err", err,
		)

		if time.Now().Add(c.retry.Interval).After(deadline) {
			return nil, err
		}
		select {
		case <-time.After(c.retry.Interval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// load runs the fetch, extract and parse stages as one retryable unit.
func (c *MenuCache) load(ctx context.Context, day time.Time) (DailyMenu, error) {
	markup, err := c.fetch.Fetch(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	nodes, err := c.extract.Extract(markup)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	menu := make(DailyMenu, 0, len(nodes))
	for i, node := range nodes {
		item, err := parseMenuItem(node)
		if err != nil {
			return nil, fmt.Errorf("parse item %d: %w", i, err)
		}
		menu = append(menu, item)
	}
	return menu, nil
}
