package mensa

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"mensabot-backend/lib/telemetry"
)

func testService(t *testing.T, fetch Fetcher) Service {
	return NewService(testCache(t, fetch, 10))
}

func TestDisplayTextWeekendShortCircuit(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/mensa")
	defer cleanup()

	fetch := &fakeFetcher{markup: menuPage(mealItemMarkup)}
	service := testService(t, fetch)

	// a Saturday
	got := service.DisplayText(context.Background(), day("2024-12-21"), false)
	require.Equal(t, "Am Wochenende bleibt die Mensaküche kalt", got)
	require.Equal(t, 0, fetch.callCount())
}

func TestDisplayTextUnavailable(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/mensa")
	defer cleanup()

	service := testService(t, &fakeFetcher{fail: true})

	got := service.DisplayText(context.Background(), day("2024-12-18"), false)
	require.Equal(t, "Kein Menü gefunden für 18.12.2024", got)
}

func TestDisplayTextRendersMenu(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/mensa")
	defer cleanup()

	service := testService(t, &fakeFetcher{markup: menuPage(mealItemMarkup)})

	got := service.DisplayText(context.Background(), day("2024-12-18"), false)
	require.Contains(t, got, "*Speiseplan 18.12.2024*")
	require.Contains(t, got, "*Tagesgericht:* 🐷")
	require.Contains(t, got, "Schnitzel mit Sauce, Kartoffeln")
}

func TestDigestSuppressedOnWeekend(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/mensa")
	defer cleanup()

	fetch := &fakeFetcher{markup: menuPage(mealItemMarkup)}
	service := testService(t, fetch)

	_, ok := service.digestFor(context.Background(), day("2024-12-22"))
	require.False(t, ok)
	require.Equal(t, 0, fetch.callCount())
}

func TestDigestSuppressedOnEmptyMenu(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/mensa")
	defer cleanup()

	service := testService(t, &fakeFetcher{markup: menuPage()})

	_, ok := service.digestFor(context.Background(), day("2024-12-18"))
	require.False(t, ok)
}

func TestDigestStillSentWhenUnavailable(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/mensa")
	defer cleanup()

	service := testService(t, &fakeFetcher{fail: true})

	text, ok := service.digestFor(context.Background(), day("2024-12-18"))
	require.True(t, ok)
	require.Equal(t, "Kein Menü gefunden für 18.12.2024", text)
}

func TestDigestRendersFilteredMenu(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/mensa")
	defer cleanup()

	service := testService(t, &fakeFetcher{markup: menuPage(mealItemMarkup)})

	text, ok := service.digestFor(context.Background(), day("2024-12-18"))
	require.True(t, ok)
	require.Contains(t, text, "*Tagesgericht:* 🐷")
}
