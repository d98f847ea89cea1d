package mensa

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"mensabot-backend/lib/telemetry"
)

// Fetcher produces the raw menu page markup for a calendar date.
// Implementations must not retry, that is the cache's job.
type Fetcher interface {
	Fetch(ctx context.Context, day time.Time) ([]byte, error)
}

// HTTPFetcher fetches the meal plan from the Studierendenwerk site,
// which expects the date as a form parameter.
type HTTPFetcher struct {
	http *resty.Client
	url  string
}

func NewHTTPFetcher(menuURL string) *HTTPFetcher {
	client := resty.New()
	client.SetTimeout(time.Second * 30)
	telemetry.InstrumentResty(client, "mensa/http")

	return &HTTPFetcher{
		http: client,
		url:  menuURL,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, day time.Time) ([]byte, error) {
	res, err := f.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"tx_pamensa_mensa[date]": day.Format(time.DateOnly),
		}).
		Post(f.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrNetwork, res.StatusCode())
	}
	return res.Body(), nil
}
