package price

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FetchError reports a failed price fetch for one currency. Any single
// failure fails the whole build: valuation needs every tracked currency.
type FetchError struct {
	Currency string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s prices: %v", e.Currency, e.Err)
	}
	return fmt.Sprintf("fetching %s prices: status %d", e.Currency, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client fetches historical price series from a mempool.space-compatible
// price API.
type Client struct {
	baseURL   string
	fetchFunc func(url string) (*http.Response, error)
}

// NewClient returns a Client for the given API base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:   baseURL,
		fetchFunc: http.Get,
	}
}

// BuildSeries fetches one series per currency, all currencies concurrently,
// and fails as a whole if any fetch fails or returns no data.
func (c *Client) BuildSeries(ctx context.Context, currencies []string) (Set, error) {
	var mu sync.Mutex
	set := make(Set, len(currencies))

	g, ctx := errgroup.WithContext(ctx)
	for _, cur := range currencies {
		cur := cur
		g.Go(func() error {
			series, err := c.fetchSeries(ctx, cur)
			if err != nil {
				return err
			}
			mu.Lock()
			set[cur] = series
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return set, nil
}

func (c *Client) fetchSeries(ctx context.Context, currency string) (*Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/v1/historical-price?currency=%s", c.baseURL, currency)
	resp, err := c.fetchFunc(url)
	if err != nil {
		return nil, &FetchError{Currency: currency, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{Currency: currency, Status: resp.StatusCode}
	}

	points, err := decodeSeries(resp, currency)
	if err != nil {
		return nil, &FetchError{Currency: currency, Err: err}
	}

	series, err := NewSeries(points)
	if err != nil {
		return nil, fmt.Errorf("%w for %s", err, currency)
	}
	return series, nil
}

// decodeSeries extracts (time, price) points from the API payload. Each
// entry is a flat object holding "time" plus one numeric field per
// currency; entries missing the requested currency are skipped.
func decodeSeries(resp *http.Response, currency string) ([]Point, error) {
	var payload struct {
		Prices []map[string]float64 `json:"prices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding price response: %w", err)
	}

	points := make([]Point, 0, len(payload.Prices))
	for _, entry := range payload.Prices {
		ts, ok := entry["time"]
		if !ok {
			continue
		}
		value, ok := entry[currency]
		if !ok {
			continue
		}
		points = append(points, Point{Time: int64(ts), Price: value})
	}
	return points, nil
}
