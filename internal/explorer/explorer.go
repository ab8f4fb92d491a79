package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"holdings-pipeline/internal/amount"
	"holdings-pipeline/internal/models"
)

const (
	// PageSize is the fixed number of transactions per explorer page. A
	// page shorter than this is the final one for the address.
	PageSize = 25

	// MaxPages caps pagination per address. Hitting the cap accepts the
	// partial result, it is not a failure.
	MaxPages = 100

	// pageDelay keeps requests under the explorer's rate limit.
	pageDelay = 1100 * time.Millisecond

	// rateLimitCooldown is how long to back off after a 429 before
	// retrying the same cursor.
	rateLimitCooldown = 5 * time.Second
)

// FetchError reports an unrecoverable explorer response for one address.
type FetchError struct {
	Address string
	Status  int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching transactions for %s: status %d", e.Address, e.Status)
}

// Client pages through an esplora-compatible block-explorer API.
type Client struct {
	baseURL   string
	fetchFunc func(url string) (*http.Response, error)
	wait      func(ctx context.Context, d time.Duration) error

	// Progress, when set, receives one advisory event per fetched page.
	Progress models.ProgressFunc
}

// NewClient returns a Client for the given explorer base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:   baseURL,
		fetchFunc: http.Get,
		wait:      sleepContext,
	}
}

// FetchHistory retrieves the confirmed transaction history of one address,
// oldest-to-newest in arrival order. Pagination is cursor-based: each page
// after the first is requested with the last transaction id of the
// previous page. Entries without a block time are dropped.
func (c *Client) FetchHistory(ctx context.Context, address string) ([]models.Transaction, error) {
	var (
		txs      []models.Transaction
		lastTxID string
		fetched  int
	)
	estimated := -1

	for page := 0; page < MaxPages; page++ {
		if page > 0 {
			if err := c.wait(ctx, pageDelay); err != nil {
				return nil, err
			}
		}

		raw, err := c.fetchPage(ctx, address, lastTxID)
		if err != nil {
			return nil, err
		}
		if page == 0 && len(raw) < PageSize {
			estimated = len(raw)
		}

		for _, rt := range raw {
			tx, ok := materialize(rt, address)
			if !ok {
				continue
			}
			txs = append(txs, tx)
		}

		fetched += len(raw)
		c.emit(models.Progress{Address: address, Fetched: fetched, EstimatedTotal: estimated})

		if len(raw) < PageSize {
			break
		}
		lastTxID = raw[len(raw)-1].TxID
	}

	return txs, nil
}

// fetchPage requests one page, retrying the same cursor after a cooldown
// for as long as the explorer keeps answering 429.
func (c *Client) fetchPage(ctx context.Context, address, lastTxID string) ([]models.RawTransaction, error) {
	url := fmt.Sprintf("%s/address/%s/txs", c.baseURL, address)
	if lastTxID != "" {
		url = fmt.Sprintf("%s/address/%s/txs/chain/%s", c.baseURL, address, lastTxID)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := c.fetchFunc(url)
		if err != nil {
			return nil, fmt.Errorf("fetching page for %s: %w", address, err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			if err := c.wait(ctx, rateLimitCooldown); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, &FetchError{Address: address, Status: resp.StatusCode}
		}

		var page []models.RawTransaction
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decoding page for %s: %w", address, err)
		}
		return page, nil
	}
}

// materialize turns a raw explorer entry into a pipeline Transaction.
// Unconfirmed entries (no block time) are dropped, not errors.
func materialize(raw models.RawTransaction, address string) (models.Transaction, bool) {
	if raw.Status.BlockTime == nil || *raw.Status.BlockTime <= 0 {
		return models.Transaction{}, false
	}
	return models.Transaction{
		TxID:      raw.TxID,
		Timestamp: time.Unix(*raw.Status.BlockTime, 0).UTC(),
		Amount:    amount.Resolve(raw, address),
	}, true
}

func (c *Client) emit(p models.Progress) {
	if c.Progress != nil {
		c.Progress(p)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
