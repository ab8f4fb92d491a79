package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"holdings-pipeline/internal/aggregator"
	"holdings-pipeline/internal/explorer"
	"holdings-pipeline/internal/models"
	"holdings-pipeline/internal/price"
	"holdings-pipeline/internal/valuation"
)

var (
	ErrNoAddresses      = errors.New("no addresses to track")
	ErrDuplicateAddress = errors.New("duplicate address in tracked set")
)

// Result is the immutable output of one run, owned by the caller.
type Result struct {
	Transactions []models.ValuatedTransaction `json:"transactions"`
	Daily        []models.DailyPoint          `json:"daily"`
	Yearly       []models.YearlyStat          `json:"yearly"`
	Summary      models.Summary               `json:"summary"`
}

// Coordinator drives one full run: fetch histories, price them, then
// fold the results into the daily and yearly series. Address
// fetches fan out concurrently alongside the price build; the run fails
// as a whole if any of them fails, and cancelling the context abandons
// every in-flight fetch and backoff wait.
type Coordinator struct {
	Explorer   *explorer.Client
	Prices     *price.Client
	Aggregator *aggregator.Aggregator
	Currencies []string

	// Progress, when set, receives a final completion event after each
	// successful run. Page-level events come from the explorer client.
	Progress models.ProgressFunc
}

// NewCoordinator wires a Coordinator from its collaborators.
func NewCoordinator(exp *explorer.Client, prices *price.Client, currencies []string) *Coordinator {
	return &Coordinator{
		Explorer:   exp,
		Prices:     prices,
		Aggregator: aggregator.New(),
		Currencies: currencies,
	}
}

// Run executes the pipeline for an ordered set of addresses.
func (c *Coordinator) Run(ctx context.Context, addresses []string) (*Result, error) {
	if len(addresses) == 0 {
		return nil, ErrNoAddresses
	}
	seen := make(map[string]struct{}, len(addresses))
	for _, addr := range addresses {
		if _, dup := seen[addr]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAddress, addr)
		}
		seen[addr] = struct{}{}
	}

	perAddress := make([][]models.Transaction, len(addresses))
	var series price.Set

	g, gctx := errgroup.WithContext(ctx)
	for i, addr := range addresses {
		i, addr := i, addr
		g.Go(func() error {
			txs, err := c.Explorer.FetchHistory(gctx, addr)
			if err != nil {
				return err
			}
			perAddress[i] = txs
			return nil
		})
	}
	g.Go(func() error {
		s, err := c.Prices.BuildSeries(gctx, c.Currencies)
		if err != nil {
			return err
		}
		series = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var txs []models.Transaction
	for i, addrTxs := range perAddress {
		log.Printf("Fetched %d confirmed transactions for %s", len(addrTxs), addresses[i])
		txs = append(txs, addrTxs...)
	}

	vtxs := valuation.Valuate(txs, series)
	daily, yearly := c.Aggregator.Aggregate(vtxs, series)

	if c.Progress != nil {
		c.Progress(models.Progress{Fetched: len(txs), EstimatedTotal: len(txs), Percent: 100})
	}

	return &Result{
		Transactions: vtxs,
		Daily:        daily,
		Yearly:       yearly,
		Summary:      aggregator.Summarize(vtxs),
	}, nil
}
