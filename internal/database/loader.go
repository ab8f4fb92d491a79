package database

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	"holdings-pipeline/internal/models"
)

// Loader persists run output into ClickHouse, one row per transaction or
// daily point per currency.
type Loader struct {
	Conn clickhouse.Conn
}

// NewLoader creates a new Loader.
func NewLoader(conn clickhouse.Conn) *Loader {
	return &Loader{
		Conn: conn,
	}
}

// LoadTransactions batch-inserts valuated transactions.
func (l *Loader) LoadTransactions(ctx context.Context, vtxs []models.ValuatedTransaction) error {
	batch, err := l.Conn.PrepareBatch(ctx, "INSERT INTO holdings_transactions (txid, timestamp, amount_sats, currency, value_at_tx, value_at_latest)")
	if err != nil {
		return fmt.Errorf("preparing transaction batch: %w", err)
	}

	for _, vtx := range vtxs {
		for cur, atTx := range vtx.ValueAtTx {
			err := batch.Append(vtx.TxID, vtx.Timestamp, vtx.Amount, cur, atTx, vtx.ValueAtLatest[cur])
			if err != nil {
				return fmt.Errorf("appending transaction row: %w", err)
			}
		}
	}

	return batch.Send()
}

// LoadDailyPoints batch-inserts the daily chart series.
func (l *Loader) LoadDailyPoints(ctx context.Context, points []models.DailyPoint) error {
	batch, err := l.Conn.PrepareBatch(ctx, "INSERT INTO holdings_daily (date, currency, cumulative_sats, cumulative_deposit, portfolio_value)")
	if err != nil {
		return fmt.Errorf("preparing daily batch: %w", err)
	}

	for _, p := range points {
		for cur, portfolio := range p.PortfolioValue {
			err := batch.Append(p.Date, cur, p.CumulativeSats, p.CumulativeDeposit[cur], portfolio)
			if err != nil {
				return fmt.Errorf("appending daily row: %w", err)
			}
		}
	}

	return batch.Send()
}
