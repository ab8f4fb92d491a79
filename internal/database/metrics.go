package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// DailyRow is one persisted daily chart point for one currency.
type DailyRow struct {
	Date              time.Time `ch:"date" json:"date"`
	Currency          string    `ch:"currency" json:"currency"`
	CumulativeSats    int64     `ch:"cumulative_sats" json:"cumulativeSats"`
	CumulativeDeposit float64   `ch:"cumulative_deposit" json:"cumulativeDeposit"`
	PortfolioValue    float64   `ch:"portfolio_value" json:"portfolioValue"`
}

// FetchDailyPoints retrieves the persisted daily series for one currency
// over a date range, oldest first.
func FetchDailyPoints(ctx context.Context, conn clickhouse.Conn, currency string, from, to time.Time) ([]DailyRow, error) {
	var rows []DailyRow
	query := `
        SELECT
            date,
            currency,
            cumulative_sats,
            cumulative_deposit,
            portfolio_value
        FROM holdings_daily
        WHERE currency = ? AND date BETWEEN ? AND ?
        ORDER BY date
        `

	if err := conn.Select(ctx, &rows, query, currency, from, to); err != nil {
		return nil, fmt.Errorf("error executing query '%s': %v", query, err)
	}

	return rows, nil
}
