package database

import (
	"context"
	"log"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// NewClickHouseConnection initializes and returns a ClickHouse connection.
func NewClickHouseConnection(ctx context.Context, addr, db string) clickhouse.Conn {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: db,
		},
	})
	if err != nil {
		log.Fatalf("Error connecting to ClickHouse: %v", err)
	}

	if err := conn.Ping(ctx); err != nil {
		log.Fatalf("ClickHouse ping failed: %v", err)
	}

	log.Println("Successfully connected to ClickHouse.")
	return conn
}

// EnsureTables creates the holdings tables if they do not exist yet.
func EnsureTables(ctx context.Context, conn clickhouse.Conn) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS holdings_transactions (
			txid String,
			timestamp DateTime,
			amount_sats Int64,
			currency String,
			value_at_tx Float64,
			value_at_latest Float64
		) ENGINE = ReplacingMergeTree
		ORDER BY (txid, currency)`,
		`CREATE TABLE IF NOT EXISTS holdings_daily (
			date Date,
			currency String,
			cumulative_sats Int64,
			cumulative_deposit Float64,
			portfolio_value Float64
		) ENGINE = ReplacingMergeTree
		ORDER BY (date, currency)`,
	}
	for _, stmt := range ddl {
		if err := conn.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
