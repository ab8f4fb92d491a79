package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"holdings-pipeline/internal/currency"
)

// Config holds everything the pipeline binary reads from the environment.
type Config struct {
	// External APIs
	ExplorerBaseURL string
	PriceBaseURL    string

	// Run inputs
	Addresses  []string
	Currencies []string

	// ClickHouse
	ClickHouseAddr string
	ClickHouseDB   string

	// MinIO
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	// HTTP API
	APIAddr string
}

// Load reads configuration from the environment, with a .env file as an
// optional source.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ExplorerBaseURL: envStr("EXPLORER_BASE_URL", "https://blockstream.info/api"),
		PriceBaseURL:    envStr("PRICE_BASE_URL", "https://mempool.space"),

		Addresses:  envList("ADDRESSES"),
		Currencies: envList("CURRENCIES"),

		ClickHouseAddr: envStr("CLICKHOUSE_ADDR", "127.0.0.1:9000"),
		ClickHouseDB:   envStr("CLICKHOUSE_DB", "default"),

		MinIOEndpoint:  envStr("MINIO_ENDPOINT", "localhost:9001"),
		MinIOAccessKey: envStr("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: envStr("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    envStr("MINIO_BUCKET", "holdings-runs"),
		MinIOUseSSL:    envBool("MINIO_USE_SSL", false),

		APIAddr: envStr("API_ADDR", ":8080"),
	}

	if len(cfg.Currencies) == 0 {
		cfg.Currencies = []string{"EUR"}
	}
	for i, cur := range cfg.Currencies {
		cfg.Currencies[i] = currency.Normalize(cur)
	}

	return cfg, nil
}

// Validate checks the parts of the config that have no usable fallback.
func (c *Config) Validate() error {
	var errs []string

	if len(c.Addresses) == 0 {
		errs = append(errs, "ADDRESSES is required (comma-separated list)")
	}
	for _, cur := range c.Currencies {
		if !currency.Supported(cur) {
			errs = append(errs, fmt.Sprintf("unsupported currency %q", cur))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "true" || v == "1" || v == "yes"
	}
	return fallback
}
