package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"holdings-pipeline/internal/aggregator"
	"holdings-pipeline/internal/currency"
	"holdings-pipeline/internal/database"
	"holdings-pipeline/internal/explorer"
	"holdings-pipeline/internal/pipeline"
	"holdings-pipeline/internal/price"
)

// Server exposes the pipeline and the persisted daily series over HTTP.
type Server struct {
	Coordinator *pipeline.Coordinator
	Conn        clickhouse.Conn

	fetchDaily func(ctx context.Context, cur string, from, to time.Time) ([]database.DailyRow, error)
}

// NewServer initializes a new API server instance.
func NewServer(coordinator *pipeline.Coordinator, conn clickhouse.Conn) *Server {
	s := &Server{
		Coordinator: coordinator,
		Conn:        conn,
	}
	s.fetchDaily = func(ctx context.Context, cur string, from, to time.Time) ([]database.DailyRow, error) {
		return database.FetchDailyPoints(ctx, s.Conn, cur, from, to)
	}
	return s
}

// PortfolioHandler handles the /portfolio endpoint: it runs the pipeline
// for the comma-separated addresses query parameter and returns the
// result set as JSON. An optional year parameter narrows the transaction
// list to one calendar year.
func (s *Server) PortfolioHandler(w http.ResponseWriter, r *http.Request) {
	addresses := splitAddresses(r.URL.Query().Get("addresses"))
	if len(addresses) == 0 {
		http.Error(w, "Missing 'addresses' query parameter", http.StatusBadRequest)
		return
	}

	result, err := s.Coordinator.Run(r.Context(), addresses)
	if err != nil {
		writeRunError(w, err)
		return
	}

	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			http.Error(w, "Invalid 'year' query parameter", http.StatusBadRequest)
			return
		}
		result.Transactions = aggregator.FilterByYear(result.Transactions, year)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// DailyHandler handles the /daily endpoint: the persisted chart series
// for one currency over a date range.
func (s *Server) DailyHandler(w http.ResponseWriter, r *http.Request) {
	cur := currency.Normalize(r.URL.Query().Get("currency"))
	if cur == "" {
		http.Error(w, "Missing 'currency' query parameter", http.StatusBadRequest)
		return
	}

	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "Invalid 'from' date. Use YYYY-MM-DD.", http.StatusBadRequest)
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "Invalid 'to' date. Use YYYY-MM-DD.", http.StatusBadRequest)
		return
	}

	rows, err := s.fetchDaily(r.Context(), cur, from, to)
	if err != nil {
		log.Printf("Error fetching daily points: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rows); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeRunError maps pipeline failures to responses carrying enough
// context (address or currency) to render an actionable message.
func writeRunError(w http.ResponseWriter, err error) {
	log.Printf("Pipeline run failed: %v", err)

	var fetchErr *explorer.FetchError
	var priceErr *price.FetchError
	switch {
	case errors.Is(err, pipeline.ErrDuplicateAddress):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &fetchErr), errors.As(err, &priceErr), errors.Is(err, price.ErrNoPriceData):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func splitAddresses(raw string) []string {
	var addresses []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			addresses = append(addresses, part)
		}
	}
	return addresses
}

// StartServer initializes and starts the API server.
func StartServer(addr string, server *Server) {
	http.HandleFunc("/portfolio", server.PortfolioHandler)
	http.HandleFunc("/daily", server.DailyHandler)

	log.Printf("API server is running on %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("Failed to start API server: %v", err)
	}
}
