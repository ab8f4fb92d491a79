package main

import (
	"bytes"
	"context"
	"log"
	"time"

	"holdings-pipeline/internal/api"
	"holdings-pipeline/internal/config"
	"holdings-pipeline/internal/database"
	"holdings-pipeline/internal/explorer"
	"holdings-pipeline/internal/export"
	"holdings-pipeline/internal/models"
	"holdings-pipeline/internal/pipeline"
	"holdings-pipeline/internal/price"
	"holdings-pipeline/internal/storage"
	"holdings-pipeline/internal/utils"
)

func main() {
	// Initialize logging with timestamp and file info
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	// Set up ClickHouse connection
	clickhouseConn := database.NewClickHouseConnection(ctx, cfg.ClickHouseAddr, cfg.ClickHouseDB)
	defer clickhouseConn.Close()

	if err := database.EnsureTables(ctx, clickhouseConn); err != nil {
		log.Fatalf("Error creating ClickHouse tables: %v", err)
	}

	// Initialize MinIO storage for run archives
	var runArchive storage.Storage = storage.SetupMinIOStorage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL)

	// Wire the pipeline
	explorerClient := explorer.NewClient(cfg.ExplorerBaseURL)
	explorerClient.Progress = logProgress

	priceClient := price.NewClient(cfg.PriceBaseURL)

	coordinator := pipeline.NewCoordinator(explorerClient, priceClient, cfg.Currencies)
	coordinator.Progress = logProgress

	log.Printf("Running pipeline for %d address(es) in %v", len(cfg.Addresses), cfg.Currencies)
	result, err := coordinator.Run(ctx, cfg.Addresses)
	if err != nil {
		log.Fatalf("Pipeline run failed: %v", err)
	}

	// Persist run output into ClickHouse
	loader := database.NewLoader(clickhouseConn)
	if err := loader.LoadTransactions(ctx, result.Transactions); err != nil {
		log.Fatalf("Error loading transactions into ClickHouse: %v", err)
	}
	if err := loader.LoadDailyPoints(ctx, result.Daily); err != nil {
		log.Fatalf("Error loading daily points into ClickHouse: %v", err)
	}

	// Archive the run as CSV in MinIO
	snapshot, err := export.TransactionsCSV(result.Transactions, cfg.Currencies)
	if err != nil {
		log.Fatalf("Error building run snapshot: %v", err)
	}
	if err := runArchive.UploadFile(export.ObjectName(time.Now()), bytes.NewReader(snapshot)); err != nil {
		log.Printf("Error archiving run to MinIO: %v", err)
	}

	log.Println("Data pipeline completed successfully.")

	// Display results in terminal
	utils.DisplaySummary(result.Summary, cfg.Currencies)
	utils.DisplayDailyPoints(result.Daily, cfg.Currencies)
	utils.DisplayYearlyStats(result.Yearly, cfg.Currencies)

	// Start the API server in a separate goroutine
	apiServer := api.NewServer(coordinator, clickhouseConn)
	go api.StartServer(cfg.APIAddr, apiServer)

	// Keep the main function running so it's possible to query the API
	select {}
}

func logProgress(p models.Progress) {
	switch {
	case p.Percent == 100:
		log.Printf("Run complete: %d transactions processed", p.Fetched)
	case p.EstimatedTotal < 0:
		log.Printf("Fetched %d transactions for %s", p.Fetched, p.Address)
	default:
		log.Printf("Fetched %d/%d transactions for %s", p.Fetched, p.EstimatedTotal, p.Address)
	}
}
