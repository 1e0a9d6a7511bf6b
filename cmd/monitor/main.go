// Package main provides the purchase feed monitor: it consumes purchase
// events from a WebSocket feed, records them in the risk engine, runs bot
// detection per wallet, and writes the analysis audit trail to ClickHouse
// in batches.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solana-launch-guard/internal/feed"
	"solana-launch-guard/internal/observability"
	"solana-launch-guard/internal/risk"
	"solana-launch-guard/internal/storage"
	chstore "solana-launch-guard/internal/storage/clickhouse"
	"solana-launch-guard/internal/storage/memory"
	"solana-launch-guard/internal/storage/migrations"
	pgstore "solana-launch-guard/internal/storage/postgres"
)

func main() {
	// Parse flags
	feedEndpoint := flag.String("feed-endpoint", os.Getenv("FEED_WS_ENDPOINT"), "Purchase feed WebSocket endpoint")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	batchSize := flag.Int("batch-size", 500, "Analysis records per ClickHouse batch")
	flushInterval := flag.Duration("flush-interval", 10*time.Second, "Maximum time between batch flushes")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")
	metricsAddr := flag.String("metrics-addr", ":9091", "Prometheus metrics HTTP address (empty to disable)")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[monitor] ", log.LstdFlags|log.Lshortfile)

	// Validate required flags
	if *feedEndpoint == "" {
		logger.Fatal("--feed-endpoint is required")
	}
	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}

	// Start metrics server if enabled
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("Starting metrics server on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())

	// Handle shutdown signals with graceful timeout
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		// Wait for second signal for immediate shutdown
		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
			// Normal shutdown completed
		}
	}()

	err := run(ctx, logger, *feedEndpoint, *postgresDSN, *clickhouseDSN, *batchSize, *flushInterval, *useMemory)
	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Fatalf("Error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// run wires the stores and feed client together and consumes until cancelled.
func run(ctx context.Context, logger *log.Logger, feedEndpoint, postgresDSN, clickhouseDSN string, batchSize int, flushInterval time.Duration, useMemory bool) error {
	var (
		botListStore  storage.BotListStore
		analysisStore storage.AnalysisStore
		cleanup       func()
	)

	if useMemory {
		botListStore = memory.NewBotListStore()
		analysisStore = memory.NewAnalysisStore()
		cleanup = func() {}
	} else {
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return fmt.Errorf("postgres migrations: %w", err)
		}

		chConn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
		if err != nil {
			pool.Close()
			return fmt.Errorf("clickhouse migrations: %w", err)
		}

		botListStore = pgstore.NewBotListStore(pool)
		analysisStore = chstore.NewAnalysisStore(chConn)
		cleanup = func() {
			chConn.Close()
			pool.Close()
		}
	}
	defer cleanup()

	engine := risk.NewEngine()

	// Seed the engine with previously detected bots
	bots, err := botListStore.All(ctx)
	if err != nil {
		return fmt.Errorf("load bot list: %w", err)
	}
	for _, wallet := range bots {
		engine.MarkBot(wallet)
	}
	logger.Printf("Loaded %d known bots", len(bots))

	client, err := feed.NewClient(ctx, feedEndpoint, nil)
	if err != nil {
		return fmt.Errorf("connect to feed: %w", err)
	}
	defer client.Close()

	m := &Monitor{
		events:        client.Events(),
		engine:        engine,
		botListStore:  botListStore,
		analysisStore: analysisStore,
		batchSize:     batchSize,
		flushInterval: flushInterval,
		logger:        logger,
	}

	logger.Printf("Monitoring purchase feed %s", feedEndpoint)
	return m.Run(ctx)
}
