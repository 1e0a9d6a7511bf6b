// Package main provides the unified launch protection server:
// - HTTP API: quality scoring, risk scanning, launch scheduling, purchase gating
// - Persistence: schedules and bot list in PostgreSQL, analyses in ClickHouse
// - Observability: Prometheus metrics, health and status endpoints
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"solana-launch-guard/internal/domain"
	"solana-launch-guard/internal/launch"
	"solana-launch-guard/internal/policy"
	"solana-launch-guard/internal/risk"
	"solana-launch-guard/internal/solana"
	"solana-launch-guard/internal/storage"
	chstore "solana-launch-guard/internal/storage/clickhouse"
	"solana-launch-guard/internal/storage/memory"
	"solana-launch-guard/internal/storage/migrations"
	pgstore "solana-launch-guard/internal/storage/postgres"
)

// Server holds all components of the unified service.
type Server struct {
	// Configuration
	httpAddr      string
	postgresDSN   string
	clickhouseDSN string
	useMemory     bool

	// Stores
	stores *allStores

	// Components
	engine    *risk.Engine
	scheduler *launch.Scheduler
	sampler   solana.PerfSampler
	logger    *log.Logger

	// State
	mu            sync.Mutex
	defaultConfig domain.AntiSnipeConfig
	mintConfigs   map[string]domain.AntiSnipeConfig
	started       time.Time

	// Stats
	validations int64
	denials     int64
}

// allStores holds all storage implementations.
type allStores struct {
	scheduleStore storage.ScheduleStore
	botListStore  storage.BotListStore
	analysisStore storage.AnalysisStore
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	httpAddr := flag.String("http-addr", envOr("HTTP_ADDR", ":8080"), "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	rpcEndpoint := flag.String("rpc-endpoint", os.Getenv("SOLANA_RPC_ENDPOINT"), "Solana RPC HTTP endpoint (optional, enables network TPS in /status)")
	level := flag.String("protection-level", envOr("PROTECTION_LEVEL", "standard"), "Default protection level (none, basic, standard, advanced)")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	// Validate required flags
	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}
	defaultLevel := domain.ProtectionLevel(*level)
	if !defaultLevel.IsValid() {
		logger.Fatalf("Invalid protection level %q", *level)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())

	// Create stores and run migrations
	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	engine := risk.NewEngine()
	scheduler := launch.NewScheduler(engine)

	var sampler solana.PerfSampler
	if *rpcEndpoint != "" {
		sampler = solana.NewHTTPClient(*rpcEndpoint)
	}

	server := &Server{
		httpAddr:      *httpAddr,
		postgresDSN:   *postgresDSN,
		clickhouseDSN: *clickhouseDSN,
		useMemory:     *useMemory,
		stores:        stores,
		engine:        engine,
		scheduler:     scheduler,
		sampler:       sampler,
		logger:        logger,
		defaultConfig: policy.ForLevel(defaultLevel, nil),
		mintConfigs:   make(map[string]domain.AntiSnipeConfig),
		started:       time.Now(),
	}

	// Recover persisted state before accepting traffic
	if err := server.restore(ctx); err != nil {
		logger.Fatalf("Failed to restore state: %v", err)
	}

	// Channel to signal completion
	done := make(chan error, 1)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

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

	// Run the HTTP server until cancelled
	err = server.Run(ctx)
	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates all required stores and applies migrations for the
// database-backed mode.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (*allStores, func(), error) {
	if useMemory {
		stores := &allStores{
			scheduleStore: memory.NewScheduleStore(),
			botListStore:  memory.NewBotListStore(),
			analysisStore: memory.NewAnalysisStore(),
		}
		return stores, func() {}, nil
	}

	// PostgreSQL
	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres migrations: %w", err)
	}

	// ClickHouse (migrations create the database and return the connection)
	chConn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
	}

	stores := &allStores{
		scheduleStore: pgstore.NewScheduleStore(pool),
		botListStore:  pgstore.NewBotListStore(pool),
		analysisStore: chstore.NewAnalysisStore(chConn),
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}

	return stores, cleanup, nil
}

// restore reloads persisted schedules and the bot list into the in-memory
// components after a restart.
func (s *Server) restore(ctx context.Context) error {
	schedules, err := s.stores.scheduleStore.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load schedules: %w", err)
	}
	for _, schedule := range schedules {
		s.scheduler.Restore(*schedule)
	}

	bots, err := s.stores.botListStore.All(ctx)
	if err != nil {
		return fmt.Errorf("load bot list: %w", err)
	}
	for _, wallet := range bots {
		s.engine.MarkBot(wallet)
	}

	s.logger.Printf("Restored %d schedules and %d known bots", len(schedules), len(bots))
	return nil
}

// Run serves HTTP until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.httpAddr,
		Handler: s.routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("Starting HTTP server on %s", s.httpAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Printf("HTTP shutdown error: %v", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// configFor returns the protection config applied to a mint, falling back to
// the server default when the mint was never scheduled.
func (s *Server) configFor(mint string) domain.AntiSnipeConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg, ok := s.mintConfigs[mint]; ok {
		return cfg
	}
	return s.defaultConfig
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
