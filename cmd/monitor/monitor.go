package main

import (
	"context"
	"log"
	"time"

	"solana-launch-guard/internal/domain"
	"solana-launch-guard/internal/feed"
	"solana-launch-guard/internal/observability"
	"solana-launch-guard/internal/risk"
	"solana-launch-guard/internal/storage"
)

// Monitor consumes purchase events, feeds them through the risk engine and
// accumulates analysis records for batched inserts.
type Monitor struct {
	events        <-chan feed.PurchaseEvent
	engine        *risk.Engine
	botListStore  storage.BotListStore
	analysisStore storage.AnalysisStore
	batchSize     int
	flushInterval time.Duration
	logger        *log.Logger

	pending []*domain.TransactionAnalysis
}

// Run consumes events until the context is cancelled or the feed channel
// closes. Pending records are flushed before returning.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.flush(context.Background())
			return ctx.Err()
		case <-ticker.C:
			m.flush(ctx)
		case event, ok := <-m.events:
			if !ok {
				m.flush(ctx)
				return nil
			}
			m.processEvent(ctx, event)
		}
	}
}

// processEvent records the purchase, runs bot detection and marks wallets
// that cross the bot threshold.
func (m *Monitor) processEvent(ctx context.Context, event feed.PurchaseEvent) {
	observability.RecordFeedEvent()

	analysis := m.engine.RecordTransactionForMint(event.Wallet, event.Mint, event.Amount, nil)
	observability.RecordTransactionRecorded()

	result := m.engine.DetectBot(event.Wallet)
	observability.RecordBotDetection(result.IsBot, result.ShouldBlock)

	if result.IsBot && !m.engine.IsKnownBot(event.Wallet) {
		m.engine.MarkBot(event.Wallet)
		if err := m.botListStore.Add(ctx, event.Wallet); err != nil {
			m.logger.Printf("Failed to persist bot wallet %s: %v", event.Wallet, err)
		} else {
			m.logger.Printf("Marked bot wallet %s (confidence %d): %v", event.Wallet, result.Confidence, result.Indicators)
		}
	}

	m.pending = append(m.pending, &analysis)
	if len(m.pending) >= m.batchSize {
		m.flush(ctx)
	}
}

// flush writes pending analysis records in one batch. On failure the batch is
// dropped after logging; the audit trail is best effort and the engine keeps
// its own in-memory history.
func (m *Monitor) flush(ctx context.Context) {
	if len(m.pending) == 0 {
		return
	}

	start := time.Now()
	err := m.analysisStore.InsertBulk(ctx, m.pending)
	observability.RecordDBQuery("clickhouse", "insert_analyses", time.Since(start).Seconds(), err)
	if err != nil {
		m.logger.Printf("Failed to flush %d analysis records: %v", len(m.pending), err)
	}
	m.pending = m.pending[:0]
}
