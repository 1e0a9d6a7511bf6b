// Package risk implements the token quality scorer, the risk scanner and
// the bot-behavior detector operating on a rolling per-wallet ledger.
package risk

import (
	"sync"
	"time"

	"solana-launch-guard/internal/domain"
)

// maxHistoryPerWallet caps the per-wallet transaction ledger. Oldest entries
// are evicted first (FIFO).
const maxHistoryPerWallet = 100

// Engine owns the mutable detection state: the per-wallet transaction ledger
// and the known-bots set. Scoring and scanning are pure and take no state.
// Construct one Engine per application lifetime and pass it explicitly.
type Engine struct {
	mu        sync.Mutex
	history   map[string][]domain.TransactionAnalysis
	knownBots map[string]struct{}
	now       func() int64
}

// NewEngine creates a new risk engine using the wall clock.
func NewEngine() *Engine {
	return NewEngineWithClock(func() int64 { return time.Now().UnixMilli() })
}

// NewEngineWithClock creates a risk engine with an injectable millisecond
// clock. Used by tests and by replay tooling.
func NewEngineWithClock(now func() int64) *Engine {
	return &Engine{
		history:   make(map[string][]domain.TransactionAnalysis),
		knownBots: make(map[string]struct{}),
		now:       now,
	}
}

// RecordTransaction appends a purchase attempt to the wallet's ledger and
// returns the stored analysis. The ledger is truncated to the most recent
// maxHistoryPerWallet entries after append.
func (e *Engine) RecordTransaction(wallet string, amount float64, flags []string) domain.TransactionAnalysis {
	return e.recordTransaction(wallet, "", amount, flags)
}

// RecordTransactionForMint is RecordTransaction with the token mint attached,
// used by callers that journal analyses to the audit store.
func (e *Engine) RecordTransactionForMint(wallet, mint string, amount float64, flags []string) domain.TransactionAnalysis {
	return e.recordTransaction(wallet, mint, amount, flags)
}

func (e *Engine) recordTransaction(wallet, mint string, amount float64, flags []string) domain.TransactionAnalysis {
	analysis := domain.TransactionAnalysis{
		Wallet:       wallet,
		Mint:         mint,
		Timestamp:    e.now(),
		Amount:       amount,
		IsSuspicious: len(flags) > 0,
		Flags:        append([]string(nil), flags...),
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	entries := append(e.history[wallet], analysis)
	if len(entries) > maxHistoryPerWallet {
		entries = entries[len(entries)-maxHistoryPerWallet:]
	}
	e.history[wallet] = entries

	return analysis
}

// History returns a copy of the wallet's ledger in chronological order.
func (e *Engine) History(wallet string) []domain.TransactionAnalysis {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.TransactionAnalysis(nil), e.history[wallet]...)
}

// LastTransaction returns the wallet's most recent recorded attempt.
func (e *Engine) LastTransaction(wallet string) (domain.TransactionAnalysis, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries := e.history[wallet]
	if len(entries) == 0 {
		return domain.TransactionAnalysis{}, false
	}
	return entries[len(entries)-1], true
}

// MarkBot adds a wallet to the known-bots set.
func (e *Engine) MarkBot(wallet string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.knownBots[wallet] = struct{}{}
}

// IsKnownBot reports whether a wallet is on the known-bots set.
func (e *Engine) IsKnownBot(wallet string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.knownBots[wallet]
	return ok
}

// KnownBots returns a copy of the known-bots set.
func (e *Engine) KnownBots() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	bots := make([]string, 0, len(e.knownBots))
	for w := range e.knownBots {
		bots = append(bots, w)
	}
	return bots
}
