package memory

import (
	"context"
	"sort"
	"sync"

	"solana-launch-guard/internal/domain"
	"solana-launch-guard/internal/storage"
)

// AnalysisStore is an in-memory implementation of storage.AnalysisStore.
type AnalysisStore struct {
	mu      sync.RWMutex
	records []*domain.TransactionAnalysis
}

// NewAnalysisStore creates a new in-memory analysis store.
func NewAnalysisStore() *AnalysisStore {
	return &AnalysisStore{}
}

// Insert adds a single analysis record.
func (s *AnalysisStore) Insert(_ context.Context, a *domain.TransactionAnalysis) error {
	if a == nil || a.Wallet == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, copyAnalysis(a))
	return nil
}

// InsertBulk adds multiple analysis records in one batch.
func (s *AnalysisStore) InsertBulk(_ context.Context, records []*domain.TransactionAnalysis) error {
	for _, a := range records {
		if a == nil || a.Wallet == "" {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range records {
		s.records = append(s.records, copyAnalysis(a))
	}
	return nil
}

// GetByWallet retrieves all records for a wallet, ordered by timestamp ASC.
func (s *AnalysisStore) GetByWallet(_ context.Context, wallet string) ([]*domain.TransactionAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filter(func(a *domain.TransactionAnalysis) bool {
		return a.Wallet == wallet
	}), nil
}

// GetByMint retrieves all records for a mint, ordered by timestamp ASC.
func (s *AnalysisStore) GetByMint(_ context.Context, mint string) ([]*domain.TransactionAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filter(func(a *domain.TransactionAnalysis) bool {
		return a.Mint == mint
	}), nil
}

// GetByTimeRange retrieves records for a wallet within [start, end] (inclusive).
func (s *AnalysisStore) GetByTimeRange(_ context.Context, wallet string, start, end int64) ([]*domain.TransactionAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filter(func(a *domain.TransactionAnalysis) bool {
		return a.Wallet == wallet && a.Timestamp >= start && a.Timestamp <= end
	}), nil
}

// filter returns copies of matching records sorted by timestamp.
// Caller must hold at least a read lock.
func (s *AnalysisStore) filter(match func(*domain.TransactionAnalysis) bool) []*domain.TransactionAnalysis {
	var out []*domain.TransactionAnalysis
	for _, a := range s.records {
		if match(a) {
			out = append(out, copyAnalysis(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

func copyAnalysis(a *domain.TransactionAnalysis) *domain.TransactionAnalysis {
	aCopy := *a
	if a.Flags != nil {
		aCopy.Flags = append([]string(nil), a.Flags...)
	}
	return &aCopy
}

var _ storage.AnalysisStore = (*AnalysisStore)(nil)
