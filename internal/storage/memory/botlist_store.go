package memory

import (
	"context"
	"sort"
	"sync"

	"solana-launch-guard/internal/storage"
)

// BotListStore is an in-memory implementation of storage.BotListStore.
type BotListStore struct {
	mu      sync.RWMutex
	wallets map[string]struct{}
}

// NewBotListStore creates a new in-memory bot list store.
func NewBotListStore() *BotListStore {
	return &BotListStore{
		wallets: make(map[string]struct{}),
	}
}

// Add records a wallet as a confirmed bot. Adding an existing wallet is a no-op.
func (s *BotListStore) Add(_ context.Context, wallet string) error {
	if wallet == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.wallets[wallet] = struct{}{}
	return nil
}

// Contains reports whether a wallet is on the bot list.
func (s *BotListStore) Contains(_ context.Context, wallet string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.wallets[wallet]
	return exists, nil
}

// All retrieves every wallet on the bot list.
func (s *BotListStore) All(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wallets := make([]string, 0, len(s.wallets))
	for w := range s.wallets {
		wallets = append(wallets, w)
	}
	sort.Strings(wallets)
	return wallets, nil
}

var _ storage.BotListStore = (*BotListStore)(nil)
