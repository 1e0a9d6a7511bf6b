package postgres

import (
	"context"
	"fmt"

	"solana-launch-guard/internal/storage"
)

// BotListStore implements storage.BotListStore using PostgreSQL.
type BotListStore struct {
	pool *Pool
}

// NewBotListStore creates a new BotListStore.
func NewBotListStore(pool *Pool) *BotListStore {
	return &BotListStore{pool: pool}
}

// Compile-time interface check.
var _ storage.BotListStore = (*BotListStore)(nil)

// Add records a wallet as a confirmed bot. Adding an existing wallet is a no-op.
func (s *BotListStore) Add(ctx context.Context, wallet string) error {
	if wallet == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO bot_wallets (wallet) VALUES ($1)
	`

	_, err := s.pool.Exec(ctx, query, wallet)
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("add bot wallet: %w", err)
	}
	return nil
}

// Contains reports whether a wallet is on the bot list.
func (s *BotListStore) Contains(ctx context.Context, wallet string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM bot_wallets WHERE wallet = $1)
	`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, wallet).Scan(&exists); err != nil {
		return false, fmt.Errorf("check bot wallet: %w", err)
	}
	return exists, nil
}

// All retrieves every wallet on the bot list.
func (s *BotListStore) All(ctx context.Context) ([]string, error) {
	query := `
		SELECT wallet FROM bot_wallets ORDER BY wallet ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bot wallets: %w", err)
	}
	defer rows.Close()

	var wallets []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan bot wallet row: %w", err)
		}
		wallets = append(wallets, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bot wallet rows: %w", err)
	}

	return wallets, nil
}
