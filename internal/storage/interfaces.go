package storage

import (
	"context"

	"solana-launch-guard/internal/domain"
)

// ScheduleStore provides access to launch_schedules storage.
// Schedules are keyed by mint; re-scheduling a mint replaces the previous row.
type ScheduleStore interface {
	// Upsert inserts or replaces the schedule for a mint.
	Upsert(ctx context.Context, s *domain.LaunchSchedule) error

	// GetByMint retrieves the schedule for a mint. Returns ErrNotFound if not exists.
	GetByMint(ctx context.Context, mint string) (*domain.LaunchSchedule, error)

	// GetAll retrieves all schedules, ordered by scheduled time ASC.
	GetAll(ctx context.Context) ([]*domain.LaunchSchedule, error)

	// UpdateStatus sets the status for a mint. Returns ErrNotFound if not exists.
	UpdateStatus(ctx context.Context, mint string, status domain.LaunchStatus) error
}

// BotListStore provides access to the persisted bot wallet list.
type BotListStore interface {
	// Add records a wallet as a confirmed bot. Adding an existing wallet is a no-op.
	Add(ctx context.Context, wallet string) error

	// Contains reports whether a wallet is on the bot list.
	Contains(ctx context.Context, wallet string) (bool, error)

	// All retrieves every wallet on the bot list.
	All(ctx context.Context) ([]string, error)
}

// AnalysisStore provides access to the transaction analysis audit trail.
type AnalysisStore interface {
	// Insert adds a single analysis record.
	Insert(ctx context.Context, a *domain.TransactionAnalysis) error

	// InsertBulk adds multiple analysis records in one batch.
	InsertBulk(ctx context.Context, records []*domain.TransactionAnalysis) error

	// GetByWallet retrieves all records for a wallet, ordered by timestamp ASC.
	GetByWallet(ctx context.Context, wallet string) ([]*domain.TransactionAnalysis, error)

	// GetByMint retrieves all records for a mint, ordered by timestamp ASC.
	GetByMint(ctx context.Context, mint string) ([]*domain.TransactionAnalysis, error)

	// GetByTimeRange retrieves records for a wallet within [start, end] (inclusive).
	GetByTimeRange(ctx context.Context, wallet string, start, end int64) ([]*domain.TransactionAnalysis, error)
}
