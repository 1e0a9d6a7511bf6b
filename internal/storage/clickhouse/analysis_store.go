package clickhouse

import (
	"context"
	"fmt"

	"solana-launch-guard/internal/domain"
	"solana-launch-guard/internal/storage"
)

// AnalysisStore implements storage.AnalysisStore using ClickHouse.
// The transaction_analyses table is append-only; the risk engine keeps its
// own bounded in-memory window, this store holds the full audit trail.
type AnalysisStore struct {
	conn *Conn
}

// NewAnalysisStore creates a new AnalysisStore.
func NewAnalysisStore(conn *Conn) *AnalysisStore {
	return &AnalysisStore{conn: conn}
}

// Compile-time interface check.
var _ storage.AnalysisStore = (*AnalysisStore)(nil)

// Insert adds a single analysis record.
func (s *AnalysisStore) Insert(ctx context.Context, a *domain.TransactionAnalysis) error {
	if a == nil || a.Wallet == "" {
		return storage.ErrInvalidInput
	}
	return s.InsertBulk(ctx, []*domain.TransactionAnalysis{a})
}

// InsertBulk adds multiple analysis records in one batch.
func (s *AnalysisStore) InsertBulk(ctx context.Context, records []*domain.TransactionAnalysis) error {
	if len(records) == 0 {
		return nil
	}
	for _, a := range records {
		if a == nil || a.Wallet == "" {
			return storage.ErrInvalidInput
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO transaction_analyses (
			wallet, mint, timestamp_ms, amount, is_suspicious, flags
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, a := range records {
		flags := a.Flags
		if flags == nil {
			flags = []string{}
		}
		err = batch.Append(
			a.Wallet, a.Mint, uint64(a.Timestamp),
			a.Amount, a.IsSuspicious, flags,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByWallet retrieves all records for a wallet, ordered by timestamp ASC.
func (s *AnalysisStore) GetByWallet(ctx context.Context, wallet string) ([]*domain.TransactionAnalysis, error) {
	query := `
		SELECT wallet, mint, timestamp_ms, amount, is_suspicious, flags
		FROM transaction_analyses
		WHERE wallet = ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("query by wallet: %w", err)
	}
	defer rows.Close()

	return scanAnalyses(rows)
}

// GetByMint retrieves all records for a mint, ordered by timestamp ASC.
func (s *AnalysisStore) GetByMint(ctx context.Context, mint string) ([]*domain.TransactionAnalysis, error) {
	query := `
		SELECT wallet, mint, timestamp_ms, amount, is_suspicious, flags
		FROM transaction_analyses
		WHERE mint = ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, mint)
	if err != nil {
		return nil, fmt.Errorf("query by mint: %w", err)
	}
	defer rows.Close()

	return scanAnalyses(rows)
}

// GetByTimeRange retrieves records for a wallet within [start, end] (inclusive).
func (s *AnalysisStore) GetByTimeRange(ctx context.Context, wallet string, start, end int64) ([]*domain.TransactionAnalysis, error) {
	query := `
		SELECT wallet, mint, timestamp_ms, amount, is_suspicious, flags
		FROM transaction_analyses
		WHERE wallet = ? AND timestamp_ms >= ? AND timestamp_ms <= ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, wallet, uint64(start), uint64(end))
	if err != nil {
		return nil, fmt.Errorf("query by time range: %w", err)
	}
	defer rows.Close()

	return scanAnalyses(rows)
}

// Rows interface for scanning
type chRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanAnalyses scans multiple rows into a slice of TransactionAnalysis.
func scanAnalyses(rows chRows) ([]*domain.TransactionAnalysis, error) {
	var records []*domain.TransactionAnalysis

	for rows.Next() {
		var a domain.TransactionAnalysis
		var timestampMs uint64

		err := rows.Scan(
			&a.Wallet, &a.Mint, &timestampMs,
			&a.Amount, &a.IsSuspicious, &a.Flags,
		)
		if err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}

		a.Timestamp = int64(timestampMs)
		records = append(records, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analysis rows: %w", err)
	}

	return records, nil
}
