package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"solana-launch-guard/internal/domain"
	"solana-launch-guard/internal/storage"
)

// ScheduleStore implements storage.ScheduleStore using PostgreSQL.
type ScheduleStore struct {
	pool *Pool
}

// NewScheduleStore creates a new ScheduleStore.
func NewScheduleStore(pool *Pool) *ScheduleStore {
	return &ScheduleStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ScheduleStore = (*ScheduleStore)(nil)

// Upsert inserts or replaces the schedule for a mint.
func (s *ScheduleStore) Upsert(ctx context.Context, sched *domain.LaunchSchedule) error {
	if sched == nil || sched.Mint == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO launch_schedules (
			launch_id, mint, scheduled_time, status, whitelist_phase_end, public_phase_start, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (mint) DO UPDATE SET
			launch_id = EXCLUDED.launch_id,
			scheduled_time = EXCLUDED.scheduled_time,
			status = EXCLUDED.status,
			whitelist_phase_end = EXCLUDED.whitelist_phase_end,
			public_phase_start = EXCLUDED.public_phase_start,
			created_at = EXCLUDED.created_at
	`

	_, err := s.pool.Exec(ctx, query,
		sched.LaunchID,
		sched.Mint,
		sched.ScheduledTime,
		string(sched.Status),
		sched.WhitelistPhaseEnd,
		sched.PublicPhaseStart,
		sched.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert schedule: %w", err)
	}
	return nil
}

// GetByMint retrieves the schedule for a mint. Returns ErrNotFound if not exists.
func (s *ScheduleStore) GetByMint(ctx context.Context, mint string) (*domain.LaunchSchedule, error) {
	query := `
		SELECT launch_id, mint, scheduled_time, status, whitelist_phase_end, public_phase_start, created_at
		FROM launch_schedules
		WHERE mint = $1
	`

	row := s.pool.QueryRow(ctx, query, mint)
	sched, err := scanSchedule(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get schedule by mint: %w", err)
	}
	return sched, nil
}

// GetAll retrieves all schedules, ordered by scheduled time ASC.
func (s *ScheduleStore) GetAll(ctx context.Context) ([]*domain.LaunchSchedule, error) {
	query := `
		SELECT launch_id, mint, scheduled_time, status, whitelist_phase_end, public_phase_start, created_at
		FROM launch_schedules
		ORDER BY scheduled_time ASC, mint ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all schedules: %w", err)
	}
	defer rows.Close()

	return scanSchedules(rows)
}

// UpdateStatus sets the status for a mint. Returns ErrNotFound if not exists.
func (s *ScheduleStore) UpdateStatus(ctx context.Context, mint string, status domain.LaunchStatus) error {
	query := `
		UPDATE launch_schedules
		SET status = $2
		WHERE mint = $1
	`

	tag, err := s.pool.Exec(ctx, query, mint, string(status))
	if err != nil {
		return fmt.Errorf("update schedule status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// scanSchedule scans a single row into a LaunchSchedule.
func scanSchedule(row pgx.Row) (*domain.LaunchSchedule, error) {
	var sched domain.LaunchSchedule
	var statusStr string

	err := row.Scan(
		&sched.LaunchID,
		&sched.Mint,
		&sched.ScheduledTime,
		&statusStr,
		&sched.WhitelistPhaseEnd,
		&sched.PublicPhaseStart,
		&sched.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	sched.Status = domain.LaunchStatus(statusStr)
	return &sched, nil
}

// scanSchedules scans multiple rows into a slice of LaunchSchedule.
func scanSchedules(rows pgx.Rows) ([]*domain.LaunchSchedule, error) {
	var schedules []*domain.LaunchSchedule

	for rows.Next() {
		var sched domain.LaunchSchedule
		var statusStr string

		err := rows.Scan(
			&sched.LaunchID,
			&sched.Mint,
			&sched.ScheduledTime,
			&statusStr,
			&sched.WhitelistPhaseEnd,
			&sched.PublicPhaseStart,
			&sched.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}

		sched.Status = domain.LaunchStatus(statusStr)
		schedules = append(schedules, &sched)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedule rows: %w", err)
	}

	return schedules, nil
}
