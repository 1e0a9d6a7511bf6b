// Package launch tracks per-token launch schedules and gates purchase
// attempts against them.
package launch

import (
	"sync"
	"time"

	"solana-launch-guard/internal/domain"
	"solana-launch-guard/internal/idhash"
	"solana-launch-guard/internal/risk"
)

// whitelistPhaseMs is the length of the whitelist-only window preceding the
// public phase.
const whitelistPhaseMs = 5 * 60 * 1000

// Scheduler owns the mint -> LaunchSchedule map. Schedules are retained for
// the lifetime of the scheduler and are never destroyed; Complete and Cancel
// only transition status.
type Scheduler struct {
	mu        sync.Mutex
	schedules map[string]*domain.LaunchSchedule
	engine    *risk.Engine
	now       func() int64
}

// NewScheduler creates a scheduler using the wall clock. The risk engine is
// consulted during purchase validation (known bots, cooldown).
func NewScheduler(engine *risk.Engine) *Scheduler {
	return NewSchedulerWithClock(engine, func() int64 { return time.Now().UnixMilli() })
}

// NewSchedulerWithClock creates a scheduler with an injectable millisecond
// clock.
func NewSchedulerWithClock(engine *risk.Engine, now func() int64) *Scheduler {
	return &Scheduler{
		schedules: make(map[string]*domain.LaunchSchedule),
		engine:    engine,
		now:       now,
	}
}

// Schedule creates a launch schedule for the mint from the protection config.
// Re-scheduling the same mint overwrites the prior schedule (last write wins).
func (s *Scheduler) Schedule(mint string, cfg domain.AntiSnipeConfig) domain.LaunchSchedule {
	now := s.now()
	scheduledTime := now + int64(cfg.LaunchDelayMinutes)*60_000

	schedule := &domain.LaunchSchedule{
		LaunchID:         idhash.ComputeLaunchID(mint, cfg.Level, scheduledTime),
		Mint:             mint,
		ScheduledTime:    scheduledTime,
		Status:           domain.LaunchScheduled,
		PublicPhaseStart: scheduledTime,
		CreatedAt:        now,
	}
	if cfg.WhitelistEnabled {
		end := scheduledTime - whitelistPhaseMs
		schedule.WhitelistPhaseEnd = &end
	}

	s.mu.Lock()
	s.schedules[mint] = schedule
	s.mu.Unlock()

	return *schedule
}

// Activate transitions a scheduled launch to active. Unknown mints are a
// silent no-op; the return value reports whether the transition applied.
func (s *Scheduler) Activate(mint string) bool {
	return s.transition(mint, domain.LaunchScheduled, domain.LaunchActive)
}

// Complete transitions an active launch to completed.
func (s *Scheduler) Complete(mint string) bool {
	return s.transition(mint, domain.LaunchActive, domain.LaunchCompleted)
}

// Cancel transitions a scheduled launch to cancelled.
func (s *Scheduler) Cancel(mint string) bool {
	return s.transition(mint, domain.LaunchScheduled, domain.LaunchCancelled)
}

func (s *Scheduler) transition(mint string, from, to domain.LaunchStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	schedule, ok := s.schedules[mint]
	if !ok || schedule.Status != from {
		return false
	}
	schedule.Status = to
	return true
}

// Get returns a copy of the schedule for the mint, if one exists.
func (s *Scheduler) Get(mint string) (domain.LaunchSchedule, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	schedule, ok := s.schedules[mint]
	if !ok {
		return domain.LaunchSchedule{}, false
	}
	return *schedule, true
}

// All returns copies of every schedule, for status reporting and persistence.
func (s *Scheduler) All() []domain.LaunchSchedule {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.LaunchSchedule, 0, len(s.schedules))
	for _, schedule := range s.schedules {
		out = append(out, *schedule)
	}
	return out
}

// Restore loads a previously persisted schedule into the map, keeping the
// stored status. Used on startup recovery; last write wins like Schedule.
func (s *Scheduler) Restore(schedule domain.LaunchSchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := schedule
	s.schedules[schedule.Mint] = &copied
}
