package memory

import (
	"context"
	"sort"
	"sync"

	"solana-launch-guard/internal/domain"
	"solana-launch-guard/internal/storage"
)

// ScheduleStore is an in-memory implementation of storage.ScheduleStore.
type ScheduleStore struct {
	mu     sync.RWMutex
	byMint map[string]*domain.LaunchSchedule
}

// NewScheduleStore creates a new in-memory schedule store.
func NewScheduleStore() *ScheduleStore {
	return &ScheduleStore{
		byMint: make(map[string]*domain.LaunchSchedule),
	}
}

// Upsert inserts or replaces the schedule for a mint.
func (s *ScheduleStore) Upsert(_ context.Context, sched *domain.LaunchSchedule) error {
	if sched == nil || sched.Mint == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	schedCopy := *sched
	if sched.WhitelistPhaseEnd != nil {
		wpe := *sched.WhitelistPhaseEnd
		schedCopy.WhitelistPhaseEnd = &wpe
	}
	s.byMint[sched.Mint] = &schedCopy
	return nil
}

// GetByMint retrieves the schedule for a mint. Returns ErrNotFound if not exists.
func (s *ScheduleStore) GetByMint(_ context.Context, mint string) (*domain.LaunchSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sched, exists := s.byMint[mint]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return copySchedule(sched), nil
}

// GetAll retrieves all schedules, ordered by scheduled time ASC.
func (s *ScheduleStore) GetAll(_ context.Context) ([]*domain.LaunchSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schedules := make([]*domain.LaunchSchedule, 0, len(s.byMint))
	for _, sched := range s.byMint {
		schedules = append(schedules, copySchedule(sched))
	}

	sort.Slice(schedules, func(i, j int) bool {
		if schedules[i].ScheduledTime != schedules[j].ScheduledTime {
			return schedules[i].ScheduledTime < schedules[j].ScheduledTime
		}
		return schedules[i].Mint < schedules[j].Mint
	})
	return schedules, nil
}

// UpdateStatus sets the status for a mint. Returns ErrNotFound if not exists.
func (s *ScheduleStore) UpdateStatus(_ context.Context, mint string, status domain.LaunchStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched, exists := s.byMint[mint]
	if !exists {
		return storage.ErrNotFound
	}
	sched.Status = status
	return nil
}

func copySchedule(sched *domain.LaunchSchedule) *domain.LaunchSchedule {
	schedCopy := *sched
	if sched.WhitelistPhaseEnd != nil {
		wpe := *sched.WhitelistPhaseEnd
		schedCopy.WhitelistPhaseEnd = &wpe
	}
	return &schedCopy
}

var _ storage.ScheduleStore = (*ScheduleStore)(nil)
