package launch

import (
	"testing"

	"solana-launch-guard/internal/domain"
	"solana-launch-guard/internal/policy"
	"solana-launch-guard/internal/risk"
)

// testClock is a manually advanced millisecond clock shared between the
// scheduler and the risk engine in tests.
type testClock struct {
	ms int64
}

func (c *testClock) now() int64 {
	return c.ms
}

func (c *testClock) advance(ms int64) {
	c.ms += ms
}

func newTestScheduler(startMs int64) (*Scheduler, *risk.Engine, *testClock) {
	clock := &testClock{ms: startMs}
	engine := risk.NewEngineWithClock(clock.now)
	return NewSchedulerWithClock(engine, clock.now), engine, clock
}

func TestSchedule_WhitelistPhaseDerivation(t *testing.T) {
	scheduler, _, _ := newTestScheduler(0)

	withWhitelist := policy.ForLevel(domain.LevelAdvanced, nil)
	schedule := scheduler.Schedule("mintA", withWhitelist)

	if schedule.ScheduledTime != 30*60_000 {
		t.Errorf("scheduled time: got %d, want %d", schedule.ScheduledTime, 30*60_000)
	}
	if schedule.PublicPhaseStart != schedule.ScheduledTime {
		t.Error("public phase start must equal scheduled time")
	}
	if schedule.WhitelistPhaseEnd == nil {
		t.Fatal("whitelist phase end must be set when whitelist is enabled")
	}
	if *schedule.WhitelistPhaseEnd != schedule.ScheduledTime-300_000 {
		t.Errorf("whitelist phase end: got %d, want %d",
			*schedule.WhitelistPhaseEnd, schedule.ScheduledTime-300_000)
	}
	if schedule.Status != domain.LaunchScheduled {
		t.Errorf("status: got %s, want scheduled", schedule.Status)
	}

	noWhitelist := policy.ForLevel(domain.LevelBasic, nil)
	schedule = scheduler.Schedule("mintB", noWhitelist)
	if schedule.WhitelistPhaseEnd != nil {
		t.Error("whitelist phase end must be absent when whitelist is disabled")
	}
}

func TestSchedule_LastWriteWins(t *testing.T) {
	scheduler, _, clock := newTestScheduler(0)

	first := scheduler.Schedule("mint", policy.ForLevel(domain.LevelBasic, nil))

	clock.advance(10_000)
	second := scheduler.Schedule("mint", policy.ForLevel(domain.LevelAdvanced, nil))

	got, ok := scheduler.Get("mint")
	if !ok {
		t.Fatal("schedule should exist")
	}
	if got.ScheduledTime != second.ScheduledTime {
		t.Errorf("reschedule should overwrite: got %d, want %d", got.ScheduledTime, second.ScheduledTime)
	}
	if got.ScheduledTime == first.ScheduledTime {
		t.Error("old schedule survived a reschedule")
	}
}

func TestTransitions(t *testing.T) {
	scheduler, _, _ := newTestScheduler(0)
	scheduler.Schedule("mint", policy.ForLevel(domain.LevelBasic, nil))

	if scheduler.Activate("unknown") {
		t.Error("activating an unknown mint must be a no-op")
	}

	if !scheduler.Activate("mint") {
		t.Error("activate should transition scheduled -> active")
	}
	if got, _ := scheduler.Get("mint"); got.Status != domain.LaunchActive {
		t.Errorf("status after activate: got %s, want active", got.Status)
	}

	if scheduler.Activate("mint") {
		t.Error("activating an already active launch must be a no-op")
	}
	if scheduler.Cancel("mint") {
		t.Error("cancel only applies to scheduled launches")
	}

	if !scheduler.Complete("mint") {
		t.Error("complete should transition active -> completed")
	}
	if got, _ := scheduler.Get("mint"); got.Status != domain.LaunchCompleted {
		t.Errorf("status after complete: got %s, want completed", got.Status)
	}
}

func TestCancel_FromScheduled(t *testing.T) {
	scheduler, _, _ := newTestScheduler(0)
	scheduler.Schedule("mint", policy.ForLevel(domain.LevelStandard, nil))

	if !scheduler.Cancel("mint") {
		t.Error("cancel should transition scheduled -> cancelled")
	}
	if got, _ := scheduler.Get("mint"); got.Status != domain.LaunchCancelled {
		t.Errorf("status after cancel: got %s, want cancelled", got.Status)
	}
}

func TestRestoreAndAll(t *testing.T) {
	scheduler, _, _ := newTestScheduler(0)

	scheduler.Restore(domain.LaunchSchedule{
		Mint:             "mintA",
		ScheduledTime:    1_000,
		PublicPhaseStart: 1_000,
		Status:           domain.LaunchActive,
	})
	scheduler.Schedule("mintB", policy.ForLevel(domain.LevelNone, nil))

	if got, ok := scheduler.Get("mintA"); !ok || got.Status != domain.LaunchActive {
		t.Error("restored schedule should keep its stored status")
	}
	if len(scheduler.All()) != 2 {
		t.Errorf("All: got %d schedules, want 2", len(scheduler.All()))
	}
}
