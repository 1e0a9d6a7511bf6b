package domain

// LaunchStatus represents the lifecycle state of a scheduled launch.
type LaunchStatus string

const (
	LaunchScheduled LaunchStatus = "scheduled"
	LaunchActive    LaunchStatus = "active"
	LaunchCompleted LaunchStatus = "completed"
	LaunchCancelled LaunchStatus = "cancelled"
)

// String returns the string representation of LaunchStatus.
func (s LaunchStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a valid value.
func (s LaunchStatus) IsValid() bool {
	switch s {
	case LaunchScheduled, LaunchActive, LaunchCompleted, LaunchCancelled:
		return true
	}
	return false
}

// LaunchSchedule represents a per-token launch schedule, keyed by mint.
// Corresponds to launch_schedules table in PostgreSQL.
//
// Invariant: WhitelistPhaseEnd is set iff the config had WhitelistEnabled
// at scheduling time, and always equals ScheduledTime - 5 minutes.
type LaunchSchedule struct {
	LaunchID          string       // deterministic hash, see idhash.ComputeLaunchID
	Mint              string       // token mint address (identity key)
	ScheduledTime     int64        // public trading start, Unix ms
	Status            LaunchStatus // scheduled | active | completed | cancelled
	WhitelistPhaseEnd *int64       // end of whitelist-only window, Unix ms (nullable)
	PublicPhaseStart  int64        // equals ScheduledTime
	CreatedAt         int64        // record creation timestamp (ms)
}
