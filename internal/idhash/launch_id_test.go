package idhash

import (
	"testing"

	"solana-launch-guard/internal/domain"
)

func TestComputeLaunchID(t *testing.T) {
	got := ComputeLaunchID("TokenMint123ABC", domain.LevelAdvanced, 1704067200000)

	if len(got) != 64 {
		t.Errorf("ComputeLaunchID() length = %d, want 64", len(got))
	}

	// Determinism: same inputs produce the same hash.
	again := ComputeLaunchID("TokenMint123ABC", domain.LevelAdvanced, 1704067200000)
	if got != again {
		t.Error("ComputeLaunchID() not deterministic")
	}

	// Different inputs produce different hashes.
	other := ComputeLaunchID("TokenMint123ABC", domain.LevelBasic, 1704067200000)
	if got == other {
		t.Error("ComputeLaunchID() collision for different levels")
	}
}
