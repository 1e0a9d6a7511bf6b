package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"solana-launch-guard/internal/domain"
)

// ComputeLaunchID computes a deterministic launch_id using SHA256.
// Formula: SHA256(mint|level|scheduled_time)
// Returns hex-encoded hash (64 characters).
func ComputeLaunchID(mint string, level domain.ProtectionLevel, scheduledTime int64) string {
	data := fmt.Sprintf("%s|%s|%d", mint, string(level), scheduledTime)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
