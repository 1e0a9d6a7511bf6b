package domain

// ProtectionLevel represents the coarse anti-snipe protection level
// selected by the token creator. Higher levels imply stricter defaults.
type ProtectionLevel string

const (
	LevelNone     ProtectionLevel = "none"
	LevelBasic    ProtectionLevel = "basic"
	LevelStandard ProtectionLevel = "standard"
	LevelAdvanced ProtectionLevel = "advanced"
)

// String returns the string representation of ProtectionLevel.
func (l ProtectionLevel) String() string {
	return string(l)
}

// IsValid checks if the level is a valid value.
func (l ProtectionLevel) IsValid() bool {
	switch l {
	case LevelNone, LevelBasic, LevelStandard, LevelAdvanced:
		return true
	}
	return false
}

// Rank returns the ordinal position of the level (none=0 .. advanced=3).
func (l ProtectionLevel) Rank() int {
	switch l {
	case LevelBasic:
		return 1
	case LevelStandard:
		return 2
	case LevelAdvanced:
		return 3
	default:
		return 0
	}
}
