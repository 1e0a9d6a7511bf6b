// Package policy derives concrete AntiSnipeConfig values from a coarse
// ProtectionLevel and applies caller overrides.
package policy

import "solana-launch-guard/internal/domain"

// Cost constants in SOL for setup cost estimation.
const (
	baseTxFeeSOL       = 0.000005
	whitelistEntrySOL  = 0.000005
	honeypotMonitorSOL = 0.00001
)

// ForLevel returns the fully-specified config for a protection level with
// overrides applied last (override wins per field). An invalid level falls
// back to LevelNone defaults.
func ForLevel(level domain.ProtectionLevel, overrides *domain.ConfigOverrides) domain.AntiSnipeConfig {
	cfg := baseConfig(level)
	if overrides != nil {
		applyOverrides(&cfg, overrides)
	}
	return cfg
}

// baseConfig returns the per-level defaults.
//
// BuyLimitPerTx defaults to 0 for standard/advanced. The purchase validator
// treats 0 as "no limit"; see launch.ValidatePurchase.
func baseConfig(level domain.ProtectionLevel) domain.AntiSnipeConfig {
	switch level {
	case domain.LevelBasic:
		return domain.AntiSnipeConfig{
			Level:              domain.LevelBasic,
			LaunchDelayMinutes: 5,
			MaxWalletPct:       ptr(5.0),
			WhitelistEnabled:   false,
			BlacklistEnabled:   true,
			HoneypotMonitorMin: ptr(2),
		}
	case domain.LevelStandard:
		return domain.AntiSnipeConfig{
			Level:              domain.LevelStandard,
			LaunchDelayMinutes: 15,
			MaxWalletPct:       ptr(3.0),
			BuyLimitPerTx:      ptr(0.0),
			WhitelistEnabled:   false,
			BlacklistEnabled:   true,
			HoneypotMonitorMin: ptr(5),
		}
	case domain.LevelAdvanced:
		return domain.AntiSnipeConfig{
			Level:              domain.LevelAdvanced,
			LaunchDelayMinutes: 30,
			MaxWalletPct:       ptr(2.0),
			BuyLimitPerTx:      ptr(0.0),
			WhitelistEnabled:   true,
			BlacklistEnabled:   true,
			HoneypotMonitorMin: ptr(10),
		}
	default:
		return domain.AntiSnipeConfig{
			Level:              domain.LevelNone,
			LaunchDelayMinutes: 0,
			WhitelistEnabled:   false,
			BlacklistEnabled:   false,
		}
	}
}

// applyOverrides merges overrides into cfg field by field. The merge is
// explicit and typed so that missing or extra fields are caught at compile
// time.
func applyOverrides(cfg *domain.AntiSnipeConfig, o *domain.ConfigOverrides) {
	if o.LaunchDelayMinutes != nil {
		cfg.LaunchDelayMinutes = *o.LaunchDelayMinutes
	}
	if o.MaxWalletPct != nil {
		cfg.MaxWalletPct = ptr(*o.MaxWalletPct)
	}
	if o.BuyLimitPerTx != nil {
		cfg.BuyLimitPerTx = ptr(*o.BuyLimitPerTx)
	}
	if o.WhitelistEnabled != nil {
		cfg.WhitelistEnabled = *o.WhitelistEnabled
	}
	if o.Whitelist != nil {
		cfg.Whitelist = append([]string(nil), o.Whitelist...)
	}
	if o.BlacklistEnabled != nil {
		cfg.BlacklistEnabled = *o.BlacklistEnabled
	}
	if o.Blacklist != nil {
		cfg.Blacklist = append([]string(nil), o.Blacklist...)
	}
	if o.HoneypotMonitorMin != nil {
		cfg.HoneypotMonitorMin = ptr(*o.HoneypotMonitorMin)
	}
}

// AddToWhitelist returns a new config with wallet on the whitelist and
// WhitelistEnabled forced true. The input config is never mutated; callers
// may hold references to the original.
func AddToWhitelist(cfg domain.AntiSnipeConfig, wallet string) domain.AntiSnipeConfig {
	out := cloneConfig(cfg)
	out.WhitelistEnabled = true
	if !out.InWhitelist(wallet) {
		out.Whitelist = append(out.Whitelist, wallet)
	}
	return out
}

// AddToBlacklist returns a new config with wallet on the blacklist and
// BlacklistEnabled forced true. The input config is never mutated.
func AddToBlacklist(cfg domain.AntiSnipeConfig, wallet string) domain.AntiSnipeConfig {
	out := cloneConfig(cfg)
	out.BlacklistEnabled = true
	if !out.InBlacklist(wallet) {
		out.Blacklist = append(out.Blacklist, wallet)
	}
	return out
}

// EstimateSetupCost returns the SOL cost of deploying the protection setup:
// one base fee when a launch delay is configured, one whitelist entry fee per
// whitelisted wallet when the whitelist is enabled and non-empty, and a flat
// monitor fee when honeypot monitoring is on.
func EstimateSetupCost(cfg domain.AntiSnipeConfig) float64 {
	cost := 0.0
	if cfg.LaunchDelayMinutes > 0 {
		cost += baseTxFeeSOL
	}
	if cfg.WhitelistEnabled && len(cfg.Whitelist) > 0 {
		cost += whitelistEntrySOL * float64(len(cfg.Whitelist))
	}
	if cfg.HoneypotMonitorMin != nil && *cfg.HoneypotMonitorMin > 0 {
		cost += honeypotMonitorSOL
	}
	return cost
}

// cloneConfig deep-copies a config, including its lists and pointer fields.
func cloneConfig(cfg domain.AntiSnipeConfig) domain.AntiSnipeConfig {
	out := cfg
	out.Whitelist = append([]string(nil), cfg.Whitelist...)
	out.Blacklist = append([]string(nil), cfg.Blacklist...)
	if cfg.MaxWalletPct != nil {
		out.MaxWalletPct = ptr(*cfg.MaxWalletPct)
	}
	if cfg.BuyLimitPerTx != nil {
		out.BuyLimitPerTx = ptr(*cfg.BuyLimitPerTx)
	}
	if cfg.HoneypotMonitorMin != nil {
		out.HoneypotMonitorMin = ptr(*cfg.HoneypotMonitorMin)
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
