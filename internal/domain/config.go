package domain

// AntiSnipeConfig is the fully-specified launch protection configuration
// derived from a ProtectionLevel. It is treated as an immutable value:
// whitelist/blacklist additions go through policy.AddToWhitelist and
// policy.AddToBlacklist, which return a new config instead of mutating.
type AntiSnipeConfig struct {
	Level              ProtectionLevel
	LaunchDelayMinutes int      // delay before public trading opens (>= 0)
	MaxWalletPct       *float64 // max share of supply per wallet, 0-100 (nil = unlimited)
	BuyLimitPerTx      *float64 // max token amount per purchase (nil = unlimited)
	WhitelistEnabled   bool
	Whitelist          []string // pre-approved wallet addresses
	BlacklistEnabled   bool
	Blacklist          []string // banned wallet addresses
	HoneypotMonitorMin *int     // post-launch honeypot monitor window in minutes (nil = off)
}

// ConfigOverrides carries caller overrides applied on top of the per-level
// defaults. A nil field keeps the default; a set field wins.
type ConfigOverrides struct {
	LaunchDelayMinutes *int
	MaxWalletPct       *float64
	BuyLimitPerTx      *float64
	WhitelistEnabled   *bool
	Whitelist          []string
	BlacklistEnabled   *bool
	Blacklist          []string
	HoneypotMonitorMin *int
}

// InWhitelist reports whether wallet is on the whitelist.
func (c *AntiSnipeConfig) InWhitelist(wallet string) bool {
	return containsWallet(c.Whitelist, wallet)
}

// InBlacklist reports whether wallet is on the blacklist.
func (c *AntiSnipeConfig) InBlacklist(wallet string) bool {
	return containsWallet(c.Blacklist, wallet)
}

func containsWallet(list []string, wallet string) bool {
	for _, w := range list {
		if w == wallet {
			return true
		}
	}
	return false
}
