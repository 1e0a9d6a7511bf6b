package launch

import (
	"fmt"
	"math"
	"time"

	"solana-launch-guard/internal/domain"
)

const (
	// cooldownMs is the minimum spacing between purchases by one wallet.
	cooldownMs = 60_000

	// absoluteAmountCap is the fixed sanity threshold applied when a
	// per-wallet percentage cap is configured. Actual holdings are not
	// tracked, so this is a crude absolute proxy rather than a true
	// percentage-of-supply check.
	absoluteAmountCap = 1_000_000_000
)

// Decision is the outcome of a purchase validation. Reason is user-facing
// and only set on denial.
type Decision struct {
	Allowed bool
	Reason  string
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// ValidatePurchase runs the ordered gate sequence for one purchase attempt,
// short-circuiting at the first failing check:
//
//  1. malformed input (fail closed)
//  2. pre-public launch window (whitelist-only phase, or fixed launch time)
//  3. blacklist
//  4. known-bot set
//  5. per-transaction buy limit
//  6. wallet cap sanity threshold
//  7. per-wallet cooldown
//
// The ordering is a contract: a blacklisted wallet probing during the
// whitelist phase gets the whitelist-phase denial, not the blacklist one.
func (s *Scheduler) ValidatePurchase(wallet string, amount float64, mint string, cfg domain.AntiSnipeConfig) Decision {
	if wallet == "" || amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return deny("invalid purchase request")
	}

	now := s.now()

	if schedule, ok := s.Get(mint); ok && schedule.Status == domain.LaunchScheduled && now < schedule.PublicPhaseStart {
		if schedule.WhitelistPhaseEnd != nil {
			// Whitelisted wallets trade through the entire pre-public
			// window; everyone else waits for the public phase.
			if !cfg.InWhitelist(wallet) {
				return deny("token is in its whitelist-only phase")
			}
		} else {
			launchTime := time.UnixMilli(schedule.PublicPhaseStart).UTC().Format(time.RFC3339)
			return deny(fmt.Sprintf("trading launches at %s", launchTime))
		}
	}

	if cfg.BlacklistEnabled && cfg.InBlacklist(wallet) {
		return deny("wallet is blacklisted")
	}

	if s.engine.IsKnownBot(wallet) {
		return deny("wallet is a suspected bot")
	}

	if cfg.BuyLimitPerTx != nil && *cfg.BuyLimitPerTx != 0 && amount > *cfg.BuyLimitPerTx {
		return deny(fmt.Sprintf("purchase exceeds maximum of %.0f tokens per transaction", *cfg.BuyLimitPerTx))
	}

	if cfg.MaxWalletPct != nil && amount > absoluteAmountCap {
		return deny("purchase exceeds per-wallet limit")
	}

	if last, ok := s.engine.LastTransaction(wallet); ok {
		elapsed := now - last.Timestamp
		if elapsed < cooldownMs {
			waitSec := int64(math.Ceil(float64(cooldownMs-elapsed) / 1000))
			return deny(fmt.Sprintf("cooldown active, wait %ds", waitSec))
		}
	}

	return Decision{Allowed: true}
}
