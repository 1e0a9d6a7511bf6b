package risk

import (
	"math"

	"solana-launch-guard/internal/domain"
)

// Bot indicator confidence weights. Indicators are evaluated independently
// and their weights summed; multiple indicators can fire at once.
const (
	weightKnownBot      = 50
	weightRapidBursts   = 30
	weightRoundAmounts  = 10
	weightPeriodicTrade = 20
	weightLargeFirstBuy = 15

	// confidence thresholds
	botThreshold   = 60
	blockThreshold = 70

	rapidAvgDeltaMs     = 5000
	roundAmountUnit     = 1_000_000
	largeFirstBuyAmount = 100_000
)

// Indicator descriptions, user-facing.
const (
	descKnownBot      = "wallet is on the known bot list"
	descRapidBursts   = "rapid transaction succession (avg interval under 5s)"
	descRoundAmounts  = "transaction amounts are exact multiples of 1,000,000"
	descPeriodicTrade = "perfectly periodic transaction timing"
	descLargeFirstBuy = "unusually large first transaction"
)

// DetectBot evaluates bot indicators against the wallet's recorded ledger.
// An unknown wallet with no history yields low confidence (fail open).
func (e *Engine) DetectBot(wallet string) domain.BotDetectionResult {
	return e.DetectBotWithHistory(wallet, e.History(wallet))
}

// DetectBotWithHistory evaluates bot indicators against a caller-supplied
// history, chronological order expected. The known-bots set is still consulted.
func (e *Engine) DetectBotWithHistory(wallet string, history []domain.TransactionAnalysis) domain.BotDetectionResult {
	confidence := 0
	var indicators []string

	if e.IsKnownBot(wallet) {
		confidence += weightKnownBot
		indicators = append(indicators, descKnownBot)
	}

	if len(history) >= 3 {
		last3 := history[len(history)-3:]
		sum := float64(last3[1].Timestamp-last3[0].Timestamp) +
			float64(last3[2].Timestamp-last3[1].Timestamp)
		if sum/2 < rapidAvgDeltaMs {
			confidence += weightRapidBursts
			indicators = append(indicators, descRapidBursts)
		}
	}

	for _, tx := range history {
		if math.Mod(tx.Amount, roundAmountUnit) == 0 {
			confidence += weightRoundAmounts
			indicators = append(indicators, descRoundAmounts)
			break
		}
	}

	if len(history) >= 5 && isPeriodic(history) {
		confidence += weightPeriodicTrade
		indicators = append(indicators, descPeriodicTrade)
	}

	if len(history) == 1 && history[0].Amount > largeFirstBuyAmount {
		confidence += weightLargeFirstBuy
		indicators = append(indicators, descLargeFirstBuy)
	}

	// All five indicators can sum to 125; clamp so downstream consumers can
	// treat confidence as a percentage.
	if confidence > 100 {
		confidence = 100
	}

	return domain.BotDetectionResult{
		IsBot:       confidence >= botThreshold,
		Confidence:  confidence,
		Indicators:  indicators,
		ShouldBlock: confidence >= blockThreshold,
	}
}

// isPeriodic reports whether all consecutive time deltas across the history,
// rounded to the nearest second, collapse to a single distinct value.
func isPeriodic(history []domain.TransactionAnalysis) bool {
	seen := make(map[int64]struct{})
	for i := 1; i < len(history); i++ {
		deltaSec := int64(math.Round(float64(history[i].Timestamp-history[i-1].Timestamp) / 1000))
		seen[deltaSec] = struct{}{}
	}
	return len(seen) == 1
}
