package risk

import (
	"strings"
	"testing"
)

// fakeClock returns a clock starting at base advancing stepMs per record call.
func fakeClock(base, stepMs int64) func() int64 {
	t := base - stepMs
	return func() int64 {
		t += stepMs
		return t
	}
}

func TestDetectBot_FreshWalletIsClean(t *testing.T) {
	engine := NewEngine()

	result := engine.DetectBot("unknownWallet")

	if result.Confidence != 0 {
		t.Errorf("confidence: got %d, want 0", result.Confidence)
	}
	if result.IsBot || result.ShouldBlock {
		t.Error("fresh wallet must not be classified as bot")
	}
	if len(result.Indicators) != 0 {
		t.Errorf("indicators should be empty, got %v", result.Indicators)
	}
}

func TestDetectBot_KnownBot(t *testing.T) {
	engine := NewEngine()
	engine.MarkBot("botWallet")

	result := engine.DetectBot("botWallet")

	if result.Confidence != 50 {
		t.Errorf("confidence: got %d, want 50", result.Confidence)
	}
	if result.IsBot {
		t.Error("known-bot indicator alone (50) is below the 60 threshold")
	}
	if !strings.Contains(result.Indicators[0], "known bot") {
		t.Errorf("indicator text: %q", result.Indicators[0])
	}
}

func TestDetectBot_RapidSuccession(t *testing.T) {
	engine := NewEngineWithClock(fakeClock(1_000_000, 1000)) // 1s apart

	engine.RecordTransaction("wallet", 123, nil)
	engine.RecordTransaction("wallet", 456, nil)
	engine.RecordTransaction("wallet", 789, nil)

	result := engine.DetectBot("wallet")

	if result.Confidence < 30 {
		t.Errorf("confidence: got %d, want >= 30", result.Confidence)
	}
	if !anyContains(result.Indicators, "rapid") {
		t.Errorf("indicators missing rapid-succession: %v", result.Indicators)
	}
}

func TestDetectBot_RoundAmounts(t *testing.T) {
	engine := NewEngineWithClock(fakeClock(1_000_000, 600_000)) // 10 min apart

	engine.RecordTransaction("wallet", 3_000_000, nil)
	engine.RecordTransaction("wallet", 17, nil)

	result := engine.DetectBot("wallet")

	if result.Confidence != 10 {
		t.Errorf("confidence: got %d, want 10", result.Confidence)
	}
	if !anyContains(result.Indicators, "multiples") {
		t.Errorf("indicators missing round-amount: %v", result.Indicators)
	}
}

func TestDetectBot_ZeroAmountIsRound(t *testing.T) {
	engine := NewEngine()
	history := historyAt("wallet", []int64{0, 600_000}, 0)

	result := engine.DetectBotWithHistory("wallet", history)

	if result.Confidence != 10 {
		t.Errorf("confidence: got %d, want 10", result.Confidence)
	}
	if !anyContains(result.Indicators, "multiples") {
		t.Errorf("indicators missing round-amount: %v", result.Indicators)
	}
}

func TestDetectBot_PerfectlyPeriodic(t *testing.T) {
	engine := NewEngineWithClock(fakeClock(1_000_000, 10_000)) // exactly 10s apart

	for i := 0; i < 5; i++ {
		engine.RecordTransaction("wallet", float64(100+i), nil)
	}

	result := engine.DetectBot("wallet")

	if result.Confidence != 20 {
		t.Errorf("confidence: got %d, want 20", result.Confidence)
	}
	if !anyContains(result.Indicators, "periodic") {
		t.Errorf("indicators missing periodic: %v", result.Indicators)
	}
}

func TestDetectBot_JitteredTimingIsNotPeriodic(t *testing.T) {
	engine := NewEngine()
	history := historyAt("wallet", []int64{0, 10_000, 22_000, 30_000, 41_000}, 100)

	result := engine.DetectBotWithHistory("wallet", history)

	if anyContains(result.Indicators, "periodic") {
		t.Errorf("jittered history should not be periodic: %v", result.Indicators)
	}
}

func TestDetectBot_LargeFirstTransaction(t *testing.T) {
	engine := NewEngine()

	engine.RecordTransaction("wallet", 500_000, nil)

	result := engine.DetectBot("wallet")

	if result.Confidence < 15 {
		t.Errorf("confidence: got %d, want >= 15", result.Confidence)
	}
	if result.IsBot {
		t.Error("large-first-buy alone (15) must stay below the 60 threshold")
	}
	if !anyContains(result.Indicators, "large") {
		t.Errorf("indicators missing large-first-buy: %v", result.Indicators)
	}
}

func TestDetectBot_CombinedIndicatorsCrossThresholds(t *testing.T) {
	engine := NewEngineWithClock(fakeClock(1_000_000, 1000))
	engine.MarkBot("botWallet")

	// Known bot (50) + rapid succession (30) crosses both thresholds.
	engine.RecordTransaction("botWallet", 11, nil)
	engine.RecordTransaction("botWallet", 13, nil)
	engine.RecordTransaction("botWallet", 17, nil)

	result := engine.DetectBot("botWallet")

	if result.Confidence != 80 {
		t.Errorf("confidence: got %d, want 80", result.Confidence)
	}
	if !result.IsBot {
		t.Error("IsBot should be true at confidence 80")
	}
	if !result.ShouldBlock {
		t.Error("ShouldBlock should be true at confidence 80")
	}
}

func TestDetectBot_ConfidenceClampedAt100(t *testing.T) {
	engine := NewEngineWithClock(fakeClock(1_000_000, 1000))
	engine.MarkBot("botWallet")

	// Five entries 1s apart with round amounts: known bot (50) + rapid (30)
	// + round amounts (10) + periodic (20) would sum to 110.
	for i := 0; i < 5; i++ {
		engine.RecordTransaction("botWallet", 2_000_000, nil)
	}

	result := engine.DetectBot("botWallet")

	if result.Confidence != 100 {
		t.Errorf("confidence must clamp to 100, got %d", result.Confidence)
	}
	if len(result.Indicators) != 4 {
		t.Errorf("indicators: got %d, want 4", len(result.Indicators))
	}
}

func TestDetectBot_SuppliedHistoryOverridesLedger(t *testing.T) {
	engine := NewEngine()

	history := historyAt("wallet", []int64{0, 1000, 2000}, 55)

	result := engine.DetectBotWithHistory("wallet", history)

	if result.Confidence != 30 {
		t.Errorf("confidence from supplied history: got %d, want 30", result.Confidence)
	}
}
