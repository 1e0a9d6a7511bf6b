package risk

import (
	"sync"
	"testing"

	"solana-launch-guard/internal/domain"
)

// historyAt builds a synthetic ledger with the given timestamps and a fixed
// amount per entry.
func historyAt(wallet string, timestamps []int64, amount float64) []domain.TransactionAnalysis {
	history := make([]domain.TransactionAnalysis, 0, len(timestamps))
	for _, ts := range timestamps {
		history = append(history, domain.TransactionAnalysis{
			Wallet:    wallet,
			Timestamp: ts,
			Amount:    amount,
		})
	}
	return history
}

func TestRecordTransaction_FIFOCapAt100(t *testing.T) {
	engine := NewEngineWithClock(fakeClock(1000, 1000))

	for i := 0; i < 150; i++ {
		engine.RecordTransaction("wallet", float64(i), nil)
	}

	history := engine.History("wallet")
	if len(history) != 100 {
		t.Fatalf("history length: got %d, want 100", len(history))
	}

	// Oldest 50 entries evicted: the first surviving entry is the 51st
	// recorded (timestamp 51*1000) and ordering is preserved.
	if history[0].Timestamp != 51_000 {
		t.Errorf("first surviving timestamp: got %d, want 51000", history[0].Timestamp)
	}
	if history[99].Timestamp != 150_000 {
		t.Errorf("last timestamp: got %d, want 150000", history[99].Timestamp)
	}
	for i := 1; i < len(history); i++ {
		if history[i].Timestamp <= history[i-1].Timestamp {
			t.Fatalf("history not in chronological order at index %d", i)
		}
	}
}

func TestRecordTransaction_FlagsMarkSuspicious(t *testing.T) {
	engine := NewEngine()

	clean := engine.RecordTransaction("wallet", 100, nil)
	if clean.IsSuspicious {
		t.Error("transaction without flags must not be suspicious")
	}

	flagged := engine.RecordTransaction("wallet", 100, []string{"sandwich pattern"})
	if !flagged.IsSuspicious {
		t.Error("transaction with flags must be suspicious")
	}
	if len(flagged.Flags) != 1 || flagged.Flags[0] != "sandwich pattern" {
		t.Errorf("flags: got %v", flagged.Flags)
	}
}

func TestHistory_ReturnsCopy(t *testing.T) {
	engine := NewEngine()
	engine.RecordTransaction("wallet", 100, nil)

	history := engine.History("wallet")
	history[0].Amount = 999

	if engine.History("wallet")[0].Amount != 100 {
		t.Error("History must return a copy, not a view into the ledger")
	}
}

func TestLastTransaction(t *testing.T) {
	engine := NewEngineWithClock(fakeClock(1000, 1000))

	if _, ok := engine.LastTransaction("wallet"); ok {
		t.Error("LastTransaction on empty ledger should report !ok")
	}

	engine.RecordTransaction("wallet", 1, nil)
	engine.RecordTransaction("wallet", 2, nil)

	last, ok := engine.LastTransaction("wallet")
	if !ok {
		t.Fatal("LastTransaction should find the entry")
	}
	if last.Amount != 2 {
		t.Errorf("last amount: got %v, want 2", last.Amount)
	}
}

func TestMarkBot_And_KnownBots(t *testing.T) {
	engine := NewEngine()

	engine.MarkBot("a")
	engine.MarkBot("a")
	engine.MarkBot("b")

	if !engine.IsKnownBot("a") || !engine.IsKnownBot("b") {
		t.Error("marked wallets should be known bots")
	}
	if engine.IsKnownBot("c") {
		t.Error("unmarked wallet should not be a known bot")
	}
	if got := len(engine.KnownBots()); got != 2 {
		t.Errorf("known bots: got %d, want 2", got)
	}
}

func TestEngine_ConcurrentRecordAndDetect(t *testing.T) {
	engine := NewEngine()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				engine.RecordTransaction("wallet", float64(n*1000+j), nil)
				engine.DetectBot("wallet")
			}
		}(i)
	}
	wg.Wait()

	if got := len(engine.History("wallet")); got != 100 {
		t.Errorf("history length after concurrent writes: got %d, want 100", got)
	}
}
