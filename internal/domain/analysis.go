package domain

// TransactionAnalysis records one observed purchase attempt for a wallet.
// Corresponds to transaction_analyses table in ClickHouse.
type TransactionAnalysis struct {
	Wallet       string   // purchaser wallet address
	Mint         string   // token mint, empty when not known at record time
	Timestamp    int64    // Unix timestamp in milliseconds
	Amount       float64  // token quantity
	IsSuspicious bool     // true iff any flags attached
	Flags        []string // free-text indicator strings
}

// BotDetectionResult is the derived verdict of the bot detector.
// It is computed on demand and never stored.
type BotDetectionResult struct {
	IsBot       bool     // confidence >= 60
	Confidence  int      // 0-100, sum of matched indicator weights (clamped)
	Indicators  []string // human-readable matched-rule descriptions
	ShouldBlock bool     // confidence >= 70
}
