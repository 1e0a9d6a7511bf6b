package solana

import "context"

// TxSubmitter submits signed transactions to the cluster.
type TxSubmitter interface {
	// SendTransaction submits a base64-encoded signed transaction and
	// returns its signature.
	SendTransaction(ctx context.Context, encodedTx string) (string, error)
}

// BlobUploader uploads off-chain payloads (token metadata JSON, images)
// and returns a public URI.
type BlobUploader interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

// PerfSampler reports recent cluster performance.
type PerfSampler interface {
	// RecentPerformanceSamples returns up to limit recent samples,
	// newest first.
	RecentPerformanceSamples(ctx context.Context, limit int) ([]PerfSample, error)
}

// PerfSample is one getRecentPerformanceSamples entry.
type PerfSample struct {
	Slot             int64
	NumTransactions  int64
	NumSlots         int64
	SamplePeriodSecs int64
}

// TPS returns average transactions per second over the sample period.
func (s PerfSample) TPS() float64 {
	if s.SamplePeriodSecs == 0 {
		return 0
	}
	return float64(s.NumTransactions) / float64(s.SamplePeriodSecs)
}
