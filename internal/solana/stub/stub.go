package stub

import (
	"context"
	"fmt"
	"sync"

	"solana-launch-guard/internal/solana"
)

// TxSubmitter implements solana.TxSubmitter for testing and offline runs.
type TxSubmitter struct {
	mu        sync.Mutex
	submitted []string
}

// NewTxSubmitter creates a new stub transaction submitter.
func NewTxSubmitter() *TxSubmitter {
	return &TxSubmitter{}
}

// SendTransaction records the transaction and returns a synthetic signature.
func (s *TxSubmitter) SendTransaction(_ context.Context, encodedTx string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submitted = append(s.submitted, encodedTx)
	return fmt.Sprintf("stub-sig-%d", len(s.submitted)), nil
}

// Submitted returns all transactions submitted so far.
func (s *TxSubmitter) Submitted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.submitted...)
}

// BlobUploader implements solana.BlobUploader for testing and offline runs.
type BlobUploader struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewBlobUploader creates a new stub blob uploader.
func NewBlobUploader() *BlobUploader {
	return &BlobUploader{blobs: make(map[string][]byte)}
}

// Upload stores the blob and returns a synthetic URI.
func (u *BlobUploader) Upload(_ context.Context, name string, data []byte) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.blobs[name] = append([]byte(nil), data...)
	return "stub://" + name, nil
}

// Blob returns the stored payload for a name, if any.
func (u *BlobUploader) Blob(name string) ([]byte, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	data, ok := u.blobs[name]
	return data, ok
}

// PerfSampler implements solana.PerfSampler for testing and offline runs.
type PerfSampler struct {
	Samples []solana.PerfSample
}

// NewPerfSampler creates a new stub performance sampler.
func NewPerfSampler() *PerfSampler {
	return &PerfSampler{}
}

// RecentPerformanceSamples returns the configured samples, truncated to limit.
func (p *PerfSampler) RecentPerformanceSamples(_ context.Context, limit int) ([]solana.PerfSample, error) {
	samples := p.Samples
	if limit > 0 && limit < len(samples) {
		samples = samples[:limit]
	}
	return append([]solana.PerfSample(nil), samples...), nil
}

var (
	_ solana.TxSubmitter  = (*TxSubmitter)(nil)
	_ solana.BlobUploader = (*BlobUploader)(nil)
	_ solana.PerfSampler  = (*PerfSampler)(nil)
)
