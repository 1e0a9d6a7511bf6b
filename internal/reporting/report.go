// Package reporting renders token analysis results for human consumption.
package reporting

import "solana-launch-guard/internal/domain"

// TokenReport bundles the analysis outputs for one token.
type TokenReport struct {
	Mint        string
	GeneratedAt int64 // Unix milliseconds
	Quality     *domain.QualityScore
	Assessment  *domain.RiskAssessment
}
