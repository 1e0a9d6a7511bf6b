package risk

import (
	"fmt"

	"solana-launch-guard/internal/domain"
)

// safetyScore deduction weights.
const (
	deductCritical = 40
	deductHigh     = 20
	deductPerRisk  = 5
)

// ScanForRisks evaluates a fixed ordered rule list against a token
// configuration and derives the aggregate risk level and safety score.
// Pure function: no engine state is consulted.
func ScanForRisks(cfg domain.TokenConfig) domain.RiskAssessment {
	var (
		risks          []domain.Risk
		warnings       []string
		criticalIssues []string
	)

	addRisk := func(r domain.Risk) {
		risks = append(risks, r)
		switch r.Severity {
		case domain.SeverityCritical:
			criticalIssues = append(criticalIssues, r.Description)
		case domain.SeverityLow, domain.SeverityMedium:
			warnings = append(warnings, r.Title)
		}
	}

	if cfg.MintAuthority == domain.MintAuthorityRevocable {
		addRisk(domain.Risk{
			Category:       domain.CategoryAuthorities,
			Severity:       domain.SeverityMedium,
			Title:          "Revocable mint authority",
			Description:    "The mint authority is retained and can create additional supply at any time.",
			Recommendation: "Burn or permanently revoke the mint authority before launch.",
		})
	}

	if cfg.FreezeAuthority {
		addRisk(domain.Risk{
			Category:       domain.CategoryAuthorities,
			Severity:       domain.SeverityHigh,
			Title:          "Freeze authority enabled",
			Description:    "The freeze authority can freeze any holder's token account, blocking transfers.",
			Recommendation: "Remove the freeze authority; it is a common honeypot mechanism.",
		})
	}

	if cfg.Supply > 1e12 {
		addRisk(domain.Risk{
			Category:       domain.CategoryTokenomics,
			Severity:       domain.SeverityMedium,
			Title:          "Extremely large supply",
			Description:    "Total supply exceeds one trillion tokens, which obscures per-unit pricing.",
			Recommendation: "Use a supply between one million and one billion tokens.",
		})
	}

	if cfg.TransferFeePct != nil && *cfg.TransferFeePct > 10 {
		addRisk(domain.Risk{
			Category:       domain.CategoryTokenomics,
			Severity:       domain.SeverityCritical,
			Title:          "Excessive transfer fee",
			Description:    fmt.Sprintf("The transfer fee of %.1f%% taxes every trade and traps holders; fees above 10%% are a honeypot signature.", *cfg.TransferFeePct),
			Recommendation: "Reduce the transfer fee to 5% or less, or remove it entirely.",
		})
	}

	if len(cfg.Description) < 10 {
		addRisk(domain.Risk{
			Category:       domain.CategoryMetadata,
			Severity:       domain.SeverityLow,
			Title:          "Missing or short description",
			Description:    "The token has no meaningful description, which is typical for throwaway launches.",
			Recommendation: "Write a description explaining what the token is for.",
		})
	}

	if cfg.SocialLinkCount() == 0 {
		addRisk(domain.Risk{
			Category:       domain.CategoryMetadata,
			Severity:       domain.SeverityHigh,
			Title:          "No social presence",
			Description:    "No website, Twitter or Telegram is linked; the team cannot be reached or verified.",
			Recommendation: "Add at least one verifiable social link.",
		})
	}

	if !cfg.HasLiquidity {
		addRisk(domain.Risk{
			Category:       domain.CategoryLiquidity,
			Severity:       domain.SeverityMedium,
			Title:          "No liquidity",
			Description:    "No liquidity pool exists yet, so the token cannot be traded.",
			Recommendation: "Add initial liquidity before opening trading.",
		})
	} else if !cfg.LiquidityLocked {
		addRisk(domain.Risk{
			Category:       domain.CategoryLiquidity,
			Severity:       domain.SeverityHigh,
			Title:          "Unlocked liquidity",
			Description:    "Liquidity is not locked and can be withdrawn by insiders at any moment.",
			Recommendation: "Lock the liquidity pool for a meaningful period.",
		})
	}

	return domain.RiskAssessment{
		RiskLevel:      deriveRiskLevel(risks, criticalIssues),
		Risks:          risks,
		Warnings:       warnings,
		CriticalIssues: criticalIssues,
		SafetyScore:    safetyScore(risks),
	}
}

// deriveRiskLevel applies the strict ordered cascade:
// critical > high (>= 2 high) > medium (1 high or >= 3 total) > low.
func deriveRiskLevel(risks []domain.Risk, criticalIssues []string) domain.RiskLevel {
	criticalCount, highCount := severityCounts(risks)

	switch {
	case criticalCount > 0 || len(criticalIssues) > 0:
		return domain.RiskCritical
	case highCount >= 2:
		return domain.RiskHigh
	case highCount == 1 || len(risks) >= 3:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func safetyScore(risks []domain.Risk) int {
	criticalCount, highCount := severityCounts(risks)

	score := 100 - (criticalCount*deductCritical + highCount*deductHigh + len(risks)*deductPerRisk)
	if score < 0 {
		score = 0
	}
	return score
}

func severityCounts(risks []domain.Risk) (critical, high int) {
	for _, r := range risks {
		switch r.Severity {
		case domain.SeverityCritical:
			critical++
		case domain.SeverityHigh:
			high++
		}
	}
	return critical, high
}
