package risk

import (
	"math"

	"solana-launch-guard/internal/domain"
)

// Component weights for the overall quality score.
const (
	weightAuthorities  = 0.25
	weightMetadata     = 0.20
	weightTokenomics   = 0.25
	weightLiquidity    = 0.20
	weightVerification = 0.10
)

// CalculateQualityScore scores a token configuration across five independent
// components and derives the weighted overall score, grade and
// recommendations. Pure function: identical input yields identical output.
func CalculateQualityScore(cfg domain.TokenConfig) domain.QualityScore {
	components := domain.QualityComponents{
		Authorities:  scoreAuthorities(cfg),
		Metadata:     scoreMetadata(cfg),
		Tokenomics:   scoreTokenomics(cfg),
		Liquidity:    scoreLiquidity(cfg),
		Verification: scoreVerification(cfg),
	}

	overall := int(math.Round(
		float64(components.Authorities)*weightAuthorities +
			float64(components.Metadata)*weightMetadata +
			float64(components.Tokenomics)*weightTokenomics +
			float64(components.Liquidity)*weightLiquidity +
			float64(components.Verification)*weightVerification))

	return domain.QualityScore{
		Overall:         overall,
		Components:      components,
		Grade:           domain.GradeForScore(overall),
		Recommendations: recommendations(cfg, components),
	}
}

func scoreAuthorities(cfg domain.TokenConfig) int {
	score := 50

	switch cfg.MintAuthority {
	case domain.MintAuthorityPermanent:
		score += 30
	case domain.MintAuthorityNone:
		score += 25
	case domain.MintAuthorityRevocable:
		score += 10
	}

	if !cfg.FreezeAuthority {
		score += 15
	} else {
		score -= 5
	}

	if !cfg.UpdateAuthority {
		score += 5
	}

	return clampScore(score)
}

func scoreMetadata(cfg domain.TokenConfig) int {
	score := 0

	if cfg.Name != "" {
		score += 20
	}
	if cfg.Symbol != "" {
		score += 20
	}
	if len(cfg.Description) >= 20 {
		score += 15
	}
	if cfg.Image != "" {
		score += 15
	}
	if cfg.Website != "" {
		score += 10
	}
	if cfg.Twitter != "" {
		score += 10
	}
	if cfg.Telegram != "" {
		score += 10
	}

	return clampScore(score)
}

func scoreTokenomics(cfg domain.TokenConfig) int {
	score := 50

	if cfg.Supply > 0 {
		score += 20
		if cfg.Supply >= 1e6 && cfg.Supply <= 1e9 {
			score += 10
		} else if cfg.Supply > 1e12 {
			score -= 10
		}
	}

	if cfg.Decimals >= 6 && cfg.Decimals <= 9 {
		score += 10
	}

	if cfg.Protocol == domain.ProtocolToken2022 && cfg.TransferFeePct != nil {
		fee := *cfg.TransferFeePct
		if fee > 0 && fee <= 5 {
			score += 5
		} else if fee > 10 {
			score -= 15
		}
	}

	return clampScore(score)
}

func scoreLiquidity(cfg domain.TokenConfig) int {
	score := 30

	if cfg.HasLiquidity {
		score += 40
		if cfg.LiquidityLocked {
			score += 30
		} else {
			score += 10
		}
	}

	return clampScore(score)
}

func scoreVerification(cfg domain.TokenConfig) int {
	score := 0

	links := cfg.SocialLinkCount()
	if links > 0 {
		score += 40
	}
	score += 20 * links

	return clampScore(score)
}

// recommendations produces threshold-gated text suggestions per component.
func recommendations(cfg domain.TokenConfig, c domain.QualityComponents) []string {
	var recs []string

	if c.Authorities < 70 {
		if cfg.MintAuthority == domain.MintAuthorityRevocable {
			recs = append(recs, "Burn or permanently revoke the mint authority so supply cannot be inflated")
		}
		if cfg.FreezeAuthority {
			recs = append(recs, "Remove the freeze authority so holder accounts cannot be frozen")
		}
		if cfg.UpdateAuthority {
			recs = append(recs, "Revoke the metadata update authority to make token metadata immutable")
		}
	}

	if c.Metadata < 70 {
		if len(cfg.Description) < 20 {
			recs = append(recs, "Add a token description of at least 20 characters")
		}
		if cfg.Image == "" {
			recs = append(recs, "Add a token image")
		}
		if cfg.Website == "" {
			recs = append(recs, "Add a project website link")
		}
	}

	if c.Tokenomics < 60 {
		if cfg.Supply <= 0 {
			recs = append(recs, "Set a non-zero total supply")
		}
		if cfg.Supply > 1e12 {
			recs = append(recs, "Consider a smaller total supply; extreme supplies read as meme inflation")
		}
		if cfg.TransferFeePct != nil && *cfg.TransferFeePct > 5 {
			recs = append(recs, "Reduce the transfer fee to 5% or less")
		}
	}

	if c.Liquidity < 50 {
		if !cfg.HasLiquidity {
			recs = append(recs, "Add initial liquidity before launch")
		} else if !cfg.LiquidityLocked {
			recs = append(recs, "Lock the liquidity pool to protect holders from a rug pull")
		}
	}

	if c.Verification < 50 {
		if cfg.SocialLinkCount() == 0 {
			recs = append(recs, "Add at least one social link (website, Twitter or Telegram)")
		}
	}

	return recs
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
