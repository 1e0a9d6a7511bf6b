package risk

import (
	"reflect"
	"strings"
	"testing"

	"solana-launch-guard/internal/domain"
)

// cleanToken returns a config with every authority resolved, full metadata
// and locked liquidity.
func cleanToken() domain.TokenConfig {
	return domain.TokenConfig{
		Name:            "Guard Token",
		Symbol:          "GUARD",
		Decimals:        9,
		Supply:          1e9,
		MintAuthority:   domain.MintAuthorityPermanent,
		FreezeAuthority: false,
		UpdateAuthority: false,
		Description:     "A token with a description longer than twenty characters.",
		Image:           "https://example.com/guard.png",
		Website:         "https://example.com",
		Twitter:         "https://twitter.com/guard",
		Telegram:        "https://t.me/guard",
		Protocol:        domain.ProtocolSPL,
		HasLiquidity:    true,
		LiquidityLocked: true,
	}
}

func TestScoreAuthorities_Perfect(t *testing.T) {
	cfg := domain.TokenConfig{
		Name:            "X",
		Symbol:          "X",
		MintAuthority:   domain.MintAuthorityPermanent,
		FreezeAuthority: false,
		UpdateAuthority: false,
	}

	score := CalculateQualityScore(cfg)

	// 50 base + 30 permanent + 15 no freeze + 5 no update = 100
	if score.Components.Authorities != 100 {
		t.Errorf("authorities: got %d, want 100", score.Components.Authorities)
	}
}

func TestScoreAuthorities_Variants(t *testing.T) {
	tests := []struct {
		name   string
		mint   domain.MintAuthority
		freeze bool
		update bool
		want   int
	}{
		{"none authority", domain.MintAuthorityNone, false, false, 95},
		{"revocable", domain.MintAuthorityRevocable, false, false, 80},
		{"freeze retained", domain.MintAuthorityPermanent, true, false, 80}, // 50+30-5+5
		{"everything retained", domain.MintAuthorityRevocable, true, true, 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.TokenConfig{
				MintAuthority:   tt.mint,
				FreezeAuthority: tt.freeze,
				UpdateAuthority: tt.update,
			}
			got := CalculateQualityScore(cfg).Components.Authorities
			if got != tt.want {
				t.Errorf("authorities: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreMetadata_FullAndEmpty(t *testing.T) {
	full := CalculateQualityScore(cleanToken())
	if full.Components.Metadata != 100 {
		t.Errorf("full metadata: got %d, want 100", full.Components.Metadata)
	}

	empty := CalculateQualityScore(domain.TokenConfig{})
	if empty.Components.Metadata != 0 {
		t.Errorf("empty metadata: got %d, want 0", empty.Components.Metadata)
	}
}

func TestScoreTokenomics(t *testing.T) {
	tests := []struct {
		name     string
		supply   float64
		decimals int
		protocol domain.TokenProtocol
		fee      *float64
		want     int
	}{
		{"ideal supply and decimals", 1e9, 9, domain.ProtocolSPL, nil, 90},
		{"zero supply", 0, 9, domain.ProtocolSPL, nil, 60},
		{"huge supply penalized", 1e13, 6, domain.ProtocolSPL, nil, 70}, // 50+20-10+10
		{"small fee rewarded", 1e8, 6, domain.ProtocolToken2022, ptrF(3), 95},
		{"big fee penalized", 1e8, 6, domain.ProtocolToken2022, ptrF(15), 75},
		{"fee ignored on spl", 1e8, 6, domain.ProtocolSPL, ptrF(15), 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.TokenConfig{
				Supply:         tt.supply,
				Decimals:       tt.decimals,
				Protocol:       tt.protocol,
				TransferFeePct: tt.fee,
			}
			got := CalculateQualityScore(cfg).Components.Tokenomics
			if got != tt.want {
				t.Errorf("tokenomics: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreLiquidity(t *testing.T) {
	tests := []struct {
		name   string
		has    bool
		locked bool
		want   int
	}{
		{"no liquidity", false, false, 30},
		{"unlocked", true, false, 80},
		{"locked", true, true, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.TokenConfig{HasLiquidity: tt.has, LiquidityLocked: tt.locked}
			got := CalculateQualityScore(cfg).Components.Liquidity
			if got != tt.want {
				t.Errorf("liquidity: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreVerification(t *testing.T) {
	none := CalculateQualityScore(domain.TokenConfig{})
	if none.Components.Verification != 0 {
		t.Errorf("no socials: got %d, want 0", none.Components.Verification)
	}

	one := CalculateQualityScore(domain.TokenConfig{Website: "https://example.com"})
	if one.Components.Verification != 60 {
		t.Errorf("one social: got %d, want 60", one.Components.Verification)
	}

	all := CalculateQualityScore(cleanToken())
	if all.Components.Verification != 100 {
		t.Errorf("three socials: got %d, want 100", all.Components.Verification)
	}
}

func TestOverallWeightingAndGrade(t *testing.T) {
	// authorities=100, metadata=40 (name+symbol), tokenomics=90,
	// liquidity=100, verification=0
	cfg := domain.TokenConfig{
		Name:            "X",
		Symbol:          "X",
		Decimals:        9,
		Supply:          1e9,
		MintAuthority:   domain.MintAuthorityPermanent,
		Protocol:        domain.ProtocolSPL,
		HasLiquidity:    true,
		LiquidityLocked: true,
	}

	score := CalculateQualityScore(cfg)

	// 100*0.25 + 40*0.20 + 90*0.25 + 100*0.20 + 0*0.10 = 75.5 -> 76
	if score.Overall != 76 {
		t.Errorf("overall: got %d, want 76", score.Overall)
	}
	if score.Grade != domain.GradeB {
		t.Errorf("grade: got %s, want B", score.Grade)
	}
}

func TestGradeBoundaries(t *testing.T) {
	tests := []struct {
		overall int
		want    domain.Grade
	}{
		{100, domain.GradeAPlus},
		{95, domain.GradeAPlus},
		{94, domain.GradeA},
		{85, domain.GradeA},
		{84, domain.GradeB},
		{70, domain.GradeB},
		{69, domain.GradeC},
		{55, domain.GradeC},
		{54, domain.GradeD},
		{40, domain.GradeD},
		{39, domain.GradeF},
		{0, domain.GradeF},
	}

	for _, tt := range tests {
		if got := domain.GradeForScore(tt.overall); got != tt.want {
			t.Errorf("GradeForScore(%d): got %s, want %s", tt.overall, got, tt.want)
		}
	}
}

func TestRecommendations_Triggers(t *testing.T) {
	cfg := domain.TokenConfig{
		Name:            "X",
		Symbol:          "X",
		MintAuthority:   domain.MintAuthorityRevocable,
		FreezeAuthority: true,
		UpdateAuthority: true,
		HasLiquidity:    true,
		LiquidityLocked: false,
	}

	score := CalculateQualityScore(cfg)

	wantSubstrings := []string{
		"mint authority",
		"freeze authority",
		"update authority",
		"description",
		"image",
		"website",
		"liquidity pool",
		"social link",
	}
	for _, want := range wantSubstrings {
		if !anyContains(score.Recommendations, want) {
			t.Errorf("recommendations missing %q: %v", want, score.Recommendations)
		}
	}
}

func TestRecommendations_CleanTokenHasNone(t *testing.T) {
	score := CalculateQualityScore(cleanToken())
	if len(score.Recommendations) != 0 {
		t.Errorf("clean token should have no recommendations, got %v", score.Recommendations)
	}
}

func TestCalculateQualityScore_Deterministic(t *testing.T) {
	cfg := cleanToken()

	first := CalculateQualityScore(cfg)
	for run := 0; run < 5; run++ {
		got := CalculateQualityScore(cfg)
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: output differs from first run", run)
		}
	}
}

func anyContains(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(strings.ToLower(s), strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

func ptrF(v float64) *float64 {
	return &v
}
