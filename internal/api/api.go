// Package api defines the JSON wire types shared by the HTTP server and the
// CLI tools, with explicit conversions to and from the domain types. Domain
// structs carry no serialization tags; everything crossing a process boundary
// goes through this package.
package api

import (
	"solana-launch-guard/internal/domain"
)

// TokenConfigRequest is the JSON form of a token configuration submitted for
// scoring or scanning.
type TokenConfigRequest struct {
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Decimals int     `json:"decimals"`
	Supply   float64 `json:"supply"`

	MintAuthority   string `json:"mint_authority"`
	FreezeAuthority bool   `json:"freeze_authority"`
	UpdateAuthority bool   `json:"update_authority"`

	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Website     string `json:"website,omitempty"`
	Twitter     string `json:"twitter,omitempty"`
	Telegram    string `json:"telegram,omitempty"`

	TransferFeePct *float64 `json:"transfer_fee_pct,omitempty"`
	Protocol       string   `json:"protocol,omitempty"`

	HasLiquidity    bool `json:"has_liquidity"`
	LiquidityLocked bool `json:"liquidity_locked"`
}

// ToDomain converts the request into a domain TokenConfig. Unknown authority
// and protocol strings pass through unchanged; the scoring functions treat
// anything unrecognized as the weakest case.
func (r *TokenConfigRequest) ToDomain() domain.TokenConfig {
	return domain.TokenConfig{
		Name:            r.Name,
		Symbol:          r.Symbol,
		Decimals:        r.Decimals,
		Supply:          r.Supply,
		MintAuthority:   domain.MintAuthority(r.MintAuthority),
		FreezeAuthority: r.FreezeAuthority,
		UpdateAuthority: r.UpdateAuthority,
		Description:     r.Description,
		Image:           r.Image,
		Website:         r.Website,
		Twitter:         r.Twitter,
		Telegram:        r.Telegram,
		TransferFeePct:  copyFloatPtr(r.TransferFeePct),
		Protocol:        domain.TokenProtocol(r.Protocol),
		HasLiquidity:    r.HasLiquidity,
		LiquidityLocked: r.LiquidityLocked,
	}
}

// QualityComponentsResponse mirrors domain.QualityComponents.
type QualityComponentsResponse struct {
	Authorities  int `json:"authorities"`
	Metadata     int `json:"metadata"`
	Tokenomics   int `json:"tokenomics"`
	Liquidity    int `json:"liquidity"`
	Verification int `json:"verification"`
}

// QualityScoreResponse is the JSON form of a quality score.
type QualityScoreResponse struct {
	Overall         int                       `json:"overall"`
	Components      QualityComponentsResponse `json:"components"`
	Grade           string                    `json:"grade"`
	Recommendations []string                  `json:"recommendations"`
}

// NewQualityScoreResponse converts a domain quality score to its wire form.
func NewQualityScoreResponse(q domain.QualityScore) QualityScoreResponse {
	recs := q.Recommendations
	if recs == nil {
		recs = []string{}
	}
	return QualityScoreResponse{
		Overall: q.Overall,
		Components: QualityComponentsResponse{
			Authorities:  q.Components.Authorities,
			Metadata:     q.Components.Metadata,
			Tokenomics:   q.Components.Tokenomics,
			Liquidity:    q.Components.Liquidity,
			Verification: q.Components.Verification,
		},
		Grade:           string(q.Grade),
		Recommendations: recs,
	}
}

// RiskResponse is the JSON form of a single risk finding.
type RiskResponse struct {
	Category       string `json:"category"`
	Severity       string `json:"severity"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// RiskAssessmentResponse is the JSON form of a risk assessment.
type RiskAssessmentResponse struct {
	RiskLevel      string         `json:"risk_level"`
	Risks          []RiskResponse `json:"risks"`
	Warnings       []string       `json:"warnings"`
	CriticalIssues []string       `json:"critical_issues"`
	SafetyScore    int            `json:"safety_score"`
}

// NewRiskAssessmentResponse converts a domain risk assessment to its wire form.
func NewRiskAssessmentResponse(a domain.RiskAssessment) RiskAssessmentResponse {
	risks := make([]RiskResponse, 0, len(a.Risks))
	for _, r := range a.Risks {
		risks = append(risks, RiskResponse{
			Category:       string(r.Category),
			Severity:       string(r.Severity),
			Title:          r.Title,
			Description:    r.Description,
			Recommendation: r.Recommendation,
		})
	}
	warnings := a.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	critical := a.CriticalIssues
	if critical == nil {
		critical = []string{}
	}
	return RiskAssessmentResponse{
		RiskLevel:      string(a.RiskLevel),
		Risks:          risks,
		Warnings:       warnings,
		CriticalIssues: critical,
		SafetyScore:    a.SafetyScore,
	}
}

// ConfigOverridesRequest carries optional per-field overrides on top of the
// level defaults. Absent fields keep the defaults.
type ConfigOverridesRequest struct {
	LaunchDelayMinutes *int     `json:"launch_delay_minutes,omitempty"`
	MaxWalletPct       *float64 `json:"max_wallet_pct,omitempty"`
	BuyLimitPerTx      *float64 `json:"buy_limit_per_tx,omitempty"`
	WhitelistEnabled   *bool    `json:"whitelist_enabled,omitempty"`
	Whitelist          []string `json:"whitelist,omitempty"`
	BlacklistEnabled   *bool    `json:"blacklist_enabled,omitempty"`
	Blacklist          []string `json:"blacklist,omitempty"`
	HoneypotMonitorMin *int     `json:"honeypot_monitor_min,omitempty"`
}

// ToDomain converts the overrides request to domain overrides. A nil receiver
// converts to nil so the policy layer applies pure level defaults.
func (r *ConfigOverridesRequest) ToDomain() *domain.ConfigOverrides {
	if r == nil {
		return nil
	}
	return &domain.ConfigOverrides{
		LaunchDelayMinutes: copyIntPtr(r.LaunchDelayMinutes),
		MaxWalletPct:       copyFloatPtr(r.MaxWalletPct),
		BuyLimitPerTx:      copyFloatPtr(r.BuyLimitPerTx),
		WhitelistEnabled:   copyBoolPtr(r.WhitelistEnabled),
		Whitelist:          copyStrings(r.Whitelist),
		BlacklistEnabled:   copyBoolPtr(r.BlacklistEnabled),
		Blacklist:          copyStrings(r.Blacklist),
		HoneypotMonitorMin: copyIntPtr(r.HoneypotMonitorMin),
	}
}

// AntiSnipeConfigResponse is the JSON form of a resolved protection config.
type AntiSnipeConfigResponse struct {
	Level              string   `json:"level"`
	LaunchDelayMinutes int      `json:"launch_delay_minutes"`
	MaxWalletPct       *float64 `json:"max_wallet_pct,omitempty"`
	BuyLimitPerTx      *float64 `json:"buy_limit_per_tx,omitempty"`
	WhitelistEnabled   bool     `json:"whitelist_enabled"`
	Whitelist          []string `json:"whitelist"`
	BlacklistEnabled   bool     `json:"blacklist_enabled"`
	Blacklist          []string `json:"blacklist"`
	HoneypotMonitorMin *int     `json:"honeypot_monitor_min,omitempty"`
	SetupCostSOL       float64  `json:"setup_cost_sol"`
}

// NewAntiSnipeConfigResponse converts a domain config to its wire form.
// SetupCostSOL is filled in by the caller.
func NewAntiSnipeConfigResponse(cfg domain.AntiSnipeConfig, setupCost float64) AntiSnipeConfigResponse {
	whitelist := cfg.Whitelist
	if whitelist == nil {
		whitelist = []string{}
	}
	blacklist := cfg.Blacklist
	if blacklist == nil {
		blacklist = []string{}
	}
	return AntiSnipeConfigResponse{
		Level:              string(cfg.Level),
		LaunchDelayMinutes: cfg.LaunchDelayMinutes,
		MaxWalletPct:       copyFloatPtr(cfg.MaxWalletPct),
		BuyLimitPerTx:      copyFloatPtr(cfg.BuyLimitPerTx),
		WhitelistEnabled:   cfg.WhitelistEnabled,
		Whitelist:          whitelist,
		BlacklistEnabled:   cfg.BlacklistEnabled,
		Blacklist:          blacklist,
		HoneypotMonitorMin: copyIntPtr(cfg.HoneypotMonitorMin),
		SetupCostSOL:       setupCost,
	}
}

// ScheduleRequest asks the server to schedule a protected launch for a mint.
type ScheduleRequest struct {
	Mint      string                  `json:"mint"`
	Level     string                  `json:"level"`
	Overrides *ConfigOverridesRequest `json:"overrides,omitempty"`
}

// ScheduleResponse is the JSON form of a launch schedule. Timestamps are
// Unix milliseconds.
type ScheduleResponse struct {
	LaunchID          string `json:"launch_id"`
	Mint              string `json:"mint"`
	ScheduledTime     int64  `json:"scheduled_time_ms"`
	Status            string `json:"status"`
	WhitelistPhaseEnd *int64 `json:"whitelist_phase_end_ms,omitempty"`
	PublicPhaseStart  int64  `json:"public_phase_start_ms"`
	CreatedAt         int64  `json:"created_at_ms"`
}

// NewScheduleResponse converts a domain schedule to its wire form.
func NewScheduleResponse(s domain.LaunchSchedule) ScheduleResponse {
	return ScheduleResponse{
		LaunchID:          s.LaunchID,
		Mint:              s.Mint,
		ScheduledTime:     s.ScheduledTime,
		Status:            string(s.Status),
		WhitelistPhaseEnd: copyInt64Ptr(s.WhitelistPhaseEnd),
		PublicPhaseStart:  s.PublicPhaseStart,
		CreatedAt:         s.CreatedAt,
	}
}

// ValidateRequest is a single purchase attempt to gate.
type ValidateRequest struct {
	Wallet string  `json:"wallet"`
	Mint   string  `json:"mint"`
	Amount float64 `json:"amount"`
}

// ValidateResponse reports the gate decision. Reason is only set on denial.
type ValidateResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// WalletRequest carries a single wallet address for bot marking and detection.
type WalletRequest struct {
	Wallet string `json:"wallet"`
}

// ListWalletRequest adds a wallet to a per-mint whitelist or blacklist.
type ListWalletRequest struct {
	Mint   string `json:"mint"`
	Wallet string `json:"wallet"`
}

// MintRequest carries a single mint address for launch transitions.
type MintRequest struct {
	Mint string `json:"mint"`
}

// BotDetectionResponse is the JSON form of a bot detection verdict.
type BotDetectionResponse struct {
	Wallet      string   `json:"wallet"`
	IsBot       bool     `json:"is_bot"`
	Confidence  int      `json:"confidence"`
	Indicators  []string `json:"indicators"`
	ShouldBlock bool     `json:"should_block"`
}

// NewBotDetectionResponse converts a domain verdict to its wire form.
func NewBotDetectionResponse(wallet string, r domain.BotDetectionResult) BotDetectionResponse {
	indicators := r.Indicators
	if indicators == nil {
		indicators = []string{}
	}
	return BotDetectionResponse{
		Wallet:      wallet,
		IsBot:       r.IsBot,
		Confidence:  r.Confidence,
		Indicators:  indicators,
		ShouldBlock: r.ShouldBlock,
	}
}

func copyFloatPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyInt64Ptr(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyBoolPtr(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
