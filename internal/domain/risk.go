package domain

// RiskSeverity classifies a single risk finding.
type RiskSeverity string

const (
	SeverityLow      RiskSeverity = "low"
	SeverityMedium   RiskSeverity = "medium"
	SeverityHigh     RiskSeverity = "high"
	SeverityCritical RiskSeverity = "critical"
)

// RiskCategory groups risk findings by the area of the token config they concern.
type RiskCategory string

const (
	CategoryAuthorities RiskCategory = "authorities"
	CategoryTokenomics  RiskCategory = "tokenomics"
	CategoryMetadata    RiskCategory = "metadata"
	CategoryLiquidity   RiskCategory = "liquidity"
)

// RiskLevel is the aggregate risk classification of the whole assessment.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Risk is a single triggered risk finding with fixed user-facing text.
type Risk struct {
	Category       RiskCategory
	Severity       RiskSeverity
	Title          string
	Description    string
	Recommendation string
}

// RiskAssessment is the output of risk scanning. Pure function output.
type RiskAssessment struct {
	RiskLevel      RiskLevel
	Risks          []Risk // ordered by evaluation order
	Warnings       []string
	CriticalIssues []string
	SafetyScore    int // 0-100, floored at 0
}
