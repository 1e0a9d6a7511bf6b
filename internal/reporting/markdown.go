package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders a TokenReport as a Markdown string.
func RenderMarkdown(report *TokenReport) string {
	var sb strings.Builder

	sb.WriteString("# Token Analysis Report\n\n")
	sb.WriteString(fmt.Sprintf("Mint: `%s`\n\n", report.Mint))
	if report.GeneratedAt > 0 {
		generated := time.UnixMilli(report.GeneratedAt).UTC().Format(time.RFC3339)
		sb.WriteString(fmt.Sprintf("Generated: %s\n\n", generated))
	}

	if q := report.Quality; q != nil {
		sb.WriteString(fmt.Sprintf("## Quality: %d/100 (%s)\n\n", q.Overall, q.Grade))

		sb.WriteString("| Component | Score |\n")
		sb.WriteString("|-----------|-------|\n")
		sb.WriteString(fmt.Sprintf("| Authorities | %d |\n", q.Components.Authorities))
		sb.WriteString(fmt.Sprintf("| Metadata | %d |\n", q.Components.Metadata))
		sb.WriteString(fmt.Sprintf("| Tokenomics | %d |\n", q.Components.Tokenomics))
		sb.WriteString(fmt.Sprintf("| Liquidity | %d |\n", q.Components.Liquidity))
		sb.WriteString(fmt.Sprintf("| Verification | %d |\n", q.Components.Verification))
		sb.WriteString("\n")

		if len(q.Recommendations) > 0 {
			sb.WriteString("### Recommendations\n\n")
			for _, r := range q.Recommendations {
				sb.WriteString(fmt.Sprintf("- %s\n", r))
			}
			sb.WriteString("\n")
		}
	}

	if a := report.Assessment; a != nil {
		sb.WriteString(fmt.Sprintf("## Risk: %s (safety score %d/100)\n\n", strings.ToUpper(string(a.RiskLevel)), a.SafetyScore))

		if len(a.Risks) > 0 {
			sb.WriteString("| # | Severity | Category | Finding |\n")
			sb.WriteString("|---|----------|----------|---------|\n")
			for i, r := range a.Risks {
				sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n",
					i+1, r.Severity, r.Category, r.Title))
			}
			sb.WriteString("\n")
		} else {
			sb.WriteString("No risks found.\n\n")
		}

		if len(a.CriticalIssues) > 0 {
			sb.WriteString("### Critical Issues\n\n")
			for _, issue := range a.CriticalIssues {
				sb.WriteString(fmt.Sprintf("- %s\n", issue))
			}
			sb.WriteString("\n")
		}

		if len(a.Warnings) > 0 {
			sb.WriteString("### Warnings\n\n")
			for _, w := range a.Warnings {
				sb.WriteString(fmt.Sprintf("- %s\n", w))
			}
			sb.WriteString("\n")
		}

		if len(a.Risks) > 0 {
			sb.WriteString("### Details\n\n")
			for _, r := range a.Risks {
				sb.WriteString(fmt.Sprintf("- **%s**: %s Recommendation: %s\n", r.Title, r.Description, r.Recommendation))
			}
		}
	}

	return sb.String()
}
