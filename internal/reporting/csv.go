package reporting

import (
	"fmt"
	"strings"

	"solana-launch-guard/internal/domain"
)

// RenderCSV renders risk findings as a CSV string.
func RenderCSV(risks []domain.Risk) string {
	var sb strings.Builder

	sb.WriteString("category,severity,title,description,recommendation\n")

	for _, r := range risks {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s\n",
			csvField(string(r.Category)),
			csvField(string(r.Severity)),
			csvField(r.Title),
			csvField(r.Description),
			csvField(r.Recommendation),
		))
	}

	return sb.String()
}

// csvField quotes a field when it contains a comma, quote, or newline.
func csvField(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
