// Package main provides a one-shot scoring tool: it reads a token
// configuration from a JSON file (or stdin), runs quality scoring and the
// risk scan, and writes the result as markdown, CSV or JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"solana-launch-guard/internal/api"
	"solana-launch-guard/internal/reporting"
	"solana-launch-guard/internal/risk"
)

func main() {
	// Parse flags
	input := flag.String("input", "-", "Token config JSON file (- for stdin)")
	output := flag.String("output", "-", "Output file (- for stdout)")
	format := flag.String("format", "markdown", "Output format (markdown, csv, json)")
	mint := flag.String("mint", "", "Mint address to label the report with")
	flag.Parse()

	req, err := readTokenConfig(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading token config: %v\n", err)
		os.Exit(1)
	}

	cfg := req.ToDomain()
	quality := risk.CalculateQualityScore(cfg)
	assessment := risk.ScanForRisks(cfg)

	report := reporting.TokenReport{
		Mint:        *mint,
		GeneratedAt: time.Now().UnixMilli(),
		Quality:     &quality,
		Assessment:  &assessment,
	}

	rendered, err := render(report, *format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutput(*output, rendered); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

// readTokenConfig decodes a token config request from a file or stdin.
func readTokenConfig(path string) (*api.TokenConfigRequest, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var req api.TokenConfigRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("decode token config: %w", err)
	}
	return &req, nil
}

// render produces the report in the requested format.
func render(report reporting.TokenReport, format string) (string, error) {
	switch format {
	case "markdown":
		return reporting.RenderMarkdown(&report), nil
	case "csv":
		return reporting.RenderCSV(report.Assessment.Risks), nil
	case "json":
		out := struct {
			Mint        string                     `json:"mint,omitempty"`
			GeneratedAt int64                      `json:"generated_at_ms"`
			Quality     api.QualityScoreResponse   `json:"quality"`
			Assessment  api.RiskAssessmentResponse `json:"assessment"`
		}{
			Mint:        report.Mint,
			GeneratedAt: report.GeneratedAt,
			Quality:     api.NewQualityScoreResponse(*report.Quality),
			Assessment:  api.NewRiskAssessmentResponse(*report.Assessment),
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unknown format %q (markdown, csv, json)", format)
	}
}

// writeOutput writes the rendered report to a file or stdout.
func writeOutput(path, content string) error {
	if path == "-" {
		_, err := os.Stdout.WriteString(content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
