package domain

// Grade is the letter grade derived from the overall quality score.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// QualityComponents holds the five independent sub-scores, each 0-100.
type QualityComponents struct {
	Authorities  int
	Metadata     int
	Tokenomics   int
	Liquidity    int
	Verification int
}

// QualityScore is the output of quality scoring. Pure function output.
type QualityScore struct {
	Overall         int // 0-100, rounded weighted sum of components
	Components      QualityComponents
	Grade           Grade
	Recommendations []string // ordered, user-facing
}

// GradeForScore maps an overall score to a letter grade.
// Boundaries are inclusive on the lower bound of each band.
func GradeForScore(overall int) Grade {
	switch {
	case overall >= 95:
		return GradeAPlus
	case overall >= 85:
		return GradeA
	case overall >= 70:
		return GradeB
	case overall >= 55:
		return GradeC
	case overall >= 40:
		return GradeD
	default:
		return GradeF
	}
}
