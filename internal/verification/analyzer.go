package verification

import (
	"regexp"
	"strings"
)

const (
	baseConfidence = 75
	minConfidence  = 35
	maxConfidence  = 95

	referenceJurisdiction = "Supreme Court of India"
)

var citationShape = regexp.MustCompile(`\d+\s+U\.S\.C\.|§|Article|Section|IPC|CrPC|CPC`)

// Analyzer turns free-form model output into a scored Result.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze scores in.RawText. It is pure: the same input yields the same
// Result.
func (a *Analyzer) Analyze(in AnalyzeInput) Result {
	lower := strings.ToLower(in.RawText)

	confidence := Confidence(in.RawText, in.Jurisdiction, in.LawType, in.Adjustment.ConfidenceDelta)
	risk := AssessRisk(lower, confidence)
	if in.Adjustment.RiskDelta > 0 {
		risk = Escalate(risk)
	}
	valid := IsValid(lower, risk, confidence)

	jurisdiction := orDefault(in.Jurisdiction, DefaultJurisdiction)
	lawType := orDefault(in.LawType, DefaultLawType)

	return Result{
		IsValid:            valid,
		Confidence:         confidence,
		Analysis:           in.RawText,
		Citations:          ExtractCitations(in.RawText),
		Recommendations:    ExtractRecommendations(in.RawText),
		RiskLevel:          risk,
		AnalysisID:         in.AnalysisID,
		VerificationStatus: BuildStatus(valid, confidence, risk, jurisdiction, lawType),
		Jurisdiction:       jurisdiction,
		LawType:            lawType,
	}
}

// Confidence computes the clamped confidence score for text.
func Confidence(text, jurisdiction, lawType string, feedbackDelta int) int {
	lower := strings.ToLower(text)
	score := baseConfidence

	if containsAny(lower, certaintyTerms) {
		score += 15
	}
	score += min(countTerms(lower, legalTerms)*3, 15)
	if containsAny(lower, uncertaintyTerms) {
		score -= 20
	}
	score += min(len(citationShape.FindAllString(text, -1))*4, 20)
	if containsAny(lower, complexityTerms) {
		score -= 15
	}
	if jurisdiction != "" && jurisdiction != referenceJurisdiction {
		score -= 5
	}
	if lawType == "Constitutional Law" || lawType == "Administrative Law" {
		score += 5
	}
	score += feedbackDelta

	return clamp(score, minConfidence, maxConfidence)
}

// AssessRisk applies the vocabulary rules in order; the first match wins.
func AssessRisk(lower string, confidence int) RiskLevel {
	high := countTerms(lower, highRiskTerms)
	medium := countTerms(lower, mediumRiskTerms)
	low := countTerms(lower, lowRiskTerms)

	switch {
	case high >= 3 || (high >= 2 && confidence < 60):
		return RiskHigh
	case low >= 3 && confidence > 80 && high == 0:
		return RiskLow
	case low > high && confidence > 75 && medium <= 1:
		return RiskLow
	default:
		return RiskMedium
	}
}

// Escalate raises risk by one step. High stays high.
func Escalate(r RiskLevel) RiskLevel {
	switch r {
	case RiskLow:
		return RiskMedium
	case RiskMedium:
		return RiskHigh
	default:
		return RiskHigh
	}
}

// IsValid needs more positive than negative terms, and high risk only passes
// with confidence above 70.
func IsValid(lower string, risk RiskLevel, confidence int) bool {
	pos := countTerms(lower, positiveValidityTerms)
	neg := countTerms(lower, negativeValidityTerms)
	return pos > neg && (risk != RiskHigh || confidence > 70)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
