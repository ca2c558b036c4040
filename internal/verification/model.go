package verification

import "legal-backend/internal/feedback"

type Kind string

const (
	KindQuery    Kind = "query"
	KindDocument Kind = "document"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

const (
	DefaultJurisdiction = "Indian Legal System"
	DefaultLawType      = "General Legal Analysis"
)

// Request is a validated verification request.
type Request struct {
	Content      string
	Jurisdiction string
	LawType      string
	Kind         Kind
}

// Status is the human readable verdict attached to a Result.
type Status struct {
	Status          string `json:"status"`
	ConfidenceLevel string `json:"confidenceLevel"`
	RiskDescription string `json:"riskDescription"`
	Jurisdiction    string `json:"jurisdiction"`
	LawType         string `json:"lawType"`
	Summary         string `json:"summary"`
}

// Result is the scored analysis returned to callers. It is never persisted.
type Result struct {
	IsValid            bool      `json:"isValid"`
	Confidence         int       `json:"confidence"`
	Analysis           string    `json:"analysis"`
	Citations          []string  `json:"citations"`
	Recommendations    []string  `json:"recommendations"`
	RiskLevel          RiskLevel `json:"riskLevel"`
	AnalysisID         string    `json:"analysisId"`
	VerificationStatus Status    `json:"verificationStatus"`
	Jurisdiction       string    `json:"jurisdiction"`
	LawType            string    `json:"lawType"`
}

// AnalyzeInput is everything the analyzer needs besides the model text.
type AnalyzeInput struct {
	RawText      string
	AnalysisID   string
	Jurisdiction string
	LawType      string
	Adjustment   feedback.Adjustment
}
