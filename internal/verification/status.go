package verification

const (
	statusCompliant = "LEGALLY COMPLIANT"
	statusIssues    = "COMPLIANCE ISSUES DETECTED"
)

// BuildStatus renders the verdict block for a result.
func BuildStatus(valid bool, confidence int, risk RiskLevel, jurisdiction, lawType string) Status {
	status := statusIssues
	if valid {
		status = statusCompliant
	}
	level := confidenceLevel(confidence)
	desc := riskDescription(risk)
	return Status{
		Status:          status,
		ConfidenceLevel: level,
		RiskDescription: desc,
		Jurisdiction:    orDefault(jurisdiction, DefaultJurisdiction),
		LawType:         orDefault(lawType, DefaultLawType),
		Summary:         status + " - " + level + " CONFIDENCE - " + desc,
	}
}

func confidenceLevel(confidence int) string {
	switch {
	case confidence >= 80:
		return "HIGH"
	case confidence >= 60:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func riskDescription(risk RiskLevel) string {
	switch risk {
	case RiskHigh:
		return "IMMEDIATE ATTENTION REQUIRED"
	case RiskMedium:
		return "REVIEW RECOMMENDED"
	default:
		return "MINIMAL CONCERNS"
	}
}
