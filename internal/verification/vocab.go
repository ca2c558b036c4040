package verification

import "strings"

var (
	certaintyTerms   = []string{"clearly", "definitely", "established"}
	legalTerms       = []string{"section", "article", "ipc", "crpc", "cpc", "supreme court", "high court", "act", "rule"}
	uncertaintyTerms = []string{"may", "might", "possibly", "unclear", "depends on circumstances"}
	complexityTerms  = []string{"complex", "ambiguous", "depends on"}

	highRiskTerms = []string{
		"criminal", "violation", "penalty", "fine", "lawsuit", "prosecution",
		"illegal", "prohibited", "breach", "liability", "damages", "imprisonment",
		"arrest", "warrant", "contempt", "fraud",
	}
	mediumRiskTerms = []string{
		"dispute", "disagreement", "non-compliance", "review required", "caution",
		"careful consideration", "notice", "warning", "procedural", "documentation",
		"verification",
	}
	lowRiskTerms = []string{
		"compliant", "legal", "valid", "acceptable", "permitted", "allowed",
		"standard practice", "routine", "normal", "regular", "proper", "correct",
	}

	positiveValidityTerms = []string{"valid", "legal", "compliant", "permitted", "allowed", "constitutional", "lawful"}
	negativeValidityTerms = []string{"invalid", "illegal", "violation", "prohibited", "unconstitutional", "unlawful", "breach"}

	recommendationTerms = []string{"recommend", "should", "must", "consider", "advise", "ensure"}
)

// countTerms counts distinct terms that appear as substrings of lower.
// Terms match inside words, so "act" hits "contract".
func countTerms(lower string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(lower, t) {
			n++
		}
	}
	return n
}

func containsAny(lower string, terms []string) bool {
	return countTerms(lower, terms) > 0
}
