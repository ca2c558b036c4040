package verification

import (
	"strings"
	"unicode/utf8"
)

const (
	maxRecommendations   = 4
	minRecommendationLen = 20
)

var defaultRecommendations = []string{
	"Consult with a qualified legal practitioner for detailed advice",
	"Review all applicable Indian laws and regulations",
	"Ensure compliance with jurisdictional requirements",
	"Maintain proper documentation for legal compliance",
}

// ExtractRecommendations keeps advisory lines longer than 20 characters.
func ExtractRecommendations(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if utf8.RuneCountInString(trimmed) <= minRecommendationLen {
			continue
		}
		if !containsAny(strings.ToLower(line), recommendationTerms) {
			continue
		}
		out = append(out, trimmed)
		if len(out) == maxRecommendations {
			break
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaultRecommendations...)
	}
	return out
}
