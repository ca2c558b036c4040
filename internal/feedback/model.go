package feedback

import (
	"strings"
	"time"
)

type Accuracy string

const (
	AccuracyAccurate         Accuracy = "accurate"
	AccuracySomewhatAccurate Accuracy = "somewhat_accurate"
	AccuracyInaccurate       Accuracy = "inaccurate"
)

type Helpfulness string

const (
	HelpfulnessVeryHelpful Helpfulness = "very_helpful"
	HelpfulnessHelpful     Helpfulness = "helpful"
	HelpfulnessNotHelpful  Helpfulness = "not_helpful"
)

func (a Accuracy) Valid() bool {
	switch a {
	case AccuracyAccurate, AccuracySomewhatAccurate, AccuracyInaccurate:
		return true
	}
	return false
}

func (h Helpfulness) Valid() bool {
	switch h {
	case HelpfulnessVeryHelpful, HelpfulnessHelpful, HelpfulnessNotHelpful:
		return true
	}
	return false
}

// Record is one piece of user feedback about an analysis. Records are never
// mutated once appended.
type Record struct {
	AnalysisID         string      `json:"analysisId"`
	Rating             int         `json:"rating"`
	Accuracy           Accuracy    `json:"accuracy"`
	Helpfulness        Helpfulness `json:"helpfulness"`
	Comments           string      `json:"comments"`
	Timestamp          time.Time   `json:"timestamp"`
	ContentFingerprint string      `json:"contentFingerprint"`
}

// Stats summarizes the ledger. Distribution maps only hold observed keys.
type Stats struct {
	TotalFeedback    int            `json:"totalFeedback"`
	AverageRating    float64        `json:"averageRating"`
	AccuracyStats    map[string]int `json:"accuracyStats"`
	HelpfulnessStats map[string]int `json:"helpfulnessStats"`
}

const fingerprintLen = 50

// Fingerprint is the lowercase first 50 characters of s.
func Fingerprint(s string) string {
	runes := []rune(s)
	if len(runes) > fingerprintLen {
		runes = runes[:fingerprintLen]
	}
	return strings.ToLower(string(runes))
}
