package feedback

import "context"

// Adjustment nudges a later analysis of matching content.
type Adjustment struct {
	ConfidenceDelta int
	RiskDelta       int
}

// Adjuster derives an Adjustment from feedback on matching content.
type Adjuster struct {
	Ledger Ledger
}

func NewAdjuster(ledger Ledger) *Adjuster {
	return &Adjuster{Ledger: ledger}
}

// Adjust looks up records whose fingerprint equals Fingerprint(content).
func (a *Adjuster) Adjust(ctx context.Context, content string) (Adjustment, error) {
	if a == nil || a.Ledger == nil {
		return Adjustment{}, nil
	}
	records, err := a.Ledger.ByFingerprint(ctx, Fingerprint(content))
	if err != nil {
		return Adjustment{}, err
	}
	return AdjustmentFor(records), nil
}

// AdjustmentFor applies the rating and accuracy policy to matched records.
func AdjustmentFor(records []Record) Adjustment {
	if len(records) == 0 {
		return Adjustment{}
	}
	sum := 0
	accurate := 0
	for _, r := range records {
		sum += r.Rating
		if r.Accuracy == AccuracyAccurate {
			accurate++
		}
	}
	n := float64(len(records))
	meanRating := float64(sum) / n
	accurateFraction := float64(accurate) / n

	var adj Adjustment
	switch {
	case meanRating >= 4 && accurateFraction >= 0.8:
		adj.ConfidenceDelta = 10
	case meanRating <= 2 || accurateFraction <= 0.3:
		adj.ConfidenceDelta = -15
	}
	if accurateFraction <= 0.5 {
		adj.RiskDelta = 1
	}
	return adj
}
