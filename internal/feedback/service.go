package feedback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"legal-backend/internal/shared/metrics"
	"legal-backend/internal/shared/telemetry"
)

// SubmitInput is a feedback submission before validation.
type SubmitInput struct {
	AnalysisID  string
	Rating      int
	Accuracy    string
	Helpfulness string
	Comments    string
}

// Service validates and records feedback.
type Service struct {
	Ledger Ledger
	Now    func() time.Time
}

func NewService(ledger Ledger) *Service {
	return &Service{Ledger: ledger, Now: time.Now}
}

// Submit validates in and appends it to the ledger.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Record, error) {
	analysisID := strings.TrimSpace(in.AnalysisID)
	if analysisID == "" {
		return Record{}, fmt.Errorf("%w: analysisId is required", ErrValidation)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return Record{}, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	accuracy := Accuracy(in.Accuracy)
	if !accuracy.Valid() {
		return Record{}, fmt.Errorf("%w: unknown accuracy %q", ErrValidation, in.Accuracy)
	}
	helpfulness := Helpfulness(in.Helpfulness)
	if !helpfulness.Valid() {
		return Record{}, fmt.Errorf("%w: unknown helpfulness %q", ErrValidation, in.Helpfulness)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	record := Record{
		AnalysisID:         analysisID,
		Rating:             in.Rating,
		Accuracy:           accuracy,
		Helpfulness:        helpfulness,
		Comments:           in.Comments,
		Timestamp:          now().UTC(),
		ContentFingerprint: Fingerprint(analysisID),
	}
	if err := s.Ledger.Append(ctx, record); err != nil {
		return Record{}, fmt.Errorf("append feedback: %w", err)
	}

	metrics.IncFeedbackSubmitted(string(accuracy))
	telemetry.Info("feedback.received", map[string]any{
		"analysis_id":  record.AnalysisID,
		"rating":       record.Rating,
		"accuracy":     record.Accuracy,
		"helpfulness":  record.Helpfulness,
		"has_comments": record.Comments != "",
	})
	return record, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.Ledger.Stats(ctx)
}
