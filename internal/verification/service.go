package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"legal-backend/internal/feedback"
	"legal-backend/internal/llm"
	"legal-backend/internal/shared/metrics"
	"legal-backend/internal/shared/server/respond"
	"legal-backend/internal/shared/telemetry"
)

// AdjustmentSource yields the feedback adjustment for submitted content.
type AdjustmentSource interface {
	Adjust(ctx context.Context, content string) (feedback.Adjustment, error)
}

// Service runs a verification: prompt, generate, adjust, analyze.
type Service struct {
	Gateway       llm.Generator
	Adjuster      AdjustmentSource
	Analyzer      *Analyzer
	HasCredential func() bool
	Now           func() time.Time
}

func NewService(gateway llm.Generator, adjuster AdjustmentSource, hasCredential func() bool) *Service {
	return &Service{
		Gateway:       gateway,
		Adjuster:      adjuster,
		Analyzer:      NewAnalyzer(),
		HasCredential: hasCredential,
		Now:           time.Now,
	}
}

// RawRequest is the loosely typed input accepted from callers. Query and
// Document are the legacy per-kind fields; Type aliases Kind.
type RawRequest struct {
	Content      string
	Query        string
	Document     string
	Jurisdiction string
	LawType      string
	Kind         string
	Type         string
}

// NormalizeRequest resolves kind and content and rejects empty content.
func NormalizeRequest(raw RawRequest) (Request, error) {
	kindRaw := strings.TrimSpace(raw.Kind)
	if kindRaw == "" {
		kindRaw = strings.TrimSpace(raw.Type)
	}
	var kind Kind
	switch Kind(strings.ToLower(kindRaw)) {
	case "", KindQuery:
		kind = KindQuery
	case KindDocument:
		kind = KindDocument
	default:
		return Request{}, fmt.Errorf("%w: kind must be query or document", ErrValidation)
	}

	content := raw.Content
	if strings.TrimSpace(content) == "" {
		if kind == KindDocument {
			content = raw.Document
		} else {
			content = raw.Query
		}
	}
	if strings.TrimSpace(content) == "" {
		return Request{}, fmt.Errorf("%w: either query or document is required", ErrValidation)
	}

	return Request{
		Content:      content,
		Jurisdiction: strings.TrimSpace(raw.Jurisdiction),
		LawType:      strings.TrimSpace(raw.LawType),
		Kind:         kind,
	}, nil
}

// CheckCredential fails fast when the primary provider has no API key.
func (s *Service) CheckCredential() error {
	if s.HasCredential != nil && !s.HasCredential() {
		return llm.ErrMissingCredential
	}
	return nil
}

// Verify runs one verification end to end.
func (s *Service) Verify(ctx context.Context, req Request) (Result, error) {
	if err := s.CheckCredential(); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return Result{}, fmt.Errorf("%w: content is required", ErrValidation)
	}

	now := s.now
	start := now()
	metrics.IncVerificationStarted()

	system, user := llm.BuildPrompts(llm.PromptInput{
		Kind:         string(req.Kind),
		Content:      req.Content,
		Jurisdiction: req.Jurisdiction,
		LawType:      req.LawType,
	})
	text, err := s.Gateway.Generate(ctx, system, user)
	if err == nil && strings.TrimSpace(text) == "" {
		err = llm.ErrEmptyResponse
	}
	if err != nil {
		metrics.IncVerificationFailed(ErrorCode(err))
		telemetry.Error("verification.generate_failed", map[string]any{
			"kind":        req.Kind,
			"error":       err.Error(),
			"duration_ms": now().Sub(start).Milliseconds(),
		})
		return Result{}, err
	}

	adj := s.adjustment(ctx, req.Content)
	analyzer := s.Analyzer
	if analyzer == nil {
		analyzer = NewAnalyzer()
	}
	result := analyzer.Analyze(AnalyzeInput{
		RawText:      text,
		AnalysisID:   NewAnalysisID(now()),
		Jurisdiction: req.Jurisdiction,
		LawType:      req.LawType,
		Adjustment:   adj,
	})

	elapsed := now().Sub(start)
	metrics.IncVerificationCompleted()
	metrics.ObserveVerificationDurationMs(float64(elapsed.Milliseconds()))
	metrics.ObserveConfidence(result.Confidence)
	telemetry.Info("verification.complete", map[string]any{
		"analysis_id":      result.AnalysisID,
		"kind":             req.Kind,
		"confidence":       result.Confidence,
		"risk_level":       result.RiskLevel,
		"is_valid":         result.IsValid,
		"confidence_delta": adj.ConfidenceDelta,
		"risk_delta":       adj.RiskDelta,
		"duration_ms":      elapsed.Milliseconds(),
	})
	return result, nil
}

// adjustment never fails a verification; ledger errors fall back to zero.
func (s *Service) adjustment(ctx context.Context, content string) feedback.Adjustment {
	if s.Adjuster == nil {
		return feedback.Adjustment{}
	}
	adj, err := s.Adjuster.Adjust(ctx, content)
	if err != nil {
		telemetry.Warn("verification.adjust_failed", map[string]any{"error": err.Error()})
		return feedback.Adjustment{}
	}
	return adj
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ErrorCode maps a verification error to its envelope code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return respond.CodeValidation
	case errors.Is(err, llm.ErrMissingCredential):
		return respond.CodeConfiguration
	case llm.IsQuotaError(err):
		return respond.CodeQuotaExceeded
	default:
		return respond.CodeUpstream
	}
}
