package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"legal-backend/internal/feedback"
	"legal-backend/internal/llm"
)

type fakeGateway struct {
	text   string
	err    error
	calls  int
	system string
	user   string
}

func (f *fakeGateway) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.system = systemPrompt
	f.user = userPrompt
	return f.text, f.err
}

type errAdjuster struct{}

func (errAdjuster) Adjust(ctx context.Context, content string) (feedback.Adjustment, error) {
	return feedback.Adjustment{}, errors.New("ledger down")
}

func hasKey() bool { return true }

func TestNormalizeRequest(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawRequest
		want    Request
		wantErr bool
	}{
		{name: "content default kind", raw: RawRequest{Content: "Is this legal?"}, want: Request{Content: "Is this legal?", Kind: KindQuery}},
		{name: "legacy query", raw: RawRequest{Query: "q", Type: "query"}, want: Request{Content: "q", Kind: KindQuery}},
		{name: "legacy document", raw: RawRequest{Document: "d", Type: "document", Jurisdiction: " Delhi "}, want: Request{Content: "d", Kind: KindDocument, Jurisdiction: "Delhi"}},
		{name: "kind wins over type", raw: RawRequest{Content: "c", Kind: "document", Type: "query"}, want: Request{Content: "c", Kind: KindDocument}},
		{name: "unknown kind", raw: RawRequest{Content: "c", Kind: "essay"}, wantErr: true},
		{name: "empty", raw: RawRequest{}, wantErr: true},
		{name: "whitespace", raw: RawRequest{Content: "   ", Query: "\n"}, wantErr: true},
		{name: "document kind with only query", raw: RawRequest{Query: "q", Kind: "document"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeRequest(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeRequest: %v", err)
			}
			if got != tt.want {
				t.Fatalf("NormalizeRequest = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestVerifyBuildsPromptsAndAnalyzes(t *testing.T) {
	gw := &fakeGateway{text: "Section 302 IPC clearly establishes murder as a criminal offense warranting imprisonment"}
	svc := NewService(gw, nil, hasKey)

	got, err := svc.Verify(context.Background(), Request{Content: "Is murder punishable?", Kind: KindQuery, LawType: "Criminal Law"})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.Confidence != 95 || got.RiskLevel != RiskHigh || got.IsValid {
		t.Fatalf("unexpected result %+v", got)
	}
	if got.LawType != "Criminal Law" || got.Jurisdiction != DefaultJurisdiction {
		t.Fatalf("unexpected jurisdiction/lawType %q %q", got.Jurisdiction, got.LawType)
	}
	if !strings.HasPrefix(got.AnalysisID, "analysis_") {
		t.Fatalf("unexpected id %q", got.AnalysisID)
	}
	if !strings.Contains(gw.system, "focusing on Criminal Law") {
		t.Fatalf("system prompt missing law type: %s", gw.system)
	}
	if !strings.Contains(gw.user, `"Is murder punishable?"`) || !strings.Contains(gw.user, "legal query") {
		t.Fatalf("user prompt missing content: %s", gw.user)
	}
}

func TestVerifyMissingCredentialSkipsGateway(t *testing.T) {
	gw := &fakeGateway{text: "unused"}
	svc := NewService(gw, nil, func() bool { return false })

	_, err := svc.Verify(context.Background(), Request{Content: "x", Kind: KindQuery})
	if !errors.Is(err, llm.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if gw.calls != 0 {
		t.Fatalf("gateway must not be called")
	}
}

func TestVerifyPropagatesGatewayErrors(t *testing.T) {
	quota := fmt.Errorf("openai: %w", llm.ErrQuotaExceeded)
	svc := NewService(&fakeGateway{err: quota}, nil, hasKey)
	_, err := svc.Verify(context.Background(), Request{Content: "x", Kind: KindQuery})
	if !errors.Is(err, llm.ErrQuotaExceeded) {
		t.Fatalf("expected quota error, got %v", err)
	}
	if ErrorCode(err) != "quota_exceeded" {
		t.Fatalf("unexpected code %q", ErrorCode(err))
	}
}

func TestVerifyEmptyGenerationIsUpstreamError(t *testing.T) {
	svc := NewService(&fakeGateway{text: "  \n"}, nil, hasKey)
	_, err := svc.Verify(context.Background(), Request{Content: "x", Kind: KindQuery})
	if !errors.Is(err, llm.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
	if ErrorCode(err) != "upstream_error" {
		t.Fatalf("unexpected code %q", ErrorCode(err))
	}
}

func TestVerifyAppliesFeedbackForMatchingContent(t *testing.T) {
	ctx := context.Background()
	ledger := feedback.NewMemoryLedger()
	fbSvc := feedback.NewService(ledger)
	svc := NewService(&fakeGateway{text: "The position is unclear."}, feedback.NewAdjuster(ledger), hasKey)

	content := "Can my landlord evict me without notice in Mumbai?"
	before, err := svc.Verify(ctx, Request{Content: content, Kind: KindQuery})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if before.Confidence != 55 || before.RiskLevel != RiskMedium {
		t.Fatalf("unexpected baseline %d %s", before.Confidence, before.RiskLevel)
	}

	for i := 0; i < 2; i++ {
		if _, err := fbSvc.Submit(ctx, feedback.SubmitInput{
			AnalysisID:  content,
			Rating:      1,
			Accuracy:    "inaccurate",
			Helpfulness: "not_helpful",
		}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	after, err := svc.Verify(ctx, Request{Content: content, Kind: KindQuery})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if after.Confidence != 40 || after.RiskLevel != RiskHigh {
		t.Fatalf("expected adjusted 40/high, got %d %s", after.Confidence, after.RiskLevel)
	}
}

func TestVerifyIgnoresAdjusterFailure(t *testing.T) {
	svc := NewService(&fakeGateway{text: "The position is unclear."}, errAdjuster{}, hasKey)
	got, err := svc.Verify(context.Background(), Request{Content: "x", Kind: KindQuery})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.Confidence != 55 {
		t.Fatalf("expected unadjusted confidence, got %d", got.Confidence)
	}
}
