package feedback

import (
	"context"
	"strings"
	"sync"
	"testing"
)

func TestFingerprint(t *testing.T) {
	long := strings.Repeat("A", 60)
	if got := Fingerprint(long); got != strings.Repeat("a", 50) {
		t.Fatalf("unexpected fingerprint %q", got)
	}
	if got := Fingerprint("Short ID"); got != "short id" {
		t.Fatalf("unexpected fingerprint %q", got)
	}
	multi := strings.Repeat("§", 55)
	if got := Fingerprint(multi); len([]rune(got)) != 50 {
		t.Fatalf("expected 50 runes, got %d", len([]rune(got)))
	}
}

func TestMemoryLedgerStatsEmpty(t *testing.T) {
	stats, err := NewMemoryLedger().Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalFeedback != 0 || stats.AverageRating != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
	if stats.AccuracyStats == nil || len(stats.AccuracyStats) != 0 {
		t.Fatalf("expected empty accuracy map, got %v", stats.AccuracyStats)
	}
	if stats.HelpfulnessStats == nil || len(stats.HelpfulnessStats) != 0 {
		t.Fatalf("expected empty helpfulness map, got %v", stats.HelpfulnessStats)
	}
}

func TestMemoryLedgerStatsAggregates(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	for _, r := range []Record{
		record("a1", 5, AccuracyAccurate, HelpfulnessVeryHelpful),
		record("a2", 3, AccuracySomewhatAccurate, HelpfulnessHelpful),
		record("a1", 4, AccuracyAccurate, HelpfulnessHelpful),
	} {
		if err := ledger.Append(ctx, r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	stats, err := ledger.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalFeedback != 3 {
		t.Fatalf("expected 3 records, got %d", stats.TotalFeedback)
	}
	if stats.AverageRating != 4.0 {
		t.Fatalf("expected average 4.0, got %v", stats.AverageRating)
	}
	if stats.AccuracyStats["accurate"] != 2 || stats.AccuracyStats["somewhat_accurate"] != 1 {
		t.Fatalf("unexpected accuracy stats %v", stats.AccuracyStats)
	}
	if _, ok := stats.AccuracyStats["inaccurate"]; ok {
		t.Fatalf("unobserved key should be absent")
	}
	if stats.HelpfulnessStats["helpful"] != 2 || stats.HelpfulnessStats["very_helpful"] != 1 {
		t.Fatalf("unexpected helpfulness stats %v", stats.HelpfulnessStats)
	}
}

func TestComputeStatsRoundsToOneDecimal(t *testing.T) {
	stats := ComputeStats([]Record{
		record("a", 5, AccuracyAccurate, HelpfulnessHelpful),
		record("b", 4, AccuracyAccurate, HelpfulnessHelpful),
		record("c", 4, AccuracyAccurate, HelpfulnessHelpful),
	})
	if stats.AverageRating != 4.3 {
		t.Fatalf("expected 4.3, got %v", stats.AverageRating)
	}
}

func TestMemoryLedgerByFingerprint(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	_ = ledger.Append(ctx, record("Contract Clause", 5, AccuracyAccurate, HelpfulnessHelpful))
	_ = ledger.Append(ctx, record("other", 1, AccuracyInaccurate, HelpfulnessNotHelpful))

	got, err := ledger.ByFingerprint(ctx, "contract clause")
	if err != nil {
		t.Fatalf("ByFingerprint: %v", err)
	}
	if len(got) != 1 || got[0].AnalysisID != "Contract Clause" {
		t.Fatalf("unexpected matches %+v", got)
	}
}

func TestMemoryLedgerConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ledger.Append(ctx, record("same", 4, AccuracyAccurate, HelpfulnessHelpful))
			_, _ = ledger.Stats(ctx)
		}()
	}
	wg.Wait()

	stats, _ := ledger.Stats(ctx)
	if stats.TotalFeedback != 50 {
		t.Fatalf("expected 50 records, got %d", stats.TotalFeedback)
	}
}

func TestMemoryLedgerRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewMemoryLedger().Append(ctx, record("a", 5, AccuracyAccurate, HelpfulnessHelpful)); err == nil {
		t.Fatalf("expected context error")
	}
}
