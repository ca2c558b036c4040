package feedback

import (
	"context"
	"math"
	"sync"
)

// Ledger is the append-only feedback store. Implementations are safe for
// concurrent use.
type Ledger interface {
	Append(ctx context.Context, record Record) error
	Records(ctx context.Context) ([]Record, error)
	ByFingerprint(ctx context.Context, fingerprint string) ([]Record, error)
	Stats(ctx context.Context) (Stats, error)
}

// MemoryLedger keeps records in process memory, keyed by analysis id.
type MemoryLedger struct {
	mu         sync.RWMutex
	byAnalysis map[string][]Record
	order      []string
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{byAnalysis: make(map[string][]Record)}
}

func (l *MemoryLedger) Append(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.byAnalysis[record.AnalysisID]; !ok {
		l.order = append(l.order, record.AnalysisID)
	}
	l.byAnalysis[record.AnalysisID] = append(l.byAnalysis[record.AnalysisID], record)
	return nil
}

// Records returns a copy of every record grouped by first-seen analysis id.
func (l *MemoryLedger) Records(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Record, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byAnalysis[id]...)
	}
	return out, nil
}

func (l *MemoryLedger) ByFingerprint(ctx context.Context, fingerprint string) ([]Record, error) {
	all, err := l.Records(ctx)
	if err != nil {
		return nil, err
	}
	var out []Record
	for _, r := range all {
		if r.ContentFingerprint == fingerprint {
			out = append(out, r)
		}
	}
	return out, nil
}

func (l *MemoryLedger) Stats(ctx context.Context) (Stats, error) {
	all, err := l.Records(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(all), nil
}

// ComputeStats aggregates records into a Stats snapshot.
func ComputeStats(records []Record) Stats {
	stats := Stats{
		AccuracyStats:    map[string]int{},
		HelpfulnessStats: map[string]int{},
	}
	if len(records) == 0 {
		return stats
	}
	sum := 0
	for _, r := range records {
		sum += r.Rating
		stats.AccuracyStats[string(r.Accuracy)]++
		stats.HelpfulnessStats[string(r.Helpfulness)]++
	}
	stats.TotalFeedback = len(records)
	stats.AverageRating = roundOneDecimal(float64(sum) / float64(len(records)))
	return stats
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

var _ Ledger = (*MemoryLedger)(nil)
