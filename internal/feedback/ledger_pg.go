package feedback

import (
	"context"
	"database/sql"
	"math"
)

// PGLedger stores feedback in the Postgres feedback table.
type PGLedger struct {
	DB *sql.DB
}

func (l *PGLedger) Append(ctx context.Context, record Record) error {
	const query = `
INSERT INTO feedback (analysis_id, fingerprint, rating, accuracy, helpfulness, comments, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := l.DB.ExecContext(ctx, query,
		record.AnalysisID,
		record.ContentFingerprint,
		record.Rating,
		string(record.Accuracy),
		string(record.Helpfulness),
		record.Comments,
		record.Timestamp.UTC(),
	)
	return err
}

func (l *PGLedger) Records(ctx context.Context) ([]Record, error) {
	const query = `
SELECT analysis_id, fingerprint, rating, accuracy, helpfulness, comments, submitted_at
FROM feedback
ORDER BY id`
	return l.query(ctx, query)
}

func (l *PGLedger) ByFingerprint(ctx context.Context, fingerprint string) ([]Record, error) {
	const query = `
SELECT analysis_id, fingerprint, rating, accuracy, helpfulness, comments, submitted_at
FROM feedback
WHERE fingerprint = $1
ORDER BY id`
	return l.query(ctx, query, fingerprint)
}

// Stats aggregates in SQL so large ledgers are not loaded into memory.
func (l *PGLedger) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{
		AccuracyStats:    map[string]int{},
		HelpfulnessStats: map[string]int{},
	}

	var total int
	var avg sql.NullFloat64
	if err := l.DB.QueryRowContext(ctx, `SELECT COUNT(*), AVG(rating)::float8 FROM feedback`).Scan(&total, &avg); err != nil {
		return Stats{}, err
	}
	if total == 0 {
		return stats, nil
	}
	stats.TotalFeedback = total
	if avg.Valid {
		stats.AverageRating = math.Round(avg.Float64*10) / 10
	}

	if err := l.countBy(ctx, `SELECT accuracy, COUNT(*) FROM feedback GROUP BY accuracy`, stats.AccuracyStats); err != nil {
		return Stats{}, err
	}
	if err := l.countBy(ctx, `SELECT helpfulness, COUNT(*) FROM feedback GROUP BY helpfulness`, stats.HelpfulnessStats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func (l *PGLedger) countBy(ctx context.Context, query string, into map[string]int) error {
	rows, err := l.DB.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		into[key] = count
	}
	return rows.Err()
}

func (l *PGLedger) query(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var accuracy, helpfulness string
		if err := rows.Scan(&r.AnalysisID, &r.ContentFingerprint, &r.Rating, &accuracy, &helpfulness, &r.Comments, &r.Timestamp); err != nil {
			return nil, err
		}
		r.Accuracy = Accuracy(accuracy)
		r.Helpfulness = Helpfulness(helpfulness)
		out = append(out, r)
	}
	return out, rows.Err()
}

var _ Ledger = (*PGLedger)(nil)
