package feedback

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGLedgerAppend(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ledger := &PGLedger{DB: db}
	r := record("analysis_1_abc", 4, AccuracyAccurate, HelpfulnessHelpful)
	r.Comments = "useful"

	mock.ExpectExec("INSERT INTO feedback").
		WithArgs(r.AnalysisID, r.ContentFingerprint, 4, "accurate", "helpful", "useful", r.Timestamp).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := ledger.Append(context.Background(), r); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGLedgerByFingerprint(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ts := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"analysis_id", "fingerprint", "rating", "accuracy", "helpfulness", "comments", "submitted_at"}).
		AddRow("Clause", "clause", 5, "accurate", "very_helpful", "", ts).
		AddRow("clause", "clause", 2, "inaccurate", "not_helpful", "wrong", ts)
	mock.ExpectQuery("SELECT analysis_id, fingerprint").
		WithArgs("clause").
		WillReturnRows(rows)

	got, err := (&PGLedger{DB: db}).ByFingerprint(context.Background(), "clause")
	if err != nil {
		t.Fatalf("ByFingerprint: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[1].Accuracy != AccuracyInaccurate || got[1].Comments != "wrong" {
		t.Fatalf("unexpected record %+v", got[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGLedgerStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(3, 4.0))
	mock.ExpectQuery("SELECT accuracy, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"accuracy", "count"}).
			AddRow("accurate", 2).
			AddRow("somewhat_accurate", 1))
	mock.ExpectQuery("SELECT helpfulness, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"helpfulness", "count"}).
			AddRow("helpful", 3))

	stats, err := (&PGLedger{DB: db}).Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalFeedback != 3 || stats.AverageRating != 4.0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.AccuracyStats["accurate"] != 2 || stats.HelpfulnessStats["helpful"] != 3 {
		t.Fatalf("unexpected distributions %+v", stats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGLedgerStatsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(0, nil))

	stats, err := (&PGLedger{DB: db}).Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalFeedback != 0 || stats.AverageRating != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
	if stats.AccuracyStats == nil || stats.HelpfulnessStats == nil {
		t.Fatalf("expected non-nil maps")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
