package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	DB        Pinger
	Ledger    string
	Providers []string
}

// Report is the readiness payload.
type Report struct {
	OK        bool     `json:"ok"`
	Ledger    string   `json:"ledger"`
	Database  string   `json:"database"`
	Providers []string `json:"providers"`
}

// NewService constructs a new health service. db may be nil when the
// ledger is in memory.
func NewService(db Pinger, ledger string, providers []string) *Service {
	return &Service{DB: db, Ledger: ledger, Providers: providers}
}

// Status returns the liveness payload.
func (s *Service) Status() map[string]bool {
	return map[string]bool{"ok": true}
}

// Ready reports whether the ledger backend is reachable.
func (s *Service) Ready(ctx context.Context) Report {
	report := Report{OK: true, Ledger: s.Ledger, Database: "disabled", Providers: s.Providers}
	if report.Providers == nil {
		report.Providers = []string{}
	}
	if s.DB == nil {
		return report
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		report.OK = false
		report.Database = "unreachable"
		return report
	}
	report.Database = "ok"
	return report
}
