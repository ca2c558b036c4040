package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/google/uuid"

	"legal-backend/internal/shared/storage/object"
	"legal-backend/internal/shared/telemetry"
	"legal-backend/internal/shared/util"
)

// ArchivingLedger copies every appended record to an object store as JSON.
// Archive failures are logged and never fail the append.
type ArchivingLedger struct {
	Ledger
	Store object.ObjectStore
}

func NewArchivingLedger(inner Ledger, store object.ObjectStore) *ArchivingLedger {
	return &ArchivingLedger{Ledger: inner, Store: store}
}

func (l *ArchivingLedger) Append(ctx context.Context, record Record) error {
	if err := l.Ledger.Append(ctx, record); err != nil {
		return err
	}
	if l.Store == nil {
		return nil
	}
	key := ArchiveKey(record)
	data, err := json.Marshal(record)
	if err != nil {
		telemetry.Warn("feedback.archive_failed", map[string]any{
			"analysis_id": record.AnalysisID,
			"error":       err.Error(),
		})
		return nil
	}
	if _, err := l.Store.Put(ctx, key, "application/json", bytes.NewReader(data)); err != nil {
		telemetry.Warn("feedback.archive_failed", map[string]any{
			"analysis_id": record.AnalysisID,
			"key":         key,
			"error":       err.Error(),
		})
		return nil
	}
	telemetry.Info("feedback.archived", map[string]any{
		"analysis_id": record.AnalysisID,
		"key":         key,
	})
	return nil
}

// ArchiveKey is feedback/<sha256(analysisId)>/<timestamp>-<uuid>.json.
func ArchiveKey(record Record) string {
	name := fmt.Sprintf("%s-%s.json", record.Timestamp.UTC().Format("20060102T150405.000Z"), uuid.NewString())
	return path.Join("feedback", util.HashKey(record.AnalysisID), name)
}

var _ Ledger = (*ArchivingLedger)(nil)
