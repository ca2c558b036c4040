package feedback

import "time"

func record(analysisID string, rating int, accuracy Accuracy, helpfulness Helpfulness) Record {
	return Record{
		AnalysisID:         analysisID,
		Rating:             rating,
		Accuracy:           accuracy,
		Helpfulness:        helpfulness,
		Timestamp:          time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
		ContentFingerprint: Fingerprint(analysisID),
	}
}
