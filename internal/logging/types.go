package logging

import "time"

// #region audit-entry
// AuditEntry is a single row in the classification_log table: one
// classification decision with the sample that produced it.
type AuditEntry struct {
	EntryID    string
	RunID      string
	SchemeID   string
	Label      string
	Confidence float64
	Color      string
	SampleJSON string
	CreatedAt  time.Time
}

// #endregion audit-entry
