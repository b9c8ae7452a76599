package logging

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// #region log-classification
// LogClassification writes an audit entry to the classification_log table.
// Missing EntryID and CreatedAt are filled in.
func LogClassification(db *sql.DB, entry AuditEntry) error {
	if entry.EntryID == "" {
		entry.EntryID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO classification_log (entry_id, run_id, scheme_id, label, confidence, color, sample_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.EntryID,
		nullIfEmpty(entry.RunID),
		entry.SchemeID,
		entry.Label,
		entry.Confidence,
		nullIfEmpty(entry.Color),
		nullIfEmpty(entry.SampleJSON),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log classification: %w", err)
	}
	return nil
}

// #endregion log-classification

// #region list-recent
// ListRecent returns the newest audit entries, most recent first.
func ListRecent(db *sql.DB, limit int) ([]AuditEntry, error) {
	rows, err := db.Query(
		`SELECT entry_id, run_id, scheme_id, label, confidence, color, sample_json, created_at
		 FROM classification_log ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var out []AuditEntry
	for rows.Next() {
		var e AuditEntry
		var runID, color, sampleJSON sql.NullString
		var createdStr string
		if err := rows.Scan(&e.EntryID, &runID, &e.SchemeID, &e.Label, &e.Confidence, &color, &sampleJSON, &createdStr); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		e.RunID = runID.String
		e.Color = color.String
		e.SampleJSON = sampleJSON.String
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, e)
	}
	return out, rows.Err()
}

// #endregion list-recent

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
