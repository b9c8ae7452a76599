package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS schemes (
	scheme_id       TEXT NOT NULL,
	name            TEXT NOT NULL,
	version         TEXT NOT NULL,
	definition_json TEXT NOT NULL,
	loaded_at       TEXT NOT NULL,
	PRIMARY KEY (scheme_id, version)
);

CREATE TABLE IF NOT EXISTS classification_log (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	entry_id     TEXT NOT NULL,
	run_id       TEXT,
	scheme_id    TEXT NOT NULL,
	label        TEXT NOT NULL,
	confidence   REAL NOT NULL,
	color        TEXT,
	sample_json  TEXT,
	created_at   TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct
// Store archives scheme definitions and the classification decision trail
// in SQLite. It sits outside the classification hot path: the engine reads
// only the in-memory registry.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// Open opens a SQLite database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion close

// #region archived-scheme
// ArchivedScheme is one archived scheme definition row.
type ArchivedScheme struct {
	ID         string
	Name       string
	Version    string
	Definition map[string]any
	LoadedAt   time.Time
}

// #endregion archived-scheme

// #region archive
// ArchiveScheme records a scheme definition at publish time. Re-archiving
// the same (id, version) refreshes the stored definition.
func (s *Store) ArchiveScheme(id, name, version string, definition map[string]any) error {
	defJSON, err := json.Marshal(definition)
	if err != nil {
		return fmt.Errorf("marshal definition: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO schemes (scheme_id, name, version, definition_json, loaded_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(scheme_id, version) DO UPDATE SET
		   name = excluded.name,
		   definition_json = excluded.definition_json,
		   loaded_at = excluded.loaded_at`,
		id, name, version, string(defJSON), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("archive scheme %s: %w", id, err)
	}
	return nil
}

// #endregion archive

// #region get-scheme
// GetScheme retrieves the most recently archived definition for a scheme id.
func (s *Store) GetScheme(id string) (ArchivedScheme, error) {
	var rec ArchivedScheme
	var defJSON, loadedStr string

	err := s.db.QueryRow(
		`SELECT scheme_id, name, version, definition_json, loaded_at
		 FROM schemes WHERE scheme_id = ?
		 ORDER BY loaded_at DESC LIMIT 1`, id,
	).Scan(&rec.ID, &rec.Name, &rec.Version, &defJSON, &loadedStr)
	if err != nil {
		return ArchivedScheme{}, fmt.Errorf("get scheme %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(defJSON), &rec.Definition); err != nil {
		return ArchivedScheme{}, fmt.Errorf("unmarshal definition: %w", err)
	}
	rec.LoadedAt, _ = time.Parse(time.RFC3339Nano, loadedStr)
	return rec, nil
}

// #endregion get-scheme

// #region list-schemes
// ListSchemes returns every archived scheme row, newest first.
func (s *Store) ListSchemes() ([]ArchivedScheme, error) {
	rows, err := s.db.Query(
		`SELECT scheme_id, name, version, definition_json, loaded_at
		 FROM schemes ORDER BY loaded_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list schemes: %w", err)
	}
	defer rows.Close()

	var out []ArchivedScheme
	for rows.Next() {
		var rec ArchivedScheme
		var defJSON, loadedStr string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Version, &defJSON, &loadedStr); err != nil {
			return nil, fmt.Errorf("scan scheme row: %w", err)
		}
		if err := json.Unmarshal([]byte(defJSON), &rec.Definition); err != nil {
			return nil, fmt.Errorf("unmarshal definition: %w", err)
		}
		rec.LoadedAt, _ = time.Parse(time.RFC3339Nano, loadedStr)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// #endregion list-schemes
