package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abdidvp/testguard/internal/domain"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// Dir is where the history database lives, relative to the project root.
const Dir = ".testguard"

const dbFile = "history.db"

// timeLayout is RFC 3339 with a fixed nine-digit fraction, so detected_at
// sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

const schema = `
CREATE TABLE IF NOT EXISTS detections (
	id          TEXT PRIMARY KEY,
	file        TEXT NOT NULL,
	source      TEXT NOT NULL,
	analysis    TEXT NOT NULL,
	violations  TEXT NOT NULL,
	detected_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_detections_detected_at ON detections(detected_at);
`

// SQLiteHistory implements domain.DetectionHistory on a per-project SQLite file.
type SQLiteHistory struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the history database under projectPath.
func Open(projectPath string) (*SQLiteHistory, error) {
	dir := filepath.Join(projectPath, Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("history: create dir: %w", err)
	}

	db, err := openDB("sqlite", filepath.Join(dir, dbFile))
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: migration: %w", err)
	}

	return &SQLiteHistory{db: db, now: time.Now}, nil
}

// OpenHistory adapts Open to domain.HistoryOpener.
func OpenHistory(projectPath string) (domain.DetectionHistory, error) {
	h, err := Open(projectPath)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Close releases the database handle.
func (h *SQLiteHistory) Close() error { return h.db.Close() }

// Record stores entry. A missing ID or timestamp is filled in.
func (h *SQLiteHistory) Record(entry domain.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.DetectedAt.IsZero() {
		entry.DetectedAt = h.now()
	}
	if entry.Violations == nil {
		entry.Violations = []domain.Violation{}
	}

	violations, err := json.Marshal(entry.Violations)
	if err != nil {
		return fmt.Errorf("history: encode violations: %w", err)
	}

	_, err = h.db.Exec(
		`INSERT INTO detections (id, file, source, analysis, violations, detected_at) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.File, entry.Source, string(entry.Analysis), string(violations),
		entry.DetectedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("history: insert: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A limit of zero or less
// returns every entry.
func (h *SQLiteHistory) Recent(limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := h.db.Query(
		`SELECT id, file, source, analysis, violations, detected_at FROM detections
		 ORDER BY detected_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var (
			e                    domain.HistoryEntry
			analysis, violations string
			detectedAt           string
		)
		if err := rows.Scan(&e.ID, &e.File, &e.Source, &analysis, &violations, &detectedAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		e.Analysis = domain.AnalysisMode(analysis)
		if err := json.Unmarshal([]byte(violations), &e.Violations); err != nil {
			return nil, fmt.Errorf("history: decode violations for %s: %w", e.ID, err)
		}
		if e.DetectedAt, err = time.Parse(time.RFC3339Nano, detectedAt); err != nil {
			return nil, fmt.Errorf("history: decode time for %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
