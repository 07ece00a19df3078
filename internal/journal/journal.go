// Package journal keeps a local sqlite record of every upload attempt.
package journal

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/resumedesk/internal/migrations"
	"github.com/studiowebux/resumedesk/internal/types"
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// ErrNewerSchema is returned when the journal was migrated by a newer resumedesk
var ErrNewerSchema = errors.New("journal schema is newer than this build")

// Store is the sqlite-backed upload journal
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the journal database at dbPath and migrates it
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := migrations.GetCurrentVersion(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read journal schema version: %w", err)
	}
	if version > migrations.Latest() {
		db.Close()
		return nil, fmt.Errorf("%s is at version %d, this build knows %d: %w", dbPath, version, migrations.Latest(), ErrNewerSchema)
	}

	return &Store{db: db}, nil
}

// Record appends one entry. An empty Timestamp is set to now.
func (s *Store) Record(entry types.JournalEntry) (int64, error) {
	var analysisJSON sql.NullString
	if entry.Analysis != nil {
		data, err := json.Marshal(entry.Analysis)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal analysis: %w", err)
		}
		analysisJSON = sql.NullString{String: string(data), Valid: true}
	}

	ts := time.Now().Local()
	if entry.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339, entry.Timestamp); err == nil {
			ts = parsed.Local()
		}
	}

	res, err := s.db.Exec(`
		INSERT INTO upload_journal (
			timestamp, source, filename, size, media_type, status, error, request_id, analysis
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		ts.Format(sqliteTimeLayout),
		entry.Source,
		entry.Filename,
		entry.Size,
		entry.MediaType,
		entry.Status,
		nullString(entry.Error),
		nullString(entry.RequestID),
		analysisJSON,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save journal entry: %w", err)
	}

	return res.LastInsertId()
}

// List returns entries newest first. A limit of 0 or less returns everything.
func (s *Store) List(limit int) ([]types.JournalEntry, error) {
	query := `
		SELECT id, timestamp, source, filename, size, media_type, status,
		       COALESCE(error, ''), COALESCE(request_id, ''), analysis
		FROM upload_journal
		ORDER BY timestamp DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}
	defer rows.Close()

	entries := []types.JournalEntry{}
	for rows.Next() {
		var (
			e            types.JournalEntry
			timestamp    string
			analysisJSON sql.NullString
		)
		if err := rows.Scan(&e.ID, &timestamp, &e.Source, &e.Filename, &e.Size, &e.MediaType,
			&e.Status, &e.Error, &e.RequestID, &analysisJSON); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}

		if parsed, err := time.ParseInLocation(sqliteTimeLayout, timestamp, time.Local); err == nil {
			e.Timestamp = parsed.Format(time.RFC3339)
		} else {
			e.Timestamp = timestamp
		}

		if analysisJSON.Valid {
			var a types.AnalysisResult
			if err := json.Unmarshal([]byte(analysisJSON.String), &a); err == nil {
				e.Analysis = &a
			}
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Count returns the number of journal entries
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM upload_journal").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get journal count: %w", err)
	}
	return count, nil
}

// Clear removes every entry
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM upload_journal"); err != nil {
		return fmt.Errorf("failed to clear journal: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
