package migrations

import (
	"database/sql"
	"fmt"
)

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "Add journal lookup indices",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_journal_filename ON upload_journal(filename);
			CREATE INDEX IF NOT EXISTS idx_journal_source ON upload_journal(source);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_journal_filename;
			DROP INDEX IF EXISTS idx_journal_source;
		`,
	},
	{
		Version: 2,
		Name:    "Add request_id index for backend log correlation",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_journal_request_id ON upload_journal(request_id);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_journal_request_id;
		`,
	},
}

// InitSchema creates the tables the journal needs.
// It must run before migrations so every migration finds its table.
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS upload_journal (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		source TEXT NOT NULL,
		filename TEXT NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		media_type TEXT NOT NULL DEFAULT '',
		status INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		request_id TEXT,
		analysis TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_journal_timestamp ON upload_journal(timestamp DESC);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// Run executes all pending migrations on the database
func Run(db *sql.DB) error {
	if err := InitSchema(db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	for _, migration := range AllMigrations {
		if migration.Version <= currentVersion {
			continue
		}

		if _, err := db.Exec(migration.Up); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		_, err = db.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version,
			migration.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// GetCurrentVersion returns the current database schema version
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`
		SELECT COALESCE(MAX(version), 0)
		FROM schema_migrations
	`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}

// Latest returns the highest known migration version
func Latest() int {
	latest := 0
	for _, m := range AllMigrations {
		if m.Version > latest {
			latest = m.Version
		}
	}
	return latest
}
