package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS downloads (
	id               TEXT PRIMARY KEY,
	meeting_id       TEXT NOT NULL,
	name             TEXT NOT NULL,
	output_path      TEXT NOT NULL,
	size_bytes       INTEGER NOT NULL,
	duration_seconds REAL NOT NULL,
	elapsed_ms       INTEGER NOT NULL,
	exit_code        INTEGER NOT NULL,
	completed_at     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS downloads_completed_at ON downloads (completed_at DESC);
`

// Entry is one finished download.
type Entry struct {
	ID              string
	MeetingID       string
	Name            string
	OutputPath      string
	SizeBytes       int64
	DurationSeconds float64
	Elapsed         time.Duration
	ExitCode        int
	CompletedAt     time.Time
}

// Store keeps the download history in a sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	// sqlite allows one writer; a single connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores e, assigning an ID and completion time when missing.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CompletedAt.IsZero() {
		e.CompletedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO downloads (id, meeting_id, name, output_path, size_bytes, duration_seconds, elapsed_ms, exit_code, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.MeetingID, e.Name, e.OutputPath, e.SizeBytes, e.DurationSeconds,
		e.Elapsed.Milliseconds(), e.ExitCode, e.CompletedAt.UnixMilli(),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to record download: %w", err)
	}
	return e, nil
}

// List returns up to limit entries, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, meeting_id, name, output_path, size_bytes, duration_seconds, elapsed_ms, exit_code, completed_at
		FROM downloads ORDER BY completed_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e           Entry
			elapsedMs   int64
			completedMs int64
		)
		if err := rows.Scan(&e.ID, &e.MeetingID, &e.Name, &e.OutputPath, &e.SizeBytes,
			&e.DurationSeconds, &elapsedMs, &e.ExitCode, &completedMs); err != nil {
			return nil, err
		}
		e.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		e.CompletedAt = time.UnixMilli(completedMs)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
