// Package sqlite provides a SQLite-backed storage driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ledgerlens/ledgerlens/pkg/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS answer_records (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	task TEXT NOT NULL,
	query TEXT NOT NULL,
	context TEXT NOT NULL,
	answer TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_answer_records_session
	ON answer_records (session_id, created_at);
`

// SQLiteDriver implements storage.Driver using SQLite.
type SQLiteDriver struct {
	db *sql.DB
}

// NewSQLiteDriver creates a new SQLite-backed store.
// The dbPath can be a file path or ":memory:" for an in-memory database.
func NewSQLiteDriver(dbPath string) (*SQLiteDriver, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteDriver{db: db}, nil
}

// Save archives a record, assigning an ID and timestamp if unset.
func (d *SQLiteDriver) Save(ctx context.Context, record *storage.Record) error {
	if record == nil {
		return fmt.Errorf("%w: nil record", storage.ErrInvalidRecord)
	}

	id := record.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := d.db.ExecContext(ctx,
		`INSERT INTO answer_records (id, session_id, task, query, context, answer, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, record.SessionID, record.Task, record.Query, record.Context, record.Answer, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// Recent returns up to limit records for a session, newest first.
func (d *SQLiteDriver) Recent(ctx context.Context, sessionID string, limit int) ([]*storage.Record, error) {
	query := `SELECT id, session_id, task, query, context, answer, created_at
		FROM answer_records`
	args := []any{}

	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []*storage.Record
	for rows.Next() {
		var r storage.Record
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Task, &r.Query, &r.Context, &r.Answer, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}

// Close closes the underlying database.
func (d *SQLiteDriver) Close() error {
	return d.db.Close()
}

var _ storage.Driver = (*SQLiteDriver)(nil)
