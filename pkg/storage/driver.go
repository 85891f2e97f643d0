// Package storage persists answered requests. Every completed QA or
// summarization turn is archived as a Record so sessions can be audited
// after the fact. Persistence happens off the request hot path; a failed
// save never fails the response that was already produced.
package storage

import (
	"context"
	"time"
)

// Record is one archived request/answer pair.
type Record struct {
	// ID uniquely identifies the record.
	ID string

	// SessionID groups records belonging to one conversation.
	SessionID string

	// Task is the request kind ("qa" or "summarize").
	Task string

	// Query is the user question, or the variant's retrieval query for
	// summaries.
	Query string

	// Context is the assembled document context the answer was grounded in.
	Context string

	// Answer is the generated response.
	Answer string

	// CreatedAt is when the record was saved.
	CreatedAt time.Time
}

// Driver handles persistence of answer records.
type Driver interface {
	// Save archives a record. Records are immutable once saved.
	Save(ctx context.Context, record *Record) error

	// Recent returns up to limit records for a session, newest first.
	// An empty sessionID returns records across all sessions.
	Recent(ctx context.Context, sessionID string, limit int) ([]*Record, error)

	// Close closes the store and releases any resources.
	Close() error
}
