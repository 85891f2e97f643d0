// Package inmemory provides an in-memory storage driver, primarily for
// testing and single-process deployments that do not need durability.
package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerlens/ledgerlens/pkg/storage"
)

// InMemoryDriver implements storage.Driver with a mutex-guarded slice.
type InMemoryDriver struct {
	mu      sync.RWMutex
	records []*storage.Record
}

// NewInMemoryDriver creates an empty in-memory store.
func NewInMemoryDriver() *InMemoryDriver {
	return &InMemoryDriver{}
}

// Save archives a record, assigning an ID and timestamp if unset.
func (d *InMemoryDriver) Save(_ context.Context, record *storage.Record) error {
	if record == nil {
		return fmt.Errorf("%w: nil record", storage.ErrInvalidRecord)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	stored := *record
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	d.records = append(d.records, &stored)
	return nil
}

// Recent returns up to limit records for a session, newest first.
func (d *InMemoryDriver) Recent(_ context.Context, sessionID string, limit int) ([]*storage.Record, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	matched := make([]*storage.Record, 0, len(d.records))
	for _, r := range d.records {
		if sessionID == "" || r.SessionID == sessionID {
			copied := *r
			matched = append(matched, &copied)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

// Close releases resources. In-memory stores have none.
func (d *InMemoryDriver) Close() error {
	return nil
}

var _ storage.Driver = (*InMemoryDriver)(nil)
