// Package memory keeps short-term conversational context for follow-up
// questions. Each session owns a bounded buffer of recent question/answer
// exchanges; when the buffer is full the oldest exchange is evicted. Memory
// is rendered into the prompt as plain text, so the generator sees the recent
// conversation verbatim.
//
// Memory is strictly short-term: nothing here persists across process
// restarts, and no summarization or fact extraction is applied. The answer
// archive in pkg/storage is the durable record.
package memory

import (
	"strings"
	"sync"
)

// DefaultCapacity is the default number of exchanges a buffer retains.
const DefaultCapacity = 7

// Exchange is one question/answer turn.
type Exchange struct {
	Query  string
	Answer string
}

// Buffer holds the most recent exchanges of a single session, oldest first.
// A Buffer is safe for concurrent use.
type Buffer struct {
	mu       sync.Mutex
	capacity int
	entries  []Exchange
}

// NewBuffer creates a buffer retaining at most capacity exchanges.
// A non-positive capacity falls back to DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{capacity: capacity}
}

// Append records one completed exchange, evicting the oldest exchange when
// the buffer is at capacity.
func (b *Buffer) Append(query, answer string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = append(b.entries, Exchange{Query: query, Answer: answer})
	if len(b.entries) > b.capacity {
		b.entries = b.entries[len(b.entries)-b.capacity:]
	}
}

// Entries returns a copy of the retained exchanges, oldest first.
func (b *Buffer) Entries() []Exchange {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Exchange, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len reports the number of retained exchanges.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Render formats the retained exchanges for prompt inclusion, oldest first.
// The text is rebuilt from the buffer on every call, so it always reflects
// the current contents. An empty buffer renders as the empty string.
func (b *Buffer) Render() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, e := range b.entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("User: ")
		sb.WriteString(e.Query)
		sb.WriteString("\nAI: ")
		sb.WriteString(e.Answer)
	}
	return sb.String()
}

// Store hands out per-session buffers. Sessions that have never been seen
// get a fresh buffer on first access.
type Store struct {
	mu       sync.Mutex
	capacity int
	buffers  map[string]*Buffer
}

// NewStore creates a store whose buffers retain at most capacity exchanges.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		buffers:  make(map[string]*Buffer),
	}
}

// Session returns the buffer for the given session ID, creating it if needed.
func (s *Store) Session(id string) *Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buffers[id]
	if !ok {
		b = NewBuffer(s.capacity)
		s.buffers[id] = b
	}
	return b
}

// Forget drops the buffer for the given session ID.
func (s *Store) Forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buffers, id)
}
