// Package eventstream defines transport-neutral events emitted after an
// answer is archived, and the Publisher interface that ships them to a
// streaming backend. Publishing happens off the request hot path; a failed
// publish is logged, never surfaced to the caller.
package eventstream

import "time"

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeAnswerRecorded is emitted after an answer record is archived.
	EventTypeAnswerRecorded = "ledgerlens.answer.recorded"
)

// AnswerRecordedEvent is a transport-neutral event payload for an archived
// answer.
type AnswerRecordedEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EmittedAt     time.Time `json:"emitted_at"`

	RecordID    string `json:"record_id"`
	SessionID   string `json:"session_id,omitempty"`
	Task        string `json:"task"`
	Query       string `json:"query"`
	UsedContext bool   `json:"used_context"`
	AnswerBytes int    `json:"answer_bytes"`
}
