package events

import "time"

// Envelope is the canonical event shape carried through outboxes and the
// message bus. Producers partition by entity so per-entity consumers observe
// changes in commit order.
type Envelope struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	OccurredAt    time.Time `json:"occurred_at"`
	SourceService string    `json:"source_service"`
	SchemaVersion int       `json:"schema_version"`
	PartitionKey  string    `json:"partition_key"`
	Data          []byte    `json:"data"`
}
