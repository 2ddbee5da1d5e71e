package commands

import (
	"encoding/json"
	"time"

	"trustvote/contexts/nominations/vote-ledger/ports"
)

func newLedgerEnvelope(
	eventID string,
	eventType string,
	nomineeID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Ledger events are partitioned by nominee so per-nominee consumers see
	// tally changes in commit order.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventType,
		OccurredAt:    occurredAt.UTC(),
		SourceService: "vote-ledger",
		SchemaVersion: 1,
		PartitionKey:  nomineeID,
		Data:          payload,
	}, nil
}
