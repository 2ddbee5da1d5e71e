package ports

import (
	"context"
	"time"

	"trustvote/contexts/nominations/vote-ledger/domain/entities"
	"trustvote/internal/shared/events"
)

// LedgerTx is the operation set available inside one atomic ledger
// transaction. Every read inside a transaction observes committed state and
// holds its claim (row lock or staged version) until commit or rollback.
type LedgerTx interface {
	// GetBallot returns the voter's current nominee choice, if any.
	GetBallot(ctx context.Context, voterID string) (string, bool, error)
	// SetBallot points the voter's ballot at nomineeID, creating the row if
	// the voter has never voted.
	SetBallot(ctx context.Context, voterID string, nomineeID string) error
	// InsertBallot creates the voter's ballot row only if none exists. An
	// absent row cannot be claimed by GetBallot, so the first-vote path must
	// use this compare-and-swap insert: if another transaction created the
	// row since it was read, InsertBallot fails with
	// ErrBallotVersionMismatch and the caller re-runs against fresh state.
	InsertBallot(ctx context.Context, voterID string, nomineeID string) error
	// ClearBallot removes the voter's ballot. No-op if absent.
	ClearBallot(ctx context.Context, voterID string) error
	// TallyForUpdate reads a nominee's tally and claims it for the rest of
	// the transaction. Returns ErrNomineeNotFound for unknown nominees.
	TallyForUpdate(ctx context.Context, nomineeID string) (int64, error)
	// AdjustTally applies a relative delta to a claimed tally.
	AdjustTally(ctx context.Context, nomineeID string, delta int64) error
	// AppendTransfer records an audit row for a credit transfer.
	AppendTransfer(ctx context.Context, record entities.TransferRecord) error
	// AppendOutbox stages an event for the relay worker in the same
	// transaction as the state change it describes.
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

// LedgerStore runs fn inside a commit-or-rollback transaction. A nil return
// from fn commits; any error rolls everything back and is returned as-is.
// Write-write races between concurrent transactions surface as ErrConflict.
type LedgerStore interface {
	Transact(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}

// RankFilter narrows and pages the ranking read path.
type RankFilter struct {
	SortKey      string
	College      string
	Location     string
	SearchPrefix string
	Cursor       string
	Limit        int
}

// RankFilterOptions holds the distinct values used to populate leaderboard
// filter dropdowns. Produced by a full scan, never on the hot rank path.
type RankFilterOptions struct {
	Colleges  []string
	Locations []string
}

// RankReader is the ranking view's read-only projection over the tally store
// joined with directory profile attributes. Reads never participate in
// ledger transactions and never block writers.
type RankReader interface {
	RankNominees(ctx context.Context, filter RankFilter) ([]entities.RankEntry, string, error)
	ListFilterOptions(ctx context.Context) (RankFilterOptions, error)
	ListTransfersByNominee(ctx context.Context, nomineeID string) ([]entities.TransferRecord, error)
}

// EventEnvelope is the wire shape for ledger events carried through the
// outbox to the message bus. It is the repository-wide canonical envelope.
type EventEnvelope = events.Envelope

// OutboxMessage is a pending outbox row as seen by the relay worker.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
