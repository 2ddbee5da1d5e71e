package entities

import "time"

// Ballot is a voter's single active nominee choice. A voter has at most one
// ballot at any instant; clearing it removes the row entirely.
type Ballot struct {
	VoterID   string
	NomineeID string
	UpdatedAt time.Time
}

// BallotState is the committed outcome of a cast or retract operation.
// Active is false when the voter currently backs nobody.
type BallotState struct {
	VoterID   string
	NomineeID string
	Active    bool
}

// CastOutcome names which branch of the cast state transition committed.
type CastOutcome string

const (
	CastOutcomeVoted     CastOutcome = "voted"
	CastOutcomeRemoved   CastOutcome = "removed"
	CastOutcomeMoved     CastOutcome = "moved"
	CastOutcomeRetracted CastOutcome = "retracted"
	CastOutcomeNoop      CastOutcome = "noop"
)

// TransferRecord is the append-only audit row for a credit transfer between
// two nominee tallies. Never mutated after insert.
type TransferRecord struct {
	TransferID      string
	SourceNomineeID string
	DestNomineeID   string
	Amount          int64
	InitiatedBy     string
	CreatedAt       time.Time
}
