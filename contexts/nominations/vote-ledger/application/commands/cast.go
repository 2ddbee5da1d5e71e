package commands

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	application "trustvote/contexts/nominations/vote-ledger/application"
	"trustvote/contexts/nominations/vote-ledger/domain/entities"
	domainerrors "trustvote/contexts/nominations/vote-ledger/domain/errors"
	"trustvote/contexts/nominations/vote-ledger/ports"
)

// CastCommand is the write-model input for casting (or toggling off) a vote.
type CastCommand struct {
	VoterID   string
	NomineeID string
}

// CastResult returns the committed ballot state plus the branch of the state
// transition that was taken, which the transport layer maps to API semantics.
type CastResult struct {
	State   entities.BallotState
	Outcome entities.CastOutcome
}

// RetractCommand clears a voter's ballot. Retracting with no active ballot
// is a successful no-op, not an error.
type RetractCommand struct {
	VoterID string
}

// LedgerUseCase orchestrates ballot and transfer commands. Every operation
// runs as one atomic transaction against the ledger store; transactions that
// lose a write-write race are retried with jittered backoff before
// ErrUnavailable is surfaced. State is re-read fresh on every attempt, so
// retries are safe by construction.
type LedgerUseCase struct {
	Ledger      ports.LedgerStore
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	MaxAttempts int
	RetryDelay  time.Duration
	Logger      *slog.Logger
}

// Cast sets, moves, or toggles off the voter's ballot. The transition is a
// three-way case split on live reads inside the transaction:
//
//	no ballot         -> +1 target, set ballot
//	ballot == target  -> -1 target, clear ballot ("Remove Vote")
//	ballot == other   -> -1 other, +1 target, set ballot
func (uc LedgerUseCase) Cast(ctx context.Context, cmd CastCommand) (CastResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	voterID := strings.TrimSpace(cmd.VoterID)
	nomineeID := strings.TrimSpace(cmd.NomineeID)
	if voterID == "" || nomineeID == "" {
		logger.Warn("cast validation failed",
			"event", "ledger_cast_validation_failed",
			"module", "nominations/vote-ledger",
			"layer", "application",
			"voter_id", voterID,
			"nominee_id", nomineeID,
		)
		return CastResult{}, domainerrors.ErrInvalidBallotInput
	}

	var result CastResult
	err := uc.withRetry(ctx, "cast", func(ctx context.Context, tx ports.LedgerTx) error {
		now := uc.now()
		current, hasBallot, err := tx.GetBallot(ctx, voterID)
		if err != nil {
			return err
		}
		if _, err := tx.TallyForUpdate(ctx, nomineeID); err != nil {
			return err
		}

		switch {
		case !hasBallot:
			// No ballot row exists to lock, so a concurrent first vote by
			// the same voter is only caught here: the insert fails with
			// ErrBallotVersionMismatch and the retry re-reads the ballot.
			if err := tx.InsertBallot(ctx, voterID, nomineeID); err != nil {
				return err
			}
			if err := tx.AdjustTally(ctx, nomineeID, +1); err != nil {
				return err
			}
			result = CastResult{
				State:   entities.BallotState{VoterID: voterID, NomineeID: nomineeID, Active: true},
				Outcome: entities.CastOutcomeVoted,
			}
			return uc.appendBallotEvent(ctx, tx, "vote.cast", voterID, nomineeID, "", now)

		case current == nomineeID:
			// Toggle semantics: casting for the nominee already backed
			// retracts instead of double counting.
			if err := tx.AdjustTally(ctx, nomineeID, -1); err != nil {
				return err
			}
			if err := tx.ClearBallot(ctx, voterID); err != nil {
				return err
			}
			result = CastResult{
				State:   entities.BallotState{VoterID: voterID, Active: false},
				Outcome: entities.CastOutcomeRemoved,
			}
			return uc.appendBallotEvent(ctx, tx, "vote.retracted", voterID, nomineeID, "", now)

		default:
			if _, err := tx.TallyForUpdate(ctx, current); err != nil {
				return err
			}
			if err := tx.AdjustTally(ctx, current, -1); err != nil {
				return err
			}
			if err := tx.AdjustTally(ctx, nomineeID, +1); err != nil {
				return err
			}
			if err := tx.SetBallot(ctx, voterID, nomineeID); err != nil {
				return err
			}
			result = CastResult{
				State:   entities.BallotState{VoterID: voterID, NomineeID: nomineeID, Active: true},
				Outcome: entities.CastOutcomeMoved,
			}
			return uc.appendBallotEvent(ctx, tx, "vote.moved", voterID, nomineeID, current, now)
		}
	})
	if err != nil {
		return CastResult{}, err
	}

	logger.Info("cast committed",
		"event", "ledger_cast_committed",
		"module", "nominations/vote-ledger",
		"layer", "application",
		"voter_id", voterID,
		"nominee_id", nomineeID,
		"outcome", string(result.Outcome),
	)
	return result, nil
}

// Retract clears the voter's ballot and decrements the backed nominee's
// tally. A voter with no active ballot retracts successfully with no effect.
func (uc LedgerUseCase) Retract(ctx context.Context, cmd RetractCommand) (CastResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	voterID := strings.TrimSpace(cmd.VoterID)
	if voterID == "" {
		return CastResult{}, domainerrors.ErrInvalidBallotInput
	}

	var result CastResult
	err := uc.withRetry(ctx, "retract", func(ctx context.Context, tx ports.LedgerTx) error {
		now := uc.now()
		current, hasBallot, err := tx.GetBallot(ctx, voterID)
		if err != nil {
			return err
		}
		if !hasBallot {
			result = CastResult{
				State:   entities.BallotState{VoterID: voterID, Active: false},
				Outcome: entities.CastOutcomeNoop,
			}
			return nil
		}
		if _, err := tx.TallyForUpdate(ctx, current); err != nil {
			return err
		}
		if err := tx.AdjustTally(ctx, current, -1); err != nil {
			return err
		}
		if err := tx.ClearBallot(ctx, voterID); err != nil {
			return err
		}
		result = CastResult{
			State:   entities.BallotState{VoterID: voterID, Active: false},
			Outcome: entities.CastOutcomeRetracted,
		}
		return uc.appendBallotEvent(ctx, tx, "vote.retracted", voterID, current, "", now)
	})
	if err != nil {
		return CastResult{}, err
	}

	logger.Info("retract committed",
		"event", "ledger_retract_committed",
		"module", "nominations/vote-ledger",
		"layer", "application",
		"voter_id", voterID,
		"outcome", string(result.Outcome),
	)
	return result, nil
}

func (uc LedgerUseCase) appendBallotEvent(
	ctx context.Context,
	tx ports.LedgerTx,
	eventType string,
	voterID string,
	nomineeID string,
	previousNomineeID string,
	occurredAt time.Time,
) error {
	eventID, err := uc.newID(ctx)
	if err != nil {
		return err
	}
	data := map[string]any{
		"voter_id":    voterID,
		"nominee_id":  nomineeID,
		"occurred_at": occurredAt.Format(time.RFC3339),
	}
	if previousNomineeID != "" {
		data["previous_nominee_id"] = previousNomineeID
	}
	envelope, err := newLedgerEnvelope(eventID, eventType, nomineeID, occurredAt, data)
	if err != nil {
		return err
	}
	return tx.AppendOutbox(ctx, envelope)
}

// withRetry runs op as a ledger transaction, retrying the whole closure on
// ErrConflict or ErrBallotVersionMismatch up to the attempt budget. Nothing
// read in a failed attempt is reused: each retry re-enters the closure
// against fresh committed state.
func (uc LedgerUseCase) withRetry(
	ctx context.Context,
	op string,
	fn func(ctx context.Context, tx ports.LedgerTx) error,
) error {
	logger := application.ResolveLogger(uc.Logger)
	attempts := uc.MaxAttempts
	if attempts <= 0 {
		attempts = 4
	}
	baseDelay := uc.RetryDelay
	if baseDelay <= 0 {
		baseDelay = 25 * time.Millisecond
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := jitteredBackoff(baseDelay, attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		err := uc.Ledger.Transact(ctx, fn)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domainerrors.ErrConflict) &&
			!errors.Is(err, domainerrors.ErrBallotVersionMismatch) {
			return err
		}
		lastErr = err
		logger.Warn("ledger transaction conflicted; retrying",
			"event", "ledger_tx_conflict",
			"module", "nominations/vote-ledger",
			"layer", "application",
			"operation", op,
			"attempt", attempt+1,
			"max_attempts", attempts,
		)
	}

	logger.Error("ledger retry budget exhausted",
		"event", "ledger_retry_exhausted",
		"module", "nominations/vote-ledger",
		"layer", "application",
		"operation", op,
		"attempts", attempts,
		"error", lastErr.Error(),
	)
	return domainerrors.ErrUnavailable
}

func jitteredBackoff(base time.Duration, attempt int) time.Duration {
	ceiling := base << uint(attempt-1)
	if ceiling <= 0 {
		ceiling = base
	}
	return ceiling/2 + time.Duration(rand.Int63n(int64(ceiling)/2+1))
}

func (uc LedgerUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (uc LedgerUseCase) newID(ctx context.Context) (string, error) {
	if uc.IDGen == nil {
		return "", domainerrors.ErrUnavailable
	}
	return uc.IDGen.NewID(ctx)
}
