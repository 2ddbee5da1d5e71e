package commands

import (
	"context"
	"strings"
	"time"

	application "trustvote/contexts/nominations/vote-ledger/application"
	"trustvote/contexts/nominations/vote-ledger/domain/entities"
	domainerrors "trustvote/contexts/nominations/vote-ledger/domain/errors"
	"trustvote/contexts/nominations/vote-ledger/ports"
)

// TransferCommand moves vote credits between two nominees' tallies without
// touching any voter's ballot.
type TransferCommand struct {
	SourceNomineeID string
	DestNomineeID   string
	Amount          int64
	InitiatedBy     string
}

// Transfer atomically debits the source tally and credits the destination
// tally. The guard, both adjustments, and the audit record commit together;
// an underfunded source rolls the whole transaction back and leaves both
// tallies untouched.
func (uc LedgerUseCase) Transfer(ctx context.Context, cmd TransferCommand) (entities.TransferRecord, error) {
	logger := application.ResolveLogger(uc.Logger)
	sourceID := strings.TrimSpace(cmd.SourceNomineeID)
	destID := strings.TrimSpace(cmd.DestNomineeID)
	initiatedBy := strings.TrimSpace(cmd.InitiatedBy)
	if sourceID == "" || destID == "" {
		return entities.TransferRecord{}, domainerrors.ErrInvalidBallotInput
	}
	if sourceID == destID {
		return entities.TransferRecord{}, domainerrors.ErrSameNominee
	}
	if cmd.Amount <= 0 {
		return entities.TransferRecord{}, domainerrors.ErrInvalidTransferAmount
	}

	var record entities.TransferRecord
	err := uc.withRetry(ctx, "transfer", func(ctx context.Context, tx ports.LedgerTx) error {
		now := uc.now()

		// Claim both tallies in a fixed order keyed on nominee ID so two
		// opposing transfers cannot deadlock each other.
		firstID, secondID := sourceID, destID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}
		tallies := make(map[string]int64, 2)
		for _, nomineeID := range []string{firstID, secondID} {
			tally, err := tx.TallyForUpdate(ctx, nomineeID)
			if err != nil {
				return err
			}
			tallies[nomineeID] = tally
		}

		if tallies[sourceID] < cmd.Amount {
			return domainerrors.ErrInsufficientCredits
		}

		if err := tx.AdjustTally(ctx, sourceID, -cmd.Amount); err != nil {
			return err
		}
		if err := tx.AdjustTally(ctx, destID, cmd.Amount); err != nil {
			return err
		}

		transferID, err := uc.newID(ctx)
		if err != nil {
			return err
		}
		record = entities.TransferRecord{
			TransferID:      transferID,
			SourceNomineeID: sourceID,
			DestNomineeID:   destID,
			Amount:          cmd.Amount,
			InitiatedBy:     initiatedBy,
			CreatedAt:       now,
		}
		if err := tx.AppendTransfer(ctx, record); err != nil {
			return err
		}

		eventID, err := uc.newID(ctx)
		if err != nil {
			return err
		}
		envelope, err := newLedgerEnvelope(eventID, "vote.transferred", sourceID, now, map[string]any{
			"transfer_id":       transferID,
			"source_nominee_id": sourceID,
			"dest_nominee_id":   destID,
			"amount":            cmd.Amount,
			"initiated_by":      initiatedBy,
			"occurred_at":       now.Format(time.RFC3339),
		})
		if err != nil {
			return err
		}
		return tx.AppendOutbox(ctx, envelope)
	})
	if err != nil {
		return entities.TransferRecord{}, err
	}

	logger.Info("transfer committed",
		"event", "ledger_transfer_committed",
		"module", "nominations/vote-ledger",
		"layer", "application",
		"transfer_id", record.TransferID,
		"source_nominee_id", sourceID,
		"dest_nominee_id", destID,
		"amount", cmd.Amount,
	)
	return record, nil
}
