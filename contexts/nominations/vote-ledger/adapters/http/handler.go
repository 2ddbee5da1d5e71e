package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"trustvote/contexts/nominations/vote-ledger/application/commands"
	"trustvote/contexts/nominations/vote-ledger/application/queries"
	httptransport "trustvote/contexts/nominations/vote-ledger/transport/http"
)

type Handler struct {
	Ledger commands.LedgerUseCase
	Ranks  queries.RankUseCase
	Logger *slog.Logger
}

// @Summary Cast or toggle a vote
// @Description Casts the caller's single vote for a nominee. Voting again for the same nominee removes the vote; voting for a different nominee moves it.
// @Tags vote-ledger
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Voter id"
// @Param nominee_id path string true "Nominee id"
// @Success 200 {object} httptransport.BallotResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 503 {object} httptransport.ErrorResponse
// @Router /v1/ballots/{nominee_id} [post]
func (h Handler) CastVoteHandler(
	ctx context.Context,
	voterID string,
	req httptransport.CastVoteRequest,
) (httptransport.BallotResponse, error) {
	result, err := h.Ledger.Cast(ctx, commands.CastCommand{
		VoterID:   voterID,
		NomineeID: req.NomineeID,
	})
	if err != nil {
		return httptransport.BallotResponse{}, err
	}
	return httptransport.BallotResponse{
		VoterID:   result.State.VoterID,
		NomineeID: result.State.NomineeID,
		Active:    result.State.Active,
		Outcome:   string(result.Outcome),
	}, nil
}

// @Summary Retract the caller's vote
// @Description Clears the caller's ballot. Retracting with no active ballot succeeds with no effect.
// @Tags vote-ledger
// @Produce json
// @Param X-User-Id header string true "Voter id"
// @Success 200 {object} httptransport.BallotResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 503 {object} httptransport.ErrorResponse
// @Router /v1/ballots/retract [post]
func (h Handler) RetractVoteHandler(ctx context.Context, voterID string) (httptransport.BallotResponse, error) {
	result, err := h.Ledger.Retract(ctx, commands.RetractCommand{VoterID: voterID})
	if err != nil {
		return httptransport.BallotResponse{}, err
	}
	return httptransport.BallotResponse{
		VoterID: result.State.VoterID,
		Active:  result.State.Active,
		Outcome: string(result.Outcome),
	}, nil
}

// @Summary Transfer vote credits between nominees
// @Description Atomically debits the source tally and credits the destination tally, with an audit record.
// @Tags vote-ledger
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Initiator id"
// @Param request body httptransport.TransferRequest true "Transfer"
// @Success 200 {object} httptransport.TransferResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 503 {object} httptransport.ErrorResponse
// @Router /v1/transfers [post]
func (h Handler) TransferHandler(
	ctx context.Context,
	initiatedBy string,
	req httptransport.TransferRequest,
) (httptransport.TransferResponse, error) {
	record, err := h.Ledger.Transfer(ctx, commands.TransferCommand{
		SourceNomineeID: req.SourceNomineeID,
		DestNomineeID:   req.DestNomineeID,
		Amount:          req.Amount,
		InitiatedBy:     initiatedBy,
	})
	if err != nil {
		return httptransport.TransferResponse{}, err
	}
	return transferToResponse(record.TransferID, record.SourceNomineeID, record.DestNomineeID,
		record.Amount, record.InitiatedBy, record.CreatedAt), nil
}

// @Summary Leaderboard page
// @Description Returns one page of nominees ordered by votes or name, with filters, prefix search, and cursor pagination.
// @Tags vote-ledger
// @Produce json
// @Param sort query string false "Sort key: votes,name"
// @Param college query string false "College filter"
// @Param location query string false "Location filter"
// @Param search query string false "Name prefix"
// @Param cursor query string false "Cursor token"
// @Param limit query int false "Page size (max 50)"
// @Success 200 {object} httptransport.RankResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/leaderboard [get]
func (h Handler) RankHandler(ctx context.Context, query queries.RankQuery) (httptransport.RankResponse, error) {
	page, err := h.Ranks.Rank(ctx, query)
	if err != nil {
		return httptransport.RankResponse{}, err
	}
	items := make([]httptransport.RankItem, 0, len(page.Entries))
	for _, entry := range page.Entries {
		items = append(items, httptransport.RankItem{
			NomineeID:   entry.NomineeID,
			Name:        entry.Name,
			CollegeName: entry.CollegeName,
			Location:    entry.Location,
			PhotoURL:    entry.PhotoURL,
			Votes:       entry.Votes,
		})
	}
	return httptransport.RankResponse{
		Items:      items,
		NextCursor: page.NextCursor,
	}, nil
}

// @Summary Leaderboard filter options
// @Description Returns the distinct college and location values present in the directory.
// @Tags vote-ledger
// @Produce json
// @Success 200 {object} httptransport.FilterOptionsResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/leaderboard/filters [get]
func (h Handler) FilterOptionsHandler(ctx context.Context) (httptransport.FilterOptionsResponse, error) {
	options, err := h.Ranks.FilterOptions(ctx)
	if err != nil {
		return httptransport.FilterOptionsResponse{}, err
	}
	return httptransport.FilterOptionsResponse{
		Colleges:  options.Colleges,
		Locations: options.Locations,
	}, nil
}

// @Summary Transfer audit trail for a nominee
// @Description Lists transfers that debited or credited the nominee, newest first.
// @Tags vote-ledger
// @Produce json
// @Param nominee_id path string true "Nominee id"
// @Success 200 {object} httptransport.TransferListResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/nominees/{nominee_id}/transfers [get]
func (h Handler) NomineeTransfersHandler(ctx context.Context, nomineeID string) (httptransport.TransferListResponse, error) {
	records, err := h.Ranks.TransfersByNominee(ctx, nomineeID)
	if err != nil {
		return httptransport.TransferListResponse{}, err
	}
	items := make([]httptransport.TransferResponse, 0, len(records))
	for _, record := range records {
		items = append(items, transferToResponse(record.TransferID, record.SourceNomineeID,
			record.DestNomineeID, record.Amount, record.InitiatedBy, record.CreatedAt))
	}
	return httptransport.TransferListResponse{Items: items}, nil
}

func transferToResponse(
	transferID string,
	sourceID string,
	destID string,
	amount int64,
	initiatedBy string,
	createdAt time.Time,
) httptransport.TransferResponse {
	return httptransport.TransferResponse{
		TransferID:      transferID,
		SourceNomineeID: sourceID,
		DestNomineeID:   destID,
		Amount:          amount,
		InitiatedBy:     initiatedBy,
		CreatedAt:       createdAt.UTC().Format(time.RFC3339),
	}
}
