package queries

import (
	"context"
	"log/slog"
	"strings"

	application "trustvote/contexts/nominations/vote-ledger/application"
	"trustvote/contexts/nominations/vote-ledger/domain/entities"
	domainerrors "trustvote/contexts/nominations/vote-ledger/domain/errors"
	"trustvote/contexts/nominations/vote-ledger/ports"
)

const (
	defaultRankPageSize = 10
	maxRankPageSize     = 50

	SortByVotes = "votes"
	SortByName  = "name"
)

// RankQuery is the read-model input for one leaderboard page.
type RankQuery struct {
	SortKey      string
	College      string
	Location     string
	SearchPrefix string
	Cursor       string
	Limit        int
}

// RankPage is one leaderboard page plus the cursor for the next one. An empty
// NextCursor means the last page.
type RankPage struct {
	Entries    []entities.RankEntry
	NextCursor string
}

// RankUseCase serves leaderboard reads outside ledger transactions. Pages are
// internally consistent snapshots; consecutive pages may observe different
// committed states when writes land between requests.
type RankUseCase struct {
	Reader ports.RankReader
	Logger *slog.Logger
}

// Rank returns one page of nominees ordered by the requested sort key.
// Vote-count ordering breaks ties by nominee ID so pagination stays stable.
func (uc RankUseCase) Rank(ctx context.Context, query RankQuery) (RankPage, error) {
	logger := application.ResolveLogger(uc.Logger)

	sortKey := strings.TrimSpace(query.SortKey)
	switch sortKey {
	case "", SortByVotes:
		sortKey = SortByVotes
	case SortByName:
	default:
		logger.Warn("rank query rejected",
			"event", "rank_query_invalid_sort",
			"module", "nominations/vote-ledger",
			"layer", "application",
			"sort", sortKey,
		)
		return RankPage{}, domainerrors.ErrInvalidRankQuery
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultRankPageSize
	}
	if limit > maxRankPageSize {
		limit = maxRankPageSize
	}

	entries, nextCursor, err := uc.Reader.RankNominees(ctx, ports.RankFilter{
		SortKey:      sortKey,
		College:      strings.TrimSpace(query.College),
		Location:     strings.TrimSpace(query.Location),
		SearchPrefix: strings.TrimSpace(query.SearchPrefix),
		Cursor:       strings.TrimSpace(query.Cursor),
		Limit:        limit,
	})
	if err != nil {
		return RankPage{}, err
	}

	logger.Debug("rank page served",
		"event", "rank_page_served",
		"module", "nominations/vote-ledger",
		"layer", "application",
		"sort", sortKey,
		"count", len(entries),
		"has_next", nextCursor != "",
	)
	return RankPage{Entries: entries, NextCursor: nextCursor}, nil
}

// FilterOptions lists the distinct college and location values present in the
// ranking projection, for populating filter controls.
func (uc RankUseCase) FilterOptions(ctx context.Context) (ports.RankFilterOptions, error) {
	return uc.Reader.ListFilterOptions(ctx)
}

// TransfersByNominee returns the audit trail of transfers that touched the
// nominee, newest first.
func (uc RankUseCase) TransfersByNominee(ctx context.Context, nomineeID string) ([]entities.TransferRecord, error) {
	nomineeID = strings.TrimSpace(nomineeID)
	if nomineeID == "" {
		return nil, domainerrors.ErrInvalidBallotInput
	}
	return uc.Reader.ListTransfersByNominee(ctx, nomineeID)
}
