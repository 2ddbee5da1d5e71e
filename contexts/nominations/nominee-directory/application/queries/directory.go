package queries

import (
	"context"
	"log/slog"
	"strings"

	"trustvote/contexts/nominations/nominee-directory/domain/entities"
	domainerrors "trustvote/contexts/nominations/nominee-directory/domain/errors"
	"trustvote/contexts/nominations/nominee-directory/ports"
)

const (
	featuredLimit    = 3
	searchLimit      = 5
	searchLimitUpper = 25
)

// DirectoryQueryUseCase serves nominee profile reads.
type DirectoryQueryUseCase struct {
	Nominees ports.NomineeRepository
	Logger   *slog.Logger
}

func (uc DirectoryQueryUseCase) Get(ctx context.Context, nomineeID string) (entities.Nominee, error) {
	nomineeID = strings.TrimSpace(nomineeID)
	if nomineeID == "" {
		return entities.Nominee{}, domainerrors.ErrNomineeNotFound
	}
	return uc.Nominees.GetNominee(ctx, nomineeID)
}

// Featured returns the curated spotlight set, capped at three profiles.
func (uc DirectoryQueryUseCase) Featured(ctx context.Context) ([]entities.Nominee, error) {
	return uc.Nominees.ListFeatured(ctx, featuredLimit)
}

// Search matches nominees whose name starts with the given prefix,
// case-insensitively. An empty prefix returns no matches.
func (uc DirectoryQueryUseCase) Search(ctx context.Context, prefix string, limit int) ([]entities.Nominee, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []entities.Nominee{}, nil
	}
	if limit <= 0 {
		limit = searchLimit
	}
	if limit > searchLimitUpper {
		limit = searchLimitUpper
	}
	return uc.Nominees.SearchByNamePrefix(ctx, prefix, limit)
}
