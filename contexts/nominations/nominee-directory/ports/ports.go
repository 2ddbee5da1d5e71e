package ports

import (
	"context"
	"time"

	"trustvote/contexts/nominations/nominee-directory/domain/entities"
)

// NomineeRepository persists nominee profiles. CreateNominee starts every
// nominee at a zero tally in the shared nominee projection.
type NomineeRepository interface {
	CreateNominee(ctx context.Context, nominee entities.Nominee) error
	GetNominee(ctx context.Context, nomineeID string) (entities.Nominee, error)
	GetNomineeByEmail(ctx context.Context, email string) (entities.Nominee, bool, error)
	ListFeatured(ctx context.Context, limit int) ([]entities.Nominee, error)
	SearchByNamePrefix(ctx context.Context, prefix string, limit int) ([]entities.Nominee, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
