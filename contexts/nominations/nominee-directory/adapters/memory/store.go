package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"trustvote/contexts/nominations/nominee-directory/domain/entities"
	domainerrors "trustvote/contexts/nominations/nominee-directory/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	nominees map[string]entities.Nominee
}

func NewStore(seed []entities.Nominee) *Store {
	nominees := make(map[string]entities.Nominee, len(seed))
	for _, nominee := range seed {
		nominees[nominee.NomineeID] = nominee
	}
	return &Store{nominees: nominees}
}

func (s *Store) CreateNominee(_ context.Context, nominee entities.Nominee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	nomineeID := strings.TrimSpace(nominee.NomineeID)
	if _, exists := s.nominees[nomineeID]; exists {
		return domainerrors.ErrNomineeExists
	}
	email := strings.ToLower(strings.TrimSpace(nominee.Email))
	for _, existing := range s.nominees {
		if strings.ToLower(existing.Email) == email {
			return domainerrors.ErrNomineeExists
		}
	}
	nominee.NomineeID = nomineeID
	s.nominees[nomineeID] = nominee
	return nil
}

func (s *Store) GetNominee(_ context.Context, nomineeID string) (entities.Nominee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nominee, ok := s.nominees[strings.TrimSpace(nomineeID)]
	if !ok {
		return entities.Nominee{}, domainerrors.ErrNomineeNotFound
	}
	return nominee, nil
}

func (s *Store) GetNomineeByEmail(_ context.Context, email string) (entities.Nominee, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, nominee := range s.nominees {
		if strings.ToLower(nominee.Email) == email {
			return nominee, true, nil
		}
	}
	return entities.Nominee{}, false, nil
}

func (s *Store) ListFeatured(_ context.Context, limit int) ([]entities.Nominee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 3
	}
	items := make([]entities.Nominee, 0)
	for _, nominee := range s.nominees {
		if nominee.Featured {
			items = append(items, nominee)
		}
	}
	sortNomineesByVotes(items)
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) SearchByNamePrefix(_ context.Context, prefix string, limit int) ([]entities.Nominee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix = strings.ToLower(strings.TrimSpace(prefix))
	items := make([]entities.Nominee, 0)
	for _, nominee := range s.nominees {
		if strings.HasPrefix(strings.ToLower(nominee.Name), prefix) {
			items = append(items, nominee)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].NomineeID < items[j].NomineeID
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func sortNomineesByVotes(items []entities.Nominee) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Votes != items[j].Votes {
			return items[i].Votes > items[j].Votes
		}
		return items[i].NomineeID < items[j].NomineeID
	})
}
