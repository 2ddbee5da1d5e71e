package memory

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"trustvote/contexts/nominations/vote-ledger/domain/entities"
	domainerrors "trustvote/contexts/nominations/vote-ledger/domain/errors"
	"trustvote/contexts/nominations/vote-ledger/ports"

	"github.com/google/uuid"
)

type nomineeRow struct {
	nomineeID   string
	name        string
	collegeName string
	location    string
	photoURL    string
	votes       int64
}

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the in-memory ledger used by tests and local runs. Transact holds
// the store lock for the whole closure, so committed transactions serialize
// exactly like row-locked database transactions.
type Store struct {
	mu sync.RWMutex

	nominees  map[string]nomineeRow
	ballots   map[string]string
	transfers []entities.TransferRecord
	outbox    map[string]outboxRecord
}

func NewStore() *Store {
	return &Store{
		nominees: make(map[string]nomineeRow),
		ballots:  make(map[string]string),
		outbox:   make(map[string]outboxRecord),
	}
}

// SetNominee seeds or overwrites a nominee projection row, including its
// current tally.
func (s *Store) SetNominee(entry entities.RankEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nomineeID := strings.TrimSpace(entry.NomineeID)
	s.nominees[nomineeID] = nomineeRow{
		nomineeID:   nomineeID,
		name:        strings.TrimSpace(entry.Name),
		collegeName: strings.TrimSpace(entry.CollegeName),
		location:    strings.TrimSpace(entry.Location),
		photoURL:    strings.TrimSpace(entry.PhotoURL),
		votes:       entry.Votes,
	}
}

// ledgerTx stages writes against a snapshot of committed state. Nothing
// touches the live maps until the closure returns nil.
type ledgerTx struct {
	store *Store

	stagedBallots map[string]*string
	stagedTallies map[string]int64
	transfers     []entities.TransferRecord
	outbox        []ports.EventEnvelope
}

func (s *Store) Transact(ctx context.Context, fn func(ctx context.Context, tx ports.LedgerTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &ledgerTx{
		store:         s,
		stagedBallots: make(map[string]*string),
		stagedTallies: make(map[string]int64),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	for voterID, nomineeID := range tx.stagedBallots {
		if nomineeID == nil {
			delete(s.ballots, voterID)
			continue
		}
		s.ballots[voterID] = *nomineeID
	}
	for nomineeID, votes := range tx.stagedTallies {
		row := s.nominees[nomineeID]
		row.votes = votes
		s.nominees[nomineeID] = row
	}
	s.transfers = append(s.transfers, tx.transfers...)
	for _, envelope := range tx.outbox {
		if err := s.appendOutboxLocked(envelope); err != nil {
			return err
		}
	}
	return nil
}

func (tx *ledgerTx) GetBallot(_ context.Context, voterID string) (string, bool, error) {
	voterID = strings.TrimSpace(voterID)
	if staged, ok := tx.stagedBallots[voterID]; ok {
		if staged == nil {
			return "", false, nil
		}
		return *staged, true, nil
	}
	nomineeID, ok := tx.store.ballots[voterID]
	return nomineeID, ok, nil
}

func (tx *ledgerTx) SetBallot(_ context.Context, voterID string, nomineeID string) error {
	nomineeID = strings.TrimSpace(nomineeID)
	tx.stagedBallots[strings.TrimSpace(voterID)] = &nomineeID
	return nil
}

func (tx *ledgerTx) InsertBallot(ctx context.Context, voterID string, nomineeID string) error {
	voterID = strings.TrimSpace(voterID)
	if _, exists, err := tx.GetBallot(ctx, voterID); err != nil {
		return err
	} else if exists {
		return domainerrors.ErrBallotVersionMismatch
	}
	nomineeID = strings.TrimSpace(nomineeID)
	tx.stagedBallots[voterID] = &nomineeID
	return nil
}

func (tx *ledgerTx) ClearBallot(_ context.Context, voterID string) error {
	tx.stagedBallots[strings.TrimSpace(voterID)] = nil
	return nil
}

func (tx *ledgerTx) TallyForUpdate(_ context.Context, nomineeID string) (int64, error) {
	nomineeID = strings.TrimSpace(nomineeID)
	if votes, ok := tx.stagedTallies[nomineeID]; ok {
		return votes, nil
	}
	row, ok := tx.store.nominees[nomineeID]
	if !ok {
		return 0, domainerrors.ErrNomineeNotFound
	}
	return row.votes, nil
}

func (tx *ledgerTx) AdjustTally(ctx context.Context, nomineeID string, delta int64) error {
	current, err := tx.TallyForUpdate(ctx, nomineeID)
	if err != nil {
		return err
	}
	next := current + delta
	if next < 0 {
		return domainerrors.ErrNegativeTally
	}
	tx.stagedTallies[strings.TrimSpace(nomineeID)] = next
	return nil
}

func (tx *ledgerTx) AppendTransfer(_ context.Context, record entities.TransferRecord) error {
	tx.transfers = append(tx.transfers, record)
	return nil
}

func (tx *ledgerTx) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	tx.outbox = append(tx.outbox, envelope)
	return nil
}

func (s *Store) appendOutboxLocked(envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	createdAt := envelope.OccurredAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	s.outbox[outboxID] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    strings.TrimSpace(envelope.EventType),
			PartitionKey: strings.TrimSpace(envelope.PartitionKey),
			Payload:      payload,
			CreatedAt:    createdAt,
		},
	}
	return nil
}

func (s *Store) RankNominees(_ context.Context, filter ports.RankFilter) ([]entities.RankEntry, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := strings.ToLower(strings.TrimSpace(filter.SearchPrefix))
	items := make([]entities.RankEntry, 0, len(s.nominees))
	for _, row := range s.nominees {
		if filter.College != "" && !strings.EqualFold(row.collegeName, filter.College) {
			continue
		}
		if filter.Location != "" && !strings.EqualFold(row.location, filter.Location) {
			continue
		}
		if prefix != "" && !strings.HasPrefix(strings.ToLower(row.name), prefix) {
			continue
		}
		items = append(items, entities.RankEntry{
			NomineeID:   row.nomineeID,
			Name:        row.name,
			CollegeName: row.collegeName,
			Location:    row.location,
			PhotoURL:    row.photoURL,
			Votes:       row.votes,
		})
	}

	switch filter.SortKey {
	case "name":
		sort.Slice(items, func(i, j int) bool {
			if items[i].Name != items[j].Name {
				return items[i].Name < items[j].Name
			}
			return items[i].NomineeID < items[j].NomineeID
		})
	default:
		sort.Slice(items, func(i, j int) bool {
			if items[i].Votes != items[j].Votes {
				return items[i].Votes > items[j].Votes
			}
			return items[i].NomineeID < items[j].NomineeID
		})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	start := decodeCursor(filter.Cursor)
	if start < 0 || start > len(items) {
		start = 0
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	next := ""
	if end < len(items) {
		next = encodeCursor(end)
	}
	return append([]entities.RankEntry(nil), items[start:end]...), next, nil
}

func (s *Store) ListFilterOptions(_ context.Context) (ports.RankFilterOptions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	collegeSet := make(map[string]struct{})
	locationSet := make(map[string]struct{})
	for _, row := range s.nominees {
		if row.collegeName != "" {
			collegeSet[row.collegeName] = struct{}{}
		}
		if row.location != "" {
			locationSet[row.location] = struct{}{}
		}
	}
	options := ports.RankFilterOptions{
		Colleges:  make([]string, 0, len(collegeSet)),
		Locations: make([]string, 0, len(locationSet)),
	}
	for college := range collegeSet {
		options.Colleges = append(options.Colleges, college)
	}
	for location := range locationSet {
		options.Locations = append(options.Locations, location)
	}
	sort.Strings(options.Colleges)
	sort.Strings(options.Locations)
	return options, nil
}

func (s *Store) ListTransfersByNominee(_ context.Context, nomineeID string) ([]entities.TransferRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nomineeID = strings.TrimSpace(nomineeID)
	items := make([]entities.TransferRecord, 0)
	for _, record := range s.transfers {
		if record.SourceNomineeID == nomineeID || record.DestNomineeID == nomineeID {
			items = append(items, record)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return domainerrors.ErrConflict
	}
	row.published = true
	s.outbox[strings.TrimSpace(outboxID)] = row
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func decodeCursor(cursor string) int {
	if strings.TrimSpace(cursor) == "" {
		return 0
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0
	}
	idx, err := strconv.Atoi(string(raw))
	if err != nil || idx < 0 {
		return 0
	}
	return idx
}

func encodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}
