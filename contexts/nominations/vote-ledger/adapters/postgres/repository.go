package postgresadapter

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"trustvote/contexts/nominations/vote-ledger/domain/entities"
	domainerrors "trustvote/contexts/nominations/vote-ledger/domain/errors"
	"trustvote/contexts/nominations/vote-ledger/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

// Repository backs the ledger with Postgres. Commands run inside database
// transactions with row locks on the tallies they touch; ranking reads run
// outside any transaction against committed state.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Transact wraps fn in one database transaction. Serialization failures,
// deadlocks, and unique violations surface as ErrConflict so the caller's
// retry loop can re-run the closure against fresh state.
func (r *Repository) Transact(ctx context.Context, fn func(ctx context.Context, tx ports.LedgerTx) error) error {
	err := r.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		return fn(ctx, &ledgerTx{db: gtx, logger: r.logger})
	})
	if err != nil {
		if isRetryableTxFailure(err) || isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return err
	}
	return nil
}

type ledgerTx struct {
	db     *gorm.DB
	logger *slog.Logger
}

func (tx *ledgerTx) GetBallot(ctx context.Context, voterID string) (string, bool, error) {
	var row ballotModel
	err := tx.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("voter_id = ?", strings.TrimSpace(voterID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, tx.logError("ledger_tx_get_ballot_failed", err, "voter_id", strings.TrimSpace(voterID))
	}
	return row.NomineeID, true, nil
}

func (tx *ledgerTx) SetBallot(ctx context.Context, voterID string, nomineeID string) error {
	row := ballotModel{
		VoterID:   strings.TrimSpace(voterID),
		NomineeID: strings.TrimSpace(nomineeID),
		UpdatedAt: time.Now().UTC(),
	}
	create := tx.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "voter_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"nominee_id": row.NomineeID,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return tx.logError("ledger_tx_set_ballot_failed", create.Error,
			"voter_id", row.VoterID,
			"nominee_id", row.NomineeID,
		)
	}
	return nil
}

func (tx *ledgerTx) InsertBallot(ctx context.Context, voterID string, nomineeID string) error {
	row := ballotModel{
		VoterID:   strings.TrimSpace(voterID),
		NomineeID: strings.TrimSpace(nomineeID),
		UpdatedAt: time.Now().UTC(),
	}
	create := tx.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "voter_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return tx.logError("ledger_tx_insert_ballot_failed", create.Error,
			"voter_id", row.VoterID,
			"nominee_id", row.NomineeID,
		)
	}
	// A losing first vote blocks here until the winner commits, then inserts
	// nothing. Surfacing the mismatch rolls the tally increment back and the
	// retry re-reads the now-existing ballot.
	if create.RowsAffected == 0 {
		return domainerrors.ErrBallotVersionMismatch
	}
	return nil
}

func (tx *ledgerTx) ClearBallot(ctx context.Context, voterID string) error {
	if err := tx.db.WithContext(ctx).
		Where("voter_id = ?", strings.TrimSpace(voterID)).
		Delete(&ballotModel{}).Error; err != nil {
		return tx.logError("ledger_tx_clear_ballot_failed", err, "voter_id", strings.TrimSpace(voterID))
	}
	return nil
}

func (tx *ledgerTx) TallyForUpdate(ctx context.Context, nomineeID string) (int64, error) {
	var row nomineeModel
	err := tx.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "votes").
		Where("id = ?", strings.TrimSpace(nomineeID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domainerrors.ErrNomineeNotFound
		}
		return 0, tx.logError("ledger_tx_tally_for_update_failed", err, "nominee_id", strings.TrimSpace(nomineeID))
	}
	return row.Votes, nil
}

func (tx *ledgerTx) AdjustTally(ctx context.Context, nomineeID string, delta int64) error {
	// Relative update against the locked row; the guard keeps a racing
	// decrement from ever driving the tally below zero.
	result := tx.db.WithContext(ctx).
		Model(&nomineeModel{}).
		Where("id = ?", strings.TrimSpace(nomineeID)).
		Where("votes + ? >= 0", delta).
		Updates(map[string]any{
			"votes":      gorm.Expr("votes + ?", delta),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return tx.logError("ledger_tx_adjust_tally_failed", result.Error,
			"nominee_id", strings.TrimSpace(nomineeID),
			"delta", delta,
		)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.db.WithContext(ctx).
			Model(&nomineeModel{}).
			Where("id = ?", strings.TrimSpace(nomineeID)).
			Count(&count).Error; err != nil {
			return tx.logError("ledger_tx_adjust_tally_check_failed", err, "nominee_id", strings.TrimSpace(nomineeID))
		}
		if count == 0 {
			return domainerrors.ErrNomineeNotFound
		}
		return domainerrors.ErrNegativeTally
	}
	return nil
}

func (tx *ledgerTx) AppendTransfer(ctx context.Context, record entities.TransferRecord) error {
	row := transferModelFromEntity(record)
	if err := tx.db.WithContext(ctx).Create(&row).Error; err != nil {
		return tx.logError("ledger_tx_append_transfer_failed", err,
			"transfer_id", row.ID,
			"source_nominee_id", row.SourceNomineeID,
			"dest_nominee_id", row.DestNomineeID,
		)
	}
	return nil
}

func (tx *ledgerTx) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return tx.logError("ledger_tx_append_outbox_marshal_failed", err,
			"event_id", strings.TrimSpace(envelope.EventID),
			"event_type", strings.TrimSpace(envelope.EventType),
		)
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	create := tx.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "outbox_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return tx.logError("ledger_tx_append_outbox_insert_failed", create.Error, "outbox_id", row.OutboxID)
	}
	if create.RowsAffected > 0 {
		return nil
	}

	var existing outboxModel
	if err := tx.db.WithContext(ctx).
		Select("payload").
		Where("outbox_id = ?", row.OutboxID).
		First(&existing).Error; err != nil {
		return tx.logError("ledger_tx_append_outbox_load_existing_failed", err, "outbox_id", row.OutboxID)
	}
	if !bytes.Equal(existing.Payload, row.Payload) {
		return domainerrors.ErrConflict
	}
	return nil
}

func (tx *ledgerTx) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "nominations/vote-ledger",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	tx.logger.Error("ledger transaction operation failed", fields...)
	return err
}

func (r *Repository) RankNominees(ctx context.Context, filter ports.RankFilter) ([]entities.RankEntry, string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	start := decodeCursor(filter.Cursor)

	query := r.db.WithContext(ctx).Model(&nomineeModel{})
	if filter.College != "" {
		query = query.Where("LOWER(college_name) = LOWER(?)", filter.College)
	}
	if filter.Location != "" {
		query = query.Where("LOWER(location) = LOWER(?)", filter.Location)
	}
	if filter.SearchPrefix != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", escapeLikePrefix(filter.SearchPrefix)+"%")
	}

	switch filter.SortKey {
	case "name":
		query = query.Order("name ASC").Order("id ASC")
	default:
		query = query.Order("votes DESC").Order("id ASC")
	}

	var rows []nomineeModel
	if err := query.Offset(start).Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, "", r.logError("ledger_repo_rank_nominees_failed", err,
			"sort", filter.SortKey,
			"college", filter.College,
			"location", filter.Location,
		)
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		next = encodeCursor(start + limit)
	}
	items := make([]entities.RankEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toRankEntry())
	}
	return items, next, nil
}

func (r *Repository) ListFilterOptions(ctx context.Context) (ports.RankFilterOptions, error) {
	var colleges []string
	if err := r.db.WithContext(ctx).
		Model(&nomineeModel{}).
		Distinct("college_name").
		Where("college_name <> ''").
		Order("college_name ASC").
		Pluck("college_name", &colleges).Error; err != nil {
		return ports.RankFilterOptions{}, r.logError("ledger_repo_list_colleges_failed", err)
	}
	var locations []string
	if err := r.db.WithContext(ctx).
		Model(&nomineeModel{}).
		Distinct("location").
		Where("location <> ''").
		Order("location ASC").
		Pluck("location", &locations).Error; err != nil {
		return ports.RankFilterOptions{}, r.logError("ledger_repo_list_locations_failed", err)
	}
	return ports.RankFilterOptions{Colleges: colleges, Locations: locations}, nil
}

func (r *Repository) ListTransfersByNominee(ctx context.Context, nomineeID string) ([]entities.TransferRecord, error) {
	nomineeID = strings.TrimSpace(nomineeID)
	var rows []transferModel
	if err := r.db.WithContext(ctx).
		Where("source_nominee_id = ? OR dest_nominee_id = ?", nomineeID, nomineeID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("ledger_repo_list_transfers_failed", err, "nominee_id", nomineeID)
	}
	items := make([]entities.TransferRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("ledger_repo_list_pending_outbox_failed", err, "limit", limit)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("ledger_repo_mark_outbox_published_failed", result.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "nominations/vote-ledger",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("ledger repository operation failed", fields...)
	return err
}

type nomineeModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	CollegeName string    `gorm:"column:college_name"`
	Location    string    `gorm:"column:location"`
	PhotoURL    string    `gorm:"column:photo_url"`
	Votes       int64     `gorm:"column:votes"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (nomineeModel) TableName() string {
	return "nominees"
}

func (m nomineeModel) toRankEntry() entities.RankEntry {
	return entities.RankEntry{
		NomineeID:   m.ID,
		Name:        m.Name,
		CollegeName: m.CollegeName,
		Location:    m.Location,
		PhotoURL:    m.PhotoURL,
		Votes:       m.Votes,
	}
}

type ballotModel struct {
	VoterID   string    `gorm:"column:voter_id;primaryKey"`
	NomineeID string    `gorm:"column:nominee_id"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ballotModel) TableName() string {
	return "voter_ballots"
}

type transferModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	SourceNomineeID string    `gorm:"column:source_nominee_id"`
	DestNomineeID   string    `gorm:"column:dest_nominee_id"`
	Amount          int64     `gorm:"column:amount"`
	InitiatedBy     string    `gorm:"column:initiated_by"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (transferModel) TableName() string {
	return "vote_transfers"
}

func transferModelFromEntity(record entities.TransferRecord) transferModel {
	row := transferModel{
		ID:              strings.TrimSpace(record.TransferID),
		SourceNomineeID: strings.TrimSpace(record.SourceNomineeID),
		DestNomineeID:   strings.TrimSpace(record.DestNomineeID),
		Amount:          record.Amount,
		InitiatedBy:     strings.TrimSpace(record.InitiatedBy),
		CreatedAt:       record.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m transferModel) toEntity() entities.TransferRecord {
	return entities.TransferRecord{
		TransferID:      m.ID,
		SourceNomineeID: m.SourceNomineeID,
		DestNomineeID:   m.DestNomineeID,
		Amount:          m.Amount,
		InitiatedBy:     m.InitiatedBy,
		CreatedAt:       m.CreatedAt.UTC(),
	}
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "vote_ledger_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isRetryableTxFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// serialization_failure and deadlock_detected
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

func escapeLikePrefix(prefix string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(prefix)
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

var _ ports.LedgerStore = (*Repository)(nil)
var _ ports.RankReader = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
