package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"trustvote/contexts/nominations/nominee-directory/domain/entities"
	domainerrors "trustvote/contexts/nominations/nominee-directory/domain/errors"
	"trustvote/contexts/nominations/nominee-directory/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository persists nominee profiles in the shared nominees table. New
// nominees start with a zero vote tally; the ledger owns the tally after that.
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

func (r *Repository) CreateNominee(ctx context.Context, nominee entities.Nominee) error {
	row := nomineeModelFromEntity(nominee)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrNomineeExists
		}
		return r.logError("directory_repo_create_nominee_failed", err,
			"nominee_id", row.ID,
		)
	}
	return nil
}

func (r *Repository) GetNominee(ctx context.Context, nomineeID string) (entities.Nominee, error) {
	var row nomineeModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(nomineeID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Nominee{}, domainerrors.ErrNomineeNotFound
		}
		return entities.Nominee{}, r.logError("directory_repo_get_nominee_failed", err,
			"nominee_id", strings.TrimSpace(nomineeID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetNomineeByEmail(ctx context.Context, email string) (entities.Nominee, bool, error) {
	var row nomineeModel
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Nominee{}, false, nil
		}
		return entities.Nominee{}, false, r.logError("directory_repo_get_nominee_by_email_failed", err)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListFeatured(ctx context.Context, limit int) ([]entities.Nominee, error) {
	if limit <= 0 {
		limit = 3
	}
	var rows []nomineeModel
	if err := r.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("votes DESC").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("directory_repo_list_featured_failed", err, "limit", limit)
	}
	return toNomineeEntities(rows), nil
}

func (r *Repository) SearchByNamePrefix(ctx context.Context, prefix string, limit int) ([]entities.Nominee, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []nomineeModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", escapeLikePrefix(strings.TrimSpace(prefix))+"%").
		Order("name ASC").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("directory_repo_search_failed", err, "limit", limit)
	}
	return toNomineeEntities(rows), nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "nominations/nominee-directory",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("directory repository operation failed", fields...)
	return err
}

type nomineeModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	Name            string    `gorm:"column:name"`
	Email           string    `gorm:"column:email"`
	CollegeName     string    `gorm:"column:college_name"`
	Description     string    `gorm:"column:description"`
	Reason          string    `gorm:"column:reason"`
	Location        string    `gorm:"column:location"`
	PhotoURL        string    `gorm:"column:photo_url"`
	LinkedinProfile string    `gorm:"column:linkedin_profile"`
	Featured        bool      `gorm:"column:featured"`
	Votes           int64     `gorm:"column:votes"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (nomineeModel) TableName() string {
	return "nominees"
}

func nomineeModelFromEntity(nominee entities.Nominee) nomineeModel {
	row := nomineeModel{
		ID:              strings.TrimSpace(nominee.NomineeID),
		Name:            strings.TrimSpace(nominee.Name),
		Email:           strings.ToLower(strings.TrimSpace(nominee.Email)),
		CollegeName:     strings.TrimSpace(nominee.CollegeName),
		Description:     strings.TrimSpace(nominee.Description),
		Reason:          strings.TrimSpace(nominee.Reason),
		Location:        strings.TrimSpace(nominee.Location),
		PhotoURL:        strings.TrimSpace(nominee.PhotoURL),
		LinkedinProfile: strings.TrimSpace(nominee.LinkedinProfile),
		Featured:        nominee.Featured,
		Votes:           0,
		CreatedAt:       nominee.CreatedAt.UTC(),
		UpdatedAt:       nominee.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m nomineeModel) toEntity() entities.Nominee {
	return entities.Nominee{
		NomineeID:       m.ID,
		Name:            m.Name,
		Email:           m.Email,
		CollegeName:     m.CollegeName,
		Description:     m.Description,
		Reason:          m.Reason,
		Location:        m.Location,
		PhotoURL:        m.PhotoURL,
		LinkedinProfile: m.LinkedinProfile,
		Featured:        m.Featured,
		Votes:           m.Votes,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

func toNomineeEntities(rows []nomineeModel) []entities.Nominee {
	items := make([]entities.Nominee, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func escapeLikePrefix(prefix string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(prefix)
}

var _ ports.NomineeRepository = (*Repository)(nil)
