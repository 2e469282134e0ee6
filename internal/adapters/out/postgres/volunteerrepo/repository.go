package volunteerrepo

import (
	"context"
	"errors"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/volunteer"
	"aidmatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormVolunteerRepository implements VolunteerRepository using GORM.
type GormVolunteerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormVolunteerRepository creates a new GORM volunteer repository.
func NewGormVolunteerRepository(db *gorm.DB, tracker aggregateTracker) *GormVolunteerRepository {
	return &GormVolunteerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new volunteer to the database.
func (r *GormVolunteerRepository) Add(ctx context.Context, aggregate *volunteer.Volunteer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing volunteer to the database. The task count is
// written unconditionally so capacity changes survive a FinishTask back to
// zero, which a struct-based Updates would silently drop.
func (r *GormVolunteerRepository) Update(ctx context.Context, aggregate *volunteer.Volunteer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&VolunteerDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":            dto.Name,
		"home_address_id": dto.HomeAddressID,
		"task_count":      dto.TaskCount,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a volunteer by ID.
func (r *GormVolunteerRepository) Get(ctx context.Context, id kernel.UUID) (*volunteer.Volunteer, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves a volunteer by ID with SELECT ... FOR UPDATE. The
// row stays locked until the surrounding transaction ends, so two
// transactions reading the same volunteer's task count serialize: the second
// blocks and then sees the first one's committed counter instead of a stale
// value it would later overwrite.
func (r *GormVolunteerRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*volunteer.Volunteer, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormVolunteerRepository) get(tx *gorm.DB, id kernel.UUID) (*volunteer.Volunteer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VolunteerDTO
	if err := tx.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("volunteer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
