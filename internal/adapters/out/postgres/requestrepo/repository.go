package requestrepo

import (
	"context"
	"errors"
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/core/ports"
	"aidmatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRequestRepository implements RequestRepository using GORM.
type GormRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRequestRepository creates a new GORM request repository.
func NewGormRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormRequestRepository {
	return &GormRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new request to the database.
func (r *GormRequestRepository) Add(ctx context.Context, aggregate *request.AssistanceRequest) error {
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

// Update saves an existing request to the database.
func (r *GormRequestRepository) Update(ctx context.Context, aggregate *request.AssistanceRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RequestDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"requester_id":          dto.RequesterID,
		"address_id":            dto.AddressID,
		"kind":                  dto.Kind,
		"category":              dto.Category,
		"priority":              dto.Priority,
		"description":           dto.Description,
		"requested_date":        dto.RequestedDate,
		"requested_time":        dto.RequestedTime,
		"status":                dto.Status,
		"assigned_volunteer_id": dto.AssignedVolunteerID,
		"rejected_by":           dto.RejectedBy,
		"updated_at":            dto.UpdatedAt,
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

// Get retrieves a request by ID.
func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.AssistanceRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPendingPage retrieves one page of claimable candidates ordered by
// arrival. Requests the excluded volunteer already rejected are filtered in
// SQL so a rejection permanently hides the request from that volunteer's feed.
func (r *GormRequestRepository) GetPendingPage(ctx context.Context, filter ports.PendingFilter) ([]*request.AssistanceRequest, error) {
	if err := filter.ExcludeVolunteer.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Where("status = ?", request.Pending).
		Where("assigned_volunteer_id IS NULL").
		Where("NOT (? = ANY(COALESCE(rejected_by, '{}')))", filter.ExcludeVolunteer.String())

	if filter.SearchText != "" {
		query = query.Where("description ILIKE ?", "%"+filter.SearchText+"%")
	}
	if filter.Kind != request.KindUnknown {
		query = query.Where("kind = ?", int(filter.Kind))
	}
	if filter.Category != request.CategoryNone {
		query = query.Where("category = ?", int(filter.Category))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = ports.MatchingPageSize
	}

	var dtos []RequestDTO
	if err := query.
		Order("created_at ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	requests := make([]*request.AssistanceRequest, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, aggregate)
	}

	return requests, nil
}

// CountPending returns the size of the unassigned pending pool.
func (r *GormRequestRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&RequestDTO{}).
		Where("status = ?", request.Pending).
		Where("assigned_volunteer_id IS NULL").
		Count(&count).Error
	return count, err
}

// CountPendingOlderThan returns how many unassigned pending requests were
// created before the cutoff.
func (r *GormRequestRepository) CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&RequestDTO{}).
		Where("status = ?", request.Pending).
		Where("assigned_volunteer_id IS NULL").
		Where("created_at < ?", cutoff).
		Count(&count).Error
	return count, err
}

// Claim atomically assigns a pending request to the volunteer. The transition
// is a single conditional UPDATE keyed on the pending/unassigned state, so
// exactly one of any number of concurrent claimants can win.
func (r *GormRequestRepository) Claim(ctx context.Context, requestID kernel.UUID, volunteerID kernel.UUID) (*request.AssistanceRequest, error) {
	if err := errors.Join(requestID.Validate(), volunteerID.Validate()); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&RequestDTO{}).
		Where("id = ?", requestID.Bytes()).
		Where("status = ?", request.Pending).
		Where("assigned_volunteer_id IS NULL").
		Updates(map[string]any{
			"status":                int(request.Approved),
			"assigned_volunteer_id": volunteerID.Bytes(),
			"updated_at":            time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&RequestDTO{}).
			Where("id = ?", requestID.Bytes()).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, errs.NewObjectNotFoundError("request", requestID.String())
		}
		return nil, ports.ErrAlreadyClaimed
	}

	claimed, err := r.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(claimed.ID(), claimed)
	return claimed, nil
}

// AppendRejection adds the volunteer to the request's rejected-by set in a
// single UPDATE. The membership check makes the operation idempotent: a
// repeat rejection matches zero rows and is treated as success.
func (r *GormRequestRepository) AppendRejection(ctx context.Context, requestID kernel.UUID, volunteerID kernel.UUID) error {
	if err := errors.Join(requestID.Validate(), volunteerID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&RequestDTO{}).
		Where("id = ?", requestID.Bytes()).
		Where("NOT (? = ANY(COALESCE(rejected_by, '{}')))", volunteerID.String()).
		Updates(map[string]any{
			"rejected_by": gorm.Expr("array_append(COALESCE(rejected_by, '{}'), ?)", volunteerID.String()),
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&RequestDTO{}).
			Where("id = ?", requestID.Bytes()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("request", requestID.String())
		}
	}

	return nil
}
