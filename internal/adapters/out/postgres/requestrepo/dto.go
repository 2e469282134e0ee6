// Package requestrepo provides data transfer objects and mapping functions for
// assistance-request persistence. This package implements the repository
// pattern for the request aggregate, handling the conversion between domain
// entities and database representations.
package requestrepo

import (
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// RequestDTO represents the database structure for persisting request
// aggregates. Indexed for the matching hot path: filtering by status and
// assignment, and set-membership checks on the rejected-by array.
type RequestDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RequesterID         uuid.UUID  `gorm:"type:uuid;index"`
	AddressID           uuid.UUID  `gorm:"type:uuid"`
	Kind                int        `gorm:"index"`
	Category            int        `gorm:"index"`
	Priority            int
	Description         string
	RequestedDate       string
	RequestedTime       string
	Status              int            `gorm:"index"`
	AssignedVolunteerID *uuid.UUID     `gorm:"type:uuid;index"`
	RejectedBy          pq.StringArray `gorm:"type:text[]"`
	CreatedAt           time.Time      `gorm:"index"`
	UpdatedAt           time.Time
}

// TableName specifies the database table name for request entities.
func (RequestDTO) TableName() string {
	return "assistance_requests"
}

// fromDomain converts a request domain aggregate to its database representation.
func fromDomain(aggregate *request.AssistanceRequest) RequestDTO {
	var assigneeID *uuid.UUID
	if id := aggregate.AssignedVolunteer(); id != nil {
		raw := id.Bytes()
		assigneeID = &raw
	}

	rejectedBy := make(pq.StringArray, 0, len(aggregate.RejectedBy()))
	for _, id := range aggregate.RejectedBy() {
		rejectedBy = append(rejectedBy, id.String())
	}

	return RequestDTO{
		ID:                  aggregate.ID().Bytes(),
		RequesterID:         aggregate.RequesterID().Bytes(),
		AddressID:           aggregate.AddressID().Bytes(),
		Kind:                int(aggregate.Kind()),
		Category:            int(aggregate.Category()),
		Priority:            int(aggregate.Priority()),
		Description:         aggregate.Description(),
		RequestedDate:       aggregate.Schedule().Date,
		RequestedTime:       aggregate.Schedule().Time,
		Status:              int(aggregate.Status()),
		AssignedVolunteerID: assigneeID,
		RejectedBy:          rejectedBy,
		CreatedAt:           aggregate.CreatedAt(),
		UpdatedAt:           aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a request domain aggregate using
// RestoreAssistanceRequest, which re-validates the status/assignee invariant.
func toDomain(dto RequestDTO) (*request.AssistanceRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requesterID, err := kernel.UUIDFromBytes(dto.RequesterID[:])
	if err != nil {
		return nil, err
	}

	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, err
	}

	var assigneeID *kernel.UUID
	if dto.AssignedVolunteerID != nil {
		aID, assigneeErr := kernel.UUIDFromBytes((*dto.AssignedVolunteerID)[:])
		if assigneeErr != nil {
			return nil, assigneeErr
		}
		assigneeID = &aID
	}

	rejectedBy := make([]kernel.UUID, 0, len(dto.RejectedBy))
	for _, raw := range dto.RejectedBy {
		rejectedID, rejectedErr := kernel.UUIDFromString(raw)
		if rejectedErr != nil {
			return nil, rejectedErr
		}
		rejectedBy = append(rejectedBy, rejectedID)
	}

	return request.RestoreAssistanceRequest(
		id,
		requesterID,
		addressID,
		request.Kind(dto.Kind),
		request.Category(dto.Category),
		request.Priority(dto.Priority),
		dto.Description,
		request.Schedule{Date: dto.RequestedDate, Time: dto.RequestedTime},
		request.Status(dto.Status),
		assigneeID,
		rejectedBy,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
