// Package volunteerrepo provides data transfer objects and mapping functions
// for volunteer persistence, including the denormalized active task counter
// read by the capacity admission check.
package volunteerrepo

import (
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/volunteer"

	"github.com/google/uuid"
)

// VolunteerDTO represents the database structure for persisting volunteers.
type VolunteerDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string
	HomeAddressID uuid.UUID `gorm:"type:uuid"`
	TaskCount     int
}

// TableName specifies the database table name for volunteer entities.
func (VolunteerDTO) TableName() string {
	return "volunteers"
}

// fromDomain converts a volunteer domain aggregate to its database representation.
func fromDomain(aggregate *volunteer.Volunteer) VolunteerDTO {
	return VolunteerDTO{
		ID:            aggregate.ID().Bytes(),
		Name:          aggregate.Name(),
		HomeAddressID: aggregate.HomeAddressID().Bytes(),
		TaskCount:     aggregate.TaskCount(),
	}
}

// toDomain converts a database DTO to a volunteer domain aggregate.
func toDomain(dto VolunteerDTO) (*volunteer.Volunteer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	homeAddressID, err := kernel.UUIDFromBytes(dto.HomeAddressID[:])
	if err != nil {
		return nil, err
	}

	return volunteer.RestoreVolunteer(id, dto.Name, homeAddressID, dto.TaskCount)
}
