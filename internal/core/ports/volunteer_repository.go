package ports

import (
	"context"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/volunteer"
)

// VolunteerRepository defines the persistence contract for volunteer
// aggregates, including the denormalized active task counter that backs the
// capacity admission check.
type VolunteerRepository interface {
	// Add persists a new volunteer aggregate to storage.
	Add(ctx context.Context, aggregate *volunteer.Volunteer) error

	// Update persists changes to an existing volunteer aggregate,
	// including its active task count.
	Update(ctx context.Context, aggregate *volunteer.Volunteer) error

	// Get retrieves a volunteer aggregate by its unique identifier.
	// Returns an error matching errs.ErrObjectNotFound for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*volunteer.Volunteer, error)

	// GetForUpdate retrieves a volunteer aggregate with its row locked for
	// the rest of the current transaction. Commands that mutate the task
	// counter must read through this method so concurrent claims and
	// completions by the same volunteer serialize instead of overwriting
	// each other's increments. Returns an error matching
	// errs.ErrObjectNotFound for unknown ids.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*volunteer.Volunteer, error)
}
