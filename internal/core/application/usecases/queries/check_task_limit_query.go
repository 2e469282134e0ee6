package queries

import (
	"errors"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/guard"
)

var ErrCheckTaskLimitQueryIsNotConstructed = errors.New(
	"CheckTaskLimitQuery must be created via NewCheckTaskLimitQuery constructor",
)

// CheckTaskLimitQuery asks whether a volunteer has reached the active task
// ceiling. Callers use it as a cheap pre-flight before attempting a claim;
// it is advisory only — the authoritative capacity check happens inside the
// approve transaction.
type CheckTaskLimitQuery struct { //nolint:recvcheck //using for validation
	volunteerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCheckTaskLimitQuery creates a task-limit query for the given volunteer.
func NewCheckTaskLimitQuery(volunteerID kernel.UUID) (CheckTaskLimitQuery, error) {
	q := CheckTaskLimitQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setVolunteerID(volunteerID); err != nil {
		return CheckTaskLimitQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrCheckTaskLimitQueryIsNotConstructed if validation fails.
func (q CheckTaskLimitQuery) Validate() error {
	return q.guard.Validate(ErrCheckTaskLimitQueryIsNotConstructed)
}

// VolunteerID returns the identifier of the volunteer being checked.
func (q CheckTaskLimitQuery) VolunteerID() kernel.UUID {
	return q.volunteerID
}

func (q *CheckTaskLimitQuery) setVolunteerID(volunteerID kernel.UUID) error {
	if err := volunteerID.Validate(); err != nil {
		return err
	}
	q.volunteerID = volunteerID
	return nil
}
