package queries

import (
	"context"

	"aidmatch/internal/core/ports"
)

// CheckTaskLimitQueryHandler answers the capacity pre-flight check against
// the volunteer's denormalized task counter, keeping the check O(1).
type CheckTaskLimitQueryHandler struct {
	volunteerRepo ports.VolunteerRepository
	taskCeiling   int
}

// NewCheckTaskLimitQueryHandler creates a handler for task-limit queries.
// The ceiling is injected by the composition root; pass
// volunteer.DefaultTaskCeiling for the standard limit.
func NewCheckTaskLimitQueryHandler(volunteerRepo ports.VolunteerRepository, taskCeiling int) CheckTaskLimitQueryHandler {
	return CheckTaskLimitQueryHandler{
		volunteerRepo: volunteerRepo,
		taskCeiling:   taskCeiling,
	}
}

// Handle reports whether the volunteer is at or above the task ceiling.
// Returns an error matching errs.ErrObjectNotFound for unknown volunteers.
func (h CheckTaskLimitQueryHandler) Handle(ctx context.Context, query CheckTaskLimitQuery) (bool, error) {
	if err := query.Validate(); err != nil {
		return false, err
	}

	seeker, err := h.volunteerRepo.Get(ctx, query.VolunteerID())
	if err != nil {
		return false, err
	}

	return seeker.AtTaskLimit(h.taskCeiling), nil
}
