package commands

import (
	"context"

	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/core/domain/model/volunteer"
)

// ApproveRequestCommandHandler orchestrates the exclusive claim of a pending
// request by a volunteer.
//
// The flow is: row-locked read of the volunteer, capacity admission check
// (volunteer.ErrCapacityExceeded at or above the ceiling, without touching
// the request), then the atomic conditional claim through the repository
// (ports.ErrAlreadyClaimed when another volunteer won the race), then the
// task counter increment — all inside one transaction so a failed counter
// update rolls the claim back.
//
// The claim is a single conditional update performed by the store, never a
// read-then-write sequence in application code. The volunteer is read via
// GetForUpdate so concurrent claims by the same volunteer serialize: the
// second transaction sees the first one's committed counter, which keeps the
// increment exact and the admission check authoritative.
type ApproveRequestCommandHandler struct {
	uowFactory  UoWFactory
	taskCeiling int
}

// NewApproveRequestCommandHandler creates a handler for claim operations.
// The task ceiling is injected by the composition root rather than read from
// a global; pass volunteer.DefaultTaskCeiling for the standard limit.
func NewApproveRequestCommandHandler(uowFactory UoWFactory, taskCeiling int) ApproveRequestCommandHandler {
	return ApproveRequestCommandHandler{
		uowFactory:  uowFactory,
		taskCeiling: taskCeiling,
	}
}

// Handle processes the claim command and returns the claimed request.
//
// Failure modes, each a distinct condition for the caller to recover from:
//   - errs.ErrObjectNotFound: unknown volunteer or request id
//   - volunteer.ErrCapacityExceeded: the volunteer is at the task ceiling;
//     the request is left untouched
//   - ports.ErrAlreadyClaimed: another volunteer claimed the request first
func (h ApproveRequestCommandHandler) Handle(
	ctx context.Context,
	cmd ApproveRequestCommand,
) (*request.AssistanceRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	volunteerRepo := uow.VolunteerRepository()
	requestRepo := uow.RequestRepository()

	claimant, err := volunteerRepo.GetForUpdate(ctx, cmd.VolunteerID())
	if err != nil {
		return nil, err
	}

	if claimant.AtTaskLimit(h.taskCeiling) {
		return nil, volunteer.ErrCapacityExceeded
	}

	claimed, err := requestRepo.Claim(ctx, cmd.RequestID(), cmd.VolunteerID())
	if err != nil {
		return nil, err
	}

	if err = claimant.BeginTask(h.taskCeiling); err != nil {
		return nil, err
	}

	if err = volunteerRepo.Update(ctx, claimant); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return claimed, nil
}
