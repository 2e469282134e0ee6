package commands

import (
	"context"

	"aidmatch/internal/core/domain/model/request"
)

// CompleteRequestCommandHandler orchestrates the completion of an approved
// request by its assigned volunteer.
//
// The ownership check is enforced by the aggregate (request.ErrNotOwner when
// the caller is not the assignee). Completion releases capacity: the
// volunteer's active task counter is decremented, floored at zero, in the
// same transaction as the status transition.
//
// The volunteer row is locked (GetForUpdate) before the request is read, so
// two concurrent completions of the same request serialize on the assignee:
// the second transaction re-reads the request after the first committed,
// finds it already completed, and fails on the status check instead of
// decrementing the counter twice.
type CompleteRequestCommandHandler struct {
	uowFactory UoWFactory
}

// NewCompleteRequestCommandHandler creates a handler for completion operations.
// Requires a UoWFactory for coordinating the request and volunteer updates.
func NewCompleteRequestCommandHandler(uowFactory UoWFactory) CompleteRequestCommandHandler {
	return CompleteRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the completion command and returns the completed request.
//
// Failure modes:
//   - errs.ErrObjectNotFound: unknown request or volunteer id
//   - request.ErrNotOwner: the request is assigned to a different volunteer
func (h CompleteRequestCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteRequestCommand,
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

	requestRepo := uow.RequestRepository()
	volunteerRepo := uow.VolunteerRepository()

	assignee, err := volunteerRepo.GetForUpdate(ctx, cmd.VolunteerID())
	if err != nil {
		return nil, err
	}

	aggregate, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Complete(cmd.VolunteerID()); err != nil {
		return nil, err
	}

	if err = requestRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	assignee.FinishTask()

	if err = volunteerRepo.Update(ctx, assignee); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
