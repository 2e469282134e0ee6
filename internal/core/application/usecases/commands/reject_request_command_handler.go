package commands

import (
	"context"
)

// RejectRequestCommandHandler handles a volunteer declining a request.
//
// The append to the rejected-by set is performed by the repository as an
// idempotent set operation: declining twice is a no-op, and rejecting never
// consumes capacity or changes the request's status or assignee.
type RejectRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewRejectRequestCommandHandler creates a handler for rejection operations.
// Requires a RequestUoWFactory; rejection never touches the volunteer aggregate.
func NewRejectRequestCommandHandler(uowFactory RequestUoWFactory) RejectRequestCommandHandler {
	return RejectRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rejection command.
// Returns an error matching errs.ErrObjectNotFound for an unknown request id.
func (h RejectRequestCommandHandler) Handle(ctx context.Context, cmd RejectRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.RequestRepository().AppendRejection(ctx, cmd.RequestID(), cmd.VolunteerID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
