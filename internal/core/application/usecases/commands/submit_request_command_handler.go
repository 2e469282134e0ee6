package commands

import (
	"context"

	"aidmatch/internal/core/domain/model/request"
)

// SubmitRequestCommandHandler handles the business logic for request submission.
// Creates new requests in Pending status, making them visible to nearby volunteers.
//
// Example:
//
//	handler := NewSubmitRequestCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("request submission failed: %w", err)
//	}
//	// Request is now pending and eligible for matching
type SubmitRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewSubmitRequestCommandHandler creates a handler for request submission operations.
// Requires a RequestUoWFactory for transactional persistence.
func NewSubmitRequestCommandHandler(uowFactory RequestUoWFactory) SubmitRequestCommandHandler {
	return SubmitRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the request submission command.
// Builds the aggregate in Pending status and persists it transactionally.
func (h *SubmitRequestCommandHandler) Handle(ctx context.Context, cmd SubmitRequestCommand) error {
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

	aggregate, err := request.NewAssistanceRequest(
		cmd.RequestID(),
		cmd.RequesterID(),
		cmd.AddressID(),
		cmd.Kind(),
		cmd.Category(),
		cmd.Priority(),
		cmd.Description(),
		cmd.Schedule(),
	)
	if err != nil {
		return err
	}

	if err = uow.RequestRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
