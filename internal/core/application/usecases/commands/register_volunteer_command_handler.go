package commands

import (
	"context"

	"aidmatch/internal/core/domain/model/volunteer"
)

// RegisterVolunteerCommandHandler handles the business logic for volunteer
// registration. New volunteers start with zero active assignments.
type RegisterVolunteerCommandHandler struct {
	uowFactory VolunteerUoWFactory
}

// NewRegisterVolunteerCommandHandler creates a handler for volunteer registration.
// Requires a VolunteerUoWFactory for transactional persistence.
func NewRegisterVolunteerCommandHandler(uowFactory VolunteerUoWFactory) RegisterVolunteerCommandHandler {
	return RegisterVolunteerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the volunteer registration command.
func (h *RegisterVolunteerCommandHandler) Handle(ctx context.Context, cmd RegisterVolunteerCommand) error {
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

	aggregate, err := volunteer.NewVolunteer(cmd.VolunteerID(), cmd.Name(), cmd.HomeAddressID())
	if err != nil {
		return err
	}

	if err = uow.VolunteerRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
