package commands

import (
	"errors"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/guard"
)

var ErrApproveRequestCommandIsNotConstructed = errors.New(
	"ApproveRequestCommand must be created via NewApproveRequestCommand constructor",
)

// ApproveRequestCommand represents a volunteer claiming a pending request.
// This is the only correctness-critical operation in the engine: the claim is
// exclusive and must survive concurrent claimants.
//
// Example:
//
//	cmd, err := NewApproveRequestCommand(requestID, volunteerID)
//	if err != nil {
//	    return err
//	}
//	claimed, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, volunteer.ErrCapacityExceeded):
//	    // show "you're at capacity"
//	case errors.Is(err, ports.ErrAlreadyClaimed):
//	    // refresh the nearby list
//	case err != nil:
//	    return err
//	}
type ApproveRequestCommand struct { //nolint:recvcheck //using for validation
	requestID   kernel.UUID
	volunteerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveRequestCommand creates a command for a volunteer to claim a request.
// Validates both identifiers.
func NewApproveRequestCommand(requestID kernel.UUID, volunteerID kernel.UUID) (ApproveRequestCommand, error) {
	cmd := ApproveRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setVolunteerID(volunteerID),
	); err != nil {
		return ApproveRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrApproveRequestCommandIsNotConstructed if validation fails.
func (c ApproveRequestCommand) Validate() error {
	return c.guard.Validate(ErrApproveRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request being claimed.
func (c ApproveRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// VolunteerID returns the identifier of the claiming volunteer.
func (c ApproveRequestCommand) VolunteerID() kernel.UUID {
	return c.volunteerID
}

func (c *ApproveRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	c.requestID = requestID
	return nil
}

func (c *ApproveRequestCommand) setVolunteerID(volunteerID kernel.UUID) error {
	if err := volunteerID.Validate(); err != nil {
		return err
	}
	c.volunteerID = volunteerID
	return nil
}
