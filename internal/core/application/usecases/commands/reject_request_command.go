package commands

import (
	"errors"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/guard"
)

var ErrRejectRequestCommandIsNotConstructed = errors.New(
	"RejectRequestCommand must be created via NewRejectRequestCommand constructor",
)

// RejectRequestCommand represents a volunteer declining a request.
// Rejection is per-volunteer only: it hides the request from this volunteer's
// future matches while leaving it pending and visible to everyone else.
type RejectRequestCommand struct { //nolint:recvcheck //using for validation
	requestID   kernel.UUID
	volunteerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectRequestCommand creates a command for a volunteer to decline a request.
// Validates both identifiers.
func NewRejectRequestCommand(requestID kernel.UUID, volunteerID kernel.UUID) (RejectRequestCommand, error) {
	cmd := RejectRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setVolunteerID(volunteerID),
	); err != nil {
		return RejectRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRejectRequestCommandIsNotConstructed if validation fails.
func (c RejectRequestCommand) Validate() error {
	return c.guard.Validate(ErrRejectRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the declined request.
func (c RejectRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// VolunteerID returns the identifier of the declining volunteer.
func (c RejectRequestCommand) VolunteerID() kernel.UUID {
	return c.volunteerID
}

func (c *RejectRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	c.requestID = requestID
	return nil
}

func (c *RejectRequestCommand) setVolunteerID(volunteerID kernel.UUID) error {
	if err := volunteerID.Validate(); err != nil {
		return err
	}
	c.volunteerID = volunteerID
	return nil
}
