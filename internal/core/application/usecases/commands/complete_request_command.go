package commands

import (
	"errors"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/guard"
)

var ErrCompleteRequestCommandIsNotConstructed = errors.New(
	"CompleteRequestCommand must be created via NewCompleteRequestCommand constructor",
)

// CompleteRequestCommand represents the assigned volunteer finishing a
// request, which releases one unit of the volunteer's capacity.
type CompleteRequestCommand struct { //nolint:recvcheck //using for validation
	requestID   kernel.UUID
	volunteerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteRequestCommand creates a command to complete an approved request.
// Validates both identifiers.
func NewCompleteRequestCommand(requestID kernel.UUID, volunteerID kernel.UUID) (CompleteRequestCommand, error) {
	cmd := CompleteRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setVolunteerID(volunteerID),
	); err != nil {
		return CompleteRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteRequestCommandIsNotConstructed if validation fails.
func (c CompleteRequestCommand) Validate() error {
	return c.guard.Validate(ErrCompleteRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request being completed.
func (c CompleteRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// VolunteerID returns the identifier of the completing volunteer.
func (c CompleteRequestCommand) VolunteerID() kernel.UUID {
	return c.volunteerID
}

func (c *CompleteRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	c.requestID = requestID
	return nil
}

func (c *CompleteRequestCommand) setVolunteerID(volunteerID kernel.UUID) error {
	if err := volunteerID.Validate(); err != nil {
		return err
	}
	c.volunteerID = volunteerID
	return nil
}
