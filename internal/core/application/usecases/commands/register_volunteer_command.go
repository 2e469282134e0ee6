package commands

import (
	"errors"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/volunteer"
	"aidmatch/internal/pkg/guard"
)

var ErrRegisterVolunteerCommandIsNotConstructed = errors.New(
	"RegisterVolunteerCommand must be created via NewRegisterVolunteerCommand constructor",
)

// RegisterVolunteerCommand represents registering a volunteer's
// matching-relevant state: identity, name, and geocoded home address.
//
// Example:
//
//	cmd, err := NewRegisterVolunteerCommand(kernel.NewUUID(), "Priya", homeAddressID)
//	if err != nil {
//	    return fmt.Errorf("invalid volunteer data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register volunteer: %w", err)
//	}
type RegisterVolunteerCommand struct { //nolint:recvcheck //using for validation
	volunteerID   kernel.UUID
	name          string
	homeAddressID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRegisterVolunteerCommand creates a command to register a new volunteer.
// Validates that both ids are valid and the name is non-empty.
func NewRegisterVolunteerCommand(
	volunteerID kernel.UUID,
	name string,
	homeAddressID kernel.UUID,
) (RegisterVolunteerCommand, error) {
	cmd := RegisterVolunteerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVolunteerID(volunteerID),
		cmd.setName(name),
		cmd.setHomeAddressID(homeAddressID),
	); err != nil {
		return RegisterVolunteerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRegisterVolunteerCommandIsNotConstructed if validation fails.
func (c RegisterVolunteerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterVolunteerCommandIsNotConstructed)
}

// VolunteerID returns the volunteer's identifier.
func (c RegisterVolunteerCommand) VolunteerID() kernel.UUID {
	return c.volunteerID
}

// Name returns the volunteer's name.
func (c RegisterVolunteerCommand) Name() string {
	return c.name
}

// HomeAddressID returns the volunteer's geocoded home address reference.
func (c RegisterVolunteerCommand) HomeAddressID() kernel.UUID {
	return c.homeAddressID
}

func (c *RegisterVolunteerCommand) setVolunteerID(volunteerID kernel.UUID) error {
	if err := volunteerID.Validate(); err != nil {
		return err
	}
	c.volunteerID = volunteerID
	return nil
}

func (c *RegisterVolunteerCommand) setName(name string) error {
	if name == "" {
		return volunteer.ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *RegisterVolunteerCommand) setHomeAddressID(homeAddressID kernel.UUID) error {
	if err := homeAddressID.Validate(); err != nil {
		return err
	}
	c.homeAddressID = homeAddressID
	return nil
}
