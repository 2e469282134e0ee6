package commands

import (
	"errors"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/pkg/guard"
)

var ErrSubmitRequestCommandIsNotConstructed = errors.New(
	"SubmitRequestCommand must be created via NewSubmitRequestCommand constructor",
)

// SubmitRequestCommand represents a requester submitting a new assistance
// request into the pending pool.
//
// Example:
//
//	cmd, err := NewSubmitRequestCommand(
//	    kernel.NewUUID(), requesterID, addressID,
//	    request.KindVolunteerAssistance, request.CategoryMedical,
//	    request.PriorityNormal, "pick up prescription",
//	    request.Schedule{Date: "2026-09-05", Time: "10:00"},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid request data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to submit request: %w", err)
//	}
type SubmitRequestCommand struct { //nolint:recvcheck //using for validation
	requestID   kernel.UUID
	requesterID kernel.UUID
	addressID   kernel.UUID
	kind        request.Kind
	category    request.Category
	priority    request.Priority
	description string
	schedule    request.Schedule

	guard guard.ConstructorGuard
}

// NewSubmitRequestCommand creates a command to submit a new assistance request.
// Identifier and enum validation is delegated to the aggregate constructor at
// handle time; the command only checks its own ids.
func NewSubmitRequestCommand(
	requestID kernel.UUID,
	requesterID kernel.UUID,
	addressID kernel.UUID,
	kind request.Kind,
	category request.Category,
	priority request.Priority,
	description string,
	schedule request.Schedule,
) (SubmitRequestCommand, error) {
	cmd := SubmitRequestCommand{
		kind:        kind,
		category:    category,
		priority:    priority,
		description: description,
		schedule:    schedule,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setRequesterID(requesterID),
		cmd.setAddressID(addressID),
	); err != nil {
		return SubmitRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitRequestCommandIsNotConstructed if validation fails.
func (c SubmitRequestCommand) Validate() error {
	return c.guard.Validate(ErrSubmitRequestCommandIsNotConstructed)
}

// RequestID returns the identifier for the new request.
func (c SubmitRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// RequesterID returns the submitting account's identifier.
func (c SubmitRequestCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// AddressID returns the identifier of the request's geocoded address.
func (c SubmitRequestCommand) AddressID() kernel.UUID {
	return c.addressID
}

// Kind returns the request kind.
func (c SubmitRequestCommand) Kind() request.Kind {
	return c.kind
}

// Category returns the request category.
func (c SubmitRequestCommand) Category() request.Category {
	return c.category
}

// Priority returns the request priority.
func (c SubmitRequestCommand) Priority() request.Priority {
	return c.priority
}

// Description returns the requester's free-text description.
func (c SubmitRequestCommand) Description() string {
	return c.description
}

// Schedule returns the requested date/time hints.
func (c SubmitRequestCommand) Schedule() request.Schedule {
	return c.schedule
}

func (c *SubmitRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	c.requestID = requestID
	return nil
}

func (c *SubmitRequestCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}
	c.requesterID = requesterID
	return nil
}

func (c *SubmitRequestCommand) setAddressID(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}
	c.addressID = addressID
	return nil
}
