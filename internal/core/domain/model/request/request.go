package request

import (
	"errors"
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/errs"
)

var (
	// ErrRequestIsNotConstructed is returned when an AssistanceRequest instance
	// was not created through NewAssistanceRequest or RestoreAssistanceRequest.
	ErrRequestIsNotConstructed = errors.New(
		"AssistanceRequest must be created via NewAssistanceRequest constructor")

	// ErrNotOwner is returned when a volunteer attempts to complete a request
	// that is assigned to a different volunteer.
	ErrNotOwner = errors.New("request is assigned to a different volunteer")

	// ErrCategoryIsRequired is returned when a volunteer-assistance request is
	// created without a category.
	ErrCategoryIsRequired = errs.NewValueIsRequiredError("category")
)

// Schedule carries the requester's preferred date and time as free-form hints.
// The matcher never enforces them; they are display information for volunteers.
type Schedule struct {
	Date string
	Time string
}

// AssistanceRequest represents a request for in-person help. It is the
// aggregate root that manages the request lifecycle from submission through
// the exclusive volunteer claim to completion.
//
// AssistanceRequest follows these invariants:
//   - Must have valid identifiers for the request, the requester, and the address
//   - Category is required exactly when the kind is volunteer-assistance
//   - The assigned volunteer is non-nil if and only if the status is Approved or Completed
//   - The rejected-by set grows monotonically and never changes status or assignee
//   - Can only be created through NewAssistanceRequest or RestoreAssistanceRequest
//
// The aggregate enforces state invariants for in-memory use; the race-free
// exclusivity of the claim itself is guaranteed by the persistence layer's
// atomic conditional update, not by this struct.
type AssistanceRequest struct {
	// id is the unique identifier for the request
	id kernel.UUID

	// requesterID references the account that submitted the request
	requesterID kernel.UUID

	// addressID references the geocoded location where help is needed
	addressID kernel.UUID

	// kind distinguishes volunteer-assistance from ambulance requests
	kind Kind

	// category classifies volunteer-assistance requests (CategoryNone for ambulance)
	category Category

	// priority is display information, not a matching input
	priority Priority

	// description is optional free text from the requester
	description string

	// schedule carries the requested date/time hints
	schedule Schedule

	// status represents the current state in the request lifecycle
	status Status

	// assignedVolunteer is the claiming volunteer's ID (nil while Pending)
	assignedVolunteer *kernel.UUID

	// rejectedBy lists volunteers who declined this request; it only grows
	rejectedBy []kernel.UUID

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the request was created via a constructor
	isConstructed bool
}

// NewAssistanceRequest creates a new AssistanceRequest in Pending status.
// This is the only way to create a fresh request; all invariants are checked.
//
// Parameters:
//   - id: unique identifier for the request
//   - requesterID: the submitting account
//   - addressID: the geocoded location of the request
//   - kind: volunteer-assistance or ambulance
//   - category: required for volunteer-assistance, CategoryNone for ambulance
//   - priority: urgent or normal
//   - description: optional free text
//   - schedule: requested date/time hints, not enforced
//
// Returns:
//   - *AssistanceRequest: the created request if all validations pass
//   - error: validation error if any parameter is invalid
func NewAssistanceRequest(
	id kernel.UUID,
	requesterID kernel.UUID,
	addressID kernel.UUID,
	kind Kind,
	category Category,
	priority Priority,
	description string,
	schedule Schedule,
) (*AssistanceRequest, error) {
	now := time.Now().UTC()
	r := &AssistanceRequest{
		status:        Pending,
		schedule:      schedule,
		description:   description,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setRequesterID(requesterID),
		r.setAddressID(addressID),
		r.setKindAndCategory(kind, category),
		r.setPriority(priority),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreAssistanceRequest reconstructs an AssistanceRequest from persistence.
// Unlike NewAssistanceRequest, it restores arbitrary lifecycle states and
// validates that the status is consistent with the assignee and that the
// rejected-by entries are well-formed.
func RestoreAssistanceRequest(
	id kernel.UUID,
	requesterID kernel.UUID,
	addressID kernel.UUID,
	kind Kind,
	category Category,
	priority Priority,
	description string,
	schedule Schedule,
	status Status,
	assignedVolunteer *kernel.UUID,
	rejectedBy []kernel.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) (*AssistanceRequest, error) {
	r := &AssistanceRequest{
		schedule:      schedule,
		description:   description,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setRequesterID(requesterID),
		r.setAddressID(addressID),
		r.setKindAndCategory(kind, category),
		r.setPriority(priority),
		r.setStatusAndAssignee(status, assignedVolunteer),
		r.setRejectedBy(rejectedBy),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the request was properly constructed through a constructor.
// Returns ErrRequestIsNotConstructed for zero values or nil receivers.
func (r *AssistanceRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}

	return nil
}

// IsEqual compares two requests by their unique identifiers.
func (r *AssistanceRequest) IsEqual(other *AssistanceRequest) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the request's unique identifier.
func (r *AssistanceRequest) ID() kernel.UUID {
	return r.id
}

// RequesterID returns the submitting account's identifier.
func (r *AssistanceRequest) RequesterID() kernel.UUID {
	return r.requesterID
}

// AddressID returns the identifier of the request's geocoded address.
func (r *AssistanceRequest) AddressID() kernel.UUID {
	return r.addressID
}

// Kind returns the request kind.
func (r *AssistanceRequest) Kind() Kind {
	return r.kind
}

// Category returns the request category (CategoryNone for ambulance requests).
func (r *AssistanceRequest) Category() Category {
	return r.category
}

// Priority returns the request priority.
func (r *AssistanceRequest) Priority() Priority {
	return r.priority
}

// Description returns the requester's free-text description.
func (r *AssistanceRequest) Description() string {
	return r.description
}

// Schedule returns the requested date/time hints.
func (r *AssistanceRequest) Schedule() Schedule {
	return r.schedule
}

// Status returns the current status of the request.
func (r *AssistanceRequest) Status() Status {
	return r.status
}

// AssignedVolunteer returns the claiming volunteer's ID, or nil while Pending.
func (r *AssistanceRequest) AssignedVolunteer() *kernel.UUID {
	return r.assignedVolunteer
}

// RejectedBy returns the set of volunteers who declined this request.
func (r *AssistanceRequest) RejectedBy() []kernel.UUID {
	return r.rejectedBy
}

// CreatedAt returns when the request was submitted.
func (r *AssistanceRequest) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the request was last modified.
func (r *AssistanceRequest) UpdatedAt() time.Time {
	return r.updatedAt
}

// ValidateApprove checks whether the request can currently be claimed,
// without performing the transition.
func (r *AssistanceRequest) ValidateApprove() error {
	return r.status.ValidateApprove()
}

// Approve claims the request for the given volunteer and moves it to Approved.
//
// Business rules:
//   - The volunteer ID must be valid
//   - The request must be Pending with no assignee
//
// This method maintains the aggregate invariant in memory. Exclusivity across
// concurrent claimants is enforced separately by the repository's atomic
// conditional update; callers must treat a zero-row update as a lost race.
func (r *AssistanceRequest) Approve(volunteerID kernel.UUID) error {
	if err := volunteerID.Validate(); err != nil {
		return err
	}

	newStatus, err := r.status.Approve()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.assignedVolunteer = &volunteerID
	r.touch()
	return nil
}

// RejectBy records that the given volunteer declined this request.
// The append is idempotent and never changes status or assignee: the request
// stays Pending and remains visible to every other volunteer.
func (r *AssistanceRequest) RejectBy(volunteerID kernel.UUID) error {
	if err := volunteerID.Validate(); err != nil {
		return err
	}

	if r.IsRejectedBy(volunteerID) {
		return nil
	}

	r.rejectedBy = append(r.rejectedBy, volunteerID)
	r.touch()
	return nil
}

// IsRejectedBy reports whether the given volunteer has declined this request.
func (r *AssistanceRequest) IsRejectedBy(volunteerID kernel.UUID) bool {
	for _, id := range r.rejectedBy {
		if id.IsEqual(volunteerID) {
			return true
		}
	}
	return false
}

// Complete marks the request as completed by its assigned volunteer.
//
// Business rules:
//   - The request must be Approved
//   - Only the assigned volunteer may complete it (ErrNotOwner otherwise)
//
// Completed is a final state; the request is retained for history.
func (r *AssistanceRequest) Complete(volunteerID kernel.UUID) error {
	if err := volunteerID.Validate(); err != nil {
		return err
	}

	if r.assignedVolunteer == nil || !r.assignedVolunteer.IsEqual(volunteerID) {
		return ErrNotOwner
	}

	newStatus, err := r.status.Complete()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.touch()
	return nil
}

func (r *AssistanceRequest) touch() {
	r.updatedAt = time.Now().UTC()
}

// setID validates and sets the request's unique identifier.
func (r *AssistanceRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

// setRequesterID validates and sets the requester reference.
func (r *AssistanceRequest) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}
	r.requesterID = requesterID
	return nil
}

// setAddressID validates and sets the address reference.
func (r *AssistanceRequest) setAddressID(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}
	r.addressID = addressID
	return nil
}

// setKindAndCategory validates that the category is present exactly when the
// kind requires one.
func (r *AssistanceRequest) setKindAndCategory(kind Kind, category Category) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	if kind == KindVolunteerAssistance {
		if err := category.Validate(); err != nil {
			if category == CategoryNone {
				return ErrCategoryIsRequired
			}
			return err
		}
	} else if category != CategoryNone {
		if err := category.Validate(); err != nil {
			return err
		}
	}

	r.kind = kind
	r.category = category
	return nil
}

// setPriority validates and sets the priority.
func (r *AssistanceRequest) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	r.priority = priority
	return nil
}

// setStatusAndAssignee validates that the restored status is consistent with
// the restored assignee.
func (r *AssistanceRequest) setStatusAndAssignee(status Status, assignee *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.ValidateCanHaveAssignee(assignee != nil); err != nil {
		return err
	}
	if assignee != nil {
		if err := assignee.Validate(); err != nil {
			return err
		}
	}

	r.status = status
	r.assignedVolunteer = assignee
	return nil
}

// setRejectedBy validates each restored rejection entry.
func (r *AssistanceRequest) setRejectedBy(rejectedBy []kernel.UUID) error {
	for _, id := range rejectedBy {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	r.rejectedBy = rejectedBy
	return nil
}
