package volunteer

import (
	"errors"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/errs"
	"aidmatch/internal/pkg/guard"
)

// DefaultTaskCeiling is the maximum number of simultaneously active
// (approved, not yet completed) assignments a volunteer may hold.
const DefaultTaskCeiling = 5

// Domain errors for volunteer operations.
var (
	// ErrNameIsRequired is returned when attempting to create a volunteer without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrVolunteerIsNotConstructed is returned when using an improperly initialized Volunteer.
	ErrVolunteerIsNotConstructed = errors.New("Volunteer must be created via NewVolunteer constructor")
	// ErrCapacityExceeded is returned when a volunteer at the task ceiling
	// attempts to take on another assignment.
	ErrCapacityExceeded = errors.New("volunteer is at the active task ceiling")
)

// Volunteer represents a volunteer account's matching-relevant state.
// It is an aggregate root that manages the volunteer's home location reference
// and the denormalized count of active assignments.
//
// Business rules:
//   - Volunteer must have a valid UUID, non-empty name, and valid home address reference
//   - taskCount is never negative
//   - taskCount is incremented exactly once per successful claim and
//     decremented exactly once per completion (floored at zero)
//   - A volunteer at the task ceiling cannot begin new tasks
//
// The counter is denormalized by design: the admission check before a claim
// must stay O(1) and never count requests at read time.
type Volunteer struct {
	// id uniquely identifies the volunteer
	id kernel.UUID
	// name is the human-readable name of the volunteer
	name string
	// homeAddressID references the geocoded location used as the matching origin
	homeAddressID kernel.UUID
	// taskCount is the number of currently active assignments
	taskCount int
	// guard ensures the volunteer was properly constructed
	guard guard.ConstructorGuard
}

// NewVolunteer creates a new Volunteer with zero active assignments.
//
// Parameters:
//   - id: unique identifier for the volunteer
//   - name: human-readable name (must be non-empty)
//   - homeAddressID: reference to the volunteer's geocoded home address
//
// Returns:
//   - *Volunteer: a fully initialized volunteer ready for matching
//   - error: validation error if any parameter is invalid
func NewVolunteer(id kernel.UUID, name string, homeAddressID kernel.UUID) (*Volunteer, error) {
	v := &Volunteer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setName(name),
		v.setHomeAddressID(homeAddressID),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreVolunteer reconstructs a Volunteer aggregate from persistent storage,
// including its active task count.
func RestoreVolunteer(id kernel.UUID, name string, homeAddressID kernel.UUID, taskCount int) (*Volunteer, error) {
	v := &Volunteer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setName(name),
		v.setHomeAddressID(homeAddressID),
		v.setTaskCount(taskCount),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// Validate checks if the Volunteer was properly constructed via a constructor.
func (v *Volunteer) Validate() error {
	if v == nil {
		return ErrVolunteerIsNotConstructed
	}
	return v.guard.Validate(ErrVolunteerIsNotConstructed)
}

// IsEqual compares two volunteers by their unique identifiers.
func (v *Volunteer) IsEqual(other *Volunteer) bool {
	return other != nil && v.id.IsEqual(other.id)
}

// ID returns the volunteer's unique identifier.
func (v *Volunteer) ID() kernel.UUID {
	return v.id
}

// Name returns the volunteer's name.
func (v *Volunteer) Name() string {
	return v.name
}

// HomeAddressID returns the reference to the volunteer's geocoded home address.
func (v *Volunteer) HomeAddressID() kernel.UUID {
	return v.homeAddressID
}

// TaskCount returns the number of currently active assignments.
func (v *Volunteer) TaskCount() int {
	return v.taskCount
}

// AtTaskLimit reports whether the volunteer has reached the given ceiling.
// This is the cheap pre-flight admission check; the claim itself re-checks
// capacity inside its transaction.
func (v *Volunteer) AtTaskLimit(ceiling int) bool {
	return v.taskCount >= ceiling
}

// BeginTask records a successful claim by incrementing the active task count.
//
// Returns ErrCapacityExceeded, without mutating anything, when the volunteer
// is already at the ceiling.
func (v *Volunteer) BeginTask(ceiling int) error {
	if v.AtTaskLimit(ceiling) {
		return ErrCapacityExceeded
	}

	v.taskCount++
	return nil
}

// FinishTask records a completion by decrementing the active task count.
// The counter floors at zero so a stray double-completion can never drive
// it negative.
func (v *Volunteer) FinishTask() {
	if v.taskCount > 0 {
		v.taskCount--
	}
}

// setID validates and sets the volunteer's unique identifier.
func (v *Volunteer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

// setName validates and sets the volunteer's name.
func (v *Volunteer) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	v.name = name
	return nil
}

// setHomeAddressID validates and sets the home address reference.
func (v *Volunteer) setHomeAddressID(homeAddressID kernel.UUID) error {
	if err := homeAddressID.Validate(); err != nil {
		return err
	}
	v.homeAddressID = homeAddressID
	return nil
}

// setTaskCount validates and sets the restored active task count.
func (v *Volunteer) setTaskCount(taskCount int) error {
	if taskCount < 0 {
		return errs.NewValueIsInvalidError("taskCount")
	}
	v.taskCount = taskCount
	return nil
}
