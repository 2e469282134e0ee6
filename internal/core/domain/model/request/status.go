package request

import (
	"fmt"

	"aidmatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an assistance request.
// It implements a state machine with defined transitions to ensure
// requests follow the correct workflow.
//
// State transitions:
//
//	Pending ──> Approved ──> Completed
//	   │
//	   └── (rejections accumulate without changing state)
//
// Per-volunteer rejection never moves a request out of Pending; it only
// hides the request from the rejecting volunteer's future matches.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a request is first submitted.
	// Pending requests are the matching pool: visible to nearby volunteers
	// who have not rejected them.
	Pending

	// Approved indicates the request has been claimed by exactly one volunteer.
	Approved

	// Completed indicates the assigned volunteer finished the task.
	// This is a final state; completed requests are retained for history.
	Completed
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Approved:  "Approved",
		Completed: "Completed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Approved:  "Approved",
		Completed: "Completed",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Approved, Completed.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateApprove checks whether the status allows a claim without performing
// the transition.
//
// Only Pending requests can be approved. Re-approval of an Approved request
// is not allowed: the claim is exclusive and happens at most once.
func (s Status) ValidateApprove() error {
	if s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to approve", s.String()),
		)
	}
	return nil
}

// ValidateCanHaveAssignee validates the consistency between request status and
// volunteer assignment.
//
// Business rules:
//   - Pending requests must not have an assigned volunteer
//   - Approved and Completed requests must have an assigned volunteer
func (s Status) ValidateCanHaveAssignee(assignee bool) error {
	if assignee && s != Approved && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have an assigned volunteer", s.String()),
		)
	}

	if !assignee && (s == Approved || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no assigned volunteer", s.String()),
		)
	}

	return nil
}

// Approve transitions the status to Approved.
//
// Valid transitions:
//   - Pending -> Approved (the exclusive claim)
//
// Returns:
//   - (Approved, nil) on valid transition
//   - (0, error) if the request is not Pending
func (s Status) Approve() (Status, error) {
	if err := s.ValidateApprove(); err != nil {
		return 0, err
	}

	return Approved, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Approved -> Completed (assigned volunteer finished the task)
//
// Completed is a final state with no further transitions possible.
func (s Status) Complete() (Status, error) {
	if s != Approved {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}
