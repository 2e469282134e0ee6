// Package ports defines repository and collaborator interfaces for the
// assistance-matching domain. These interfaces establish contracts between
// the domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"
	"errors"
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
)

// ErrAlreadyClaimed is returned by RequestRepository.Claim when the
// conditional update matched zero rows because another volunteer claimed the
// request first. It is an expected, frequent outcome of normal contention and
// must never be logged as an unexpected server error.
var ErrAlreadyClaimed = errors.New("request already claimed by another volunteer")

// MatchingPageSize is the fixed number of candidates fetched per repository
// page when building a volunteer's nearby list.
const MatchingPageSize = 4

// PendingFilter describes one page of the matching candidate set: pending,
// unassigned requests not yet rejected by the excluded volunteer, optionally
// narrowed by a free-text search and a kind or category filter.
type PendingFilter struct {
	// ExcludeVolunteer removes requests this volunteer has already rejected.
	ExcludeVolunteer kernel.UUID

	// SearchText optionally filters on the request description. Empty means no filter.
	SearchText string

	// Kind optionally filters by request kind. KindUnknown means no kind filter.
	Kind request.Kind

	// Category optionally filters by category. CategoryNone means no category filter.
	Category request.Category

	// Page is the 1-based page number, ordered by arrival.
	Page int

	// PageSize is the number of candidates per page.
	PageSize int
}

// RequestRepository defines the persistence contract for assistance-request
// aggregates. Beyond plain CRUD it exposes the two operations with
// concurrency-sensitive semantics: the atomic claim and the idempotent
// rejection append.
type RequestRepository interface {
	// Add persists a new request aggregate to storage.
	Add(ctx context.Context, aggregate *request.AssistanceRequest) error

	// Update persists changes to an existing request aggregate.
	Update(ctx context.Context, aggregate *request.AssistanceRequest) error

	// Get retrieves a request aggregate by its unique identifier.
	// Returns an error matching errs.ErrObjectNotFound for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*request.AssistanceRequest, error)

	// GetPendingPage retrieves one page of claimable candidates: status
	// Pending, no assigned volunteer, and the excluded volunteer absent from
	// the rejected-by set, with the filter's optional narrowing applied.
	// Ordering is by arrival (creation time) for stable pagination; distance
	// filtering and ranking happen after the page is fetched.
	GetPendingPage(ctx context.Context, filter PendingFilter) ([]*request.AssistanceRequest, error)

	// Claim atomically transitions a request from pending/unassigned to
	// approved/assigned for the given volunteer. The store performs the
	// transition as a single conditional update keyed on the current status;
	// there is no read-then-write gap for a concurrent claimant to slip into.
	//
	// Returns the claimed aggregate on success, ErrAlreadyClaimed when
	// another volunteer won the race, or an error matching
	// errs.ErrObjectNotFound when the id is unknown.
	Claim(ctx context.Context, requestID kernel.UUID, volunteerID kernel.UUID) (*request.AssistanceRequest, error)

	// AppendRejection idempotently adds the volunteer to the request's
	// rejected-by set. Status and assignee are untouched; the request stays
	// visible to every other volunteer. Returns an error matching
	// errs.ErrObjectNotFound when the id is unknown.
	AppendRejection(ctx context.Context, requestID kernel.UUID, volunteerID kernel.UUID) error

	// CountPending returns the size of the unassigned pending pool.
	CountPending(ctx context.Context) (int64, error)

	// CountPendingOlderThan returns how many unassigned pending requests
	// were created before the cutoff. A growing value signals requests no
	// volunteer is picking up.
	CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
