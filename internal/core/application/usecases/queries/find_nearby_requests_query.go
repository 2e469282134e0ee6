// Package queries contains read-side operations in the CQRS architecture.
// Query handlers never modify state; they assemble views over the repositories
// and tolerate ordinary read staleness — a request claimed microseconds ago
// may still appear in a nearby list and is resolved at claim time instead.
package queries

import (
	"errors"
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/pkg/guard"
)

var (
	ErrFindNearbyRequestsQueryIsNotConstructed = errors.New(
		"FindNearbyRequestsQuery must be created via NewFindNearbyRequestsQuery constructor",
	)

	// ErrLocationUnavailable is returned when the volunteer has no geocoded
	// home address: matching cannot proceed without an origin. Recoverable by
	// re-submitting an address.
	ErrLocationUnavailable = errors.New("volunteer location unavailable")
)

// categoryFilterAll is the filter value meaning "no category narrowing".
const categoryFilterAll = "all"

// FindNearbyRequestsQuery asks for one page of pending requests reachable
// from a volunteer's home coordinate, ranked nearest-first.
//
// Example:
//
//	query, err := NewFindNearbyRequestsQuery(volunteerID, 1, "", "all")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, query)
//	if errors.Is(err, ErrLocationUnavailable) {
//	    // ask the volunteer to register a home address
//	}
type FindNearbyRequestsQuery struct { //nolint:recvcheck //using for validation
	volunteerID    kernel.UUID
	page           int
	searchText     string
	categoryFilter string

	guard guard.ConstructorGuard
}

// NewFindNearbyRequestsQuery creates a nearby-requests query.
//
// Parameters:
//   - volunteerID: the already-authenticated volunteer asking for work
//   - page: 1-based page number; values below 1 are clamped to 1
//   - searchText: optional free-text filter on descriptions, empty for none
//   - categoryFilter: "all" or empty for no filter, "ambulance" for the
//     ambulance kind, any other value for a volunteer-assistance category
func NewFindNearbyRequestsQuery(
	volunteerID kernel.UUID,
	page int,
	searchText string,
	categoryFilter string,
) (FindNearbyRequestsQuery, error) {
	q := FindNearbyRequestsQuery{
		searchText:     searchText,
		categoryFilter: categoryFilter,
		guard:          guard.NewConstructorGuard(),
	}

	if err := q.setVolunteerID(volunteerID); err != nil {
		return FindNearbyRequestsQuery{}, err
	}
	q.setPage(page)

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrFindNearbyRequestsQueryIsNotConstructed if validation fails.
func (q FindNearbyRequestsQuery) Validate() error {
	return q.guard.Validate(ErrFindNearbyRequestsQueryIsNotConstructed)
}

// VolunteerID returns the identifier of the volunteer asking for work.
func (q FindNearbyRequestsQuery) VolunteerID() kernel.UUID {
	return q.volunteerID
}

// Page returns the 1-based page number.
func (q FindNearbyRequestsQuery) Page() int {
	return q.page
}

// SearchText returns the optional description filter.
func (q FindNearbyRequestsQuery) SearchText() string {
	return q.searchText
}

// CategoryFilter returns the raw category filter value.
func (q FindNearbyRequestsQuery) CategoryFilter() string {
	return q.categoryFilter
}

func (q *FindNearbyRequestsQuery) setVolunteerID(volunteerID kernel.UUID) error {
	if err := volunteerID.Validate(); err != nil {
		return err
	}
	q.volunteerID = volunteerID
	return nil
}

func (q *FindNearbyRequestsQuery) setPage(page int) {
	if page < 1 {
		page = 1
	}
	q.page = page
}

// NearbyRequest is one ranked entry in a volunteer's nearby list.
type NearbyRequest struct {
	Request             *request.AssistanceRequest
	DistanceKm          float64
	EstimatedTravelTime string
}

// FindNearbyRequestsQueryResponse is one page of ranked nearby requests plus
// matching metadata.
//
// Total counts the survivors of distance filtering within this fetched page
// only, not eligible pending requests system-wide: distance filtering happens
// after the repository-level page is fetched. Callers must not treat it as a
// global count.
type FindNearbyRequestsQueryResponse struct {
	Requests          []NearbyRequest
	Total             int
	VolunteerLocation kernel.GeoPoint
	SearchRadiusKm    float64
	Timestamp         time.Time
}
