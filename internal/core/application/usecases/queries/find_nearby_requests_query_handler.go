package queries

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/core/domain/services"
	"aidmatch/internal/core/ports"
	"aidmatch/internal/pkg/errs"
)

// FindNearbyRequestsQueryHandler assembles a volunteer's nearby-requests page.
//
// Algorithm:
//  1. Resolve the volunteer's home coordinate (ErrLocationUnavailable if the
//     volunteer has no geocoded address — matching needs an origin)
//  2. Fetch one repository page of claimable candidates, excluding requests
//     this volunteer already rejected, with optional search/category filters
//  3. Resolve each candidate's coordinate; candidates without one are
//     silently dropped and logged — one malformed record must not abort the
//     whole query
//  4. Rank survivors by distance within the matching band, nearest first
//
// The handler is read-only and tolerates ordinary read staleness; losing a
// race for a displayed request surfaces later as AlreadyClaimed at claim time.
type FindNearbyRequestsQueryHandler struct {
	requestRepo     ports.RequestRepository
	volunteerRepo   ports.VolunteerRepository
	addressProvider ports.AddressProvider
	ranker          services.RequestRanker
	pageSize        int
	logger          *slog.Logger
}

// NewFindNearbyRequestsQueryHandler creates a handler for nearby-request queries.
// All collaborators are injected explicitly; pass ports.MatchingPageSize for
// the standard page size.
func NewFindNearbyRequestsQueryHandler(
	requestRepo ports.RequestRepository,
	volunteerRepo ports.VolunteerRepository,
	addressProvider ports.AddressProvider,
	ranker services.RequestRanker,
	pageSize int,
	logger *slog.Logger,
) FindNearbyRequestsQueryHandler {
	return FindNearbyRequestsQueryHandler{
		requestRepo:     requestRepo,
		volunteerRepo:   volunteerRepo,
		addressProvider: addressProvider,
		ranker:          ranker,
		pageSize:        pageSize,
		logger:          logger.With("component", "find_nearby_requests"),
	}
}

// Handle executes the nearby-requests query.
//
// Failure modes:
//   - errs.ErrObjectNotFound: unknown volunteer id
//   - ErrLocationUnavailable: the volunteer has no geocoded home address
//
// A candidate request without a resolvable coordinate is never an error; it
// is skipped and logged.
func (h FindNearbyRequestsQueryHandler) Handle(
	ctx context.Context,
	query FindNearbyRequestsQuery,
) (FindNearbyRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return FindNearbyRequestsQueryResponse{}, err
	}

	seeker, err := h.volunteerRepo.Get(ctx, query.VolunteerID())
	if err != nil {
		return FindNearbyRequestsQueryResponse{}, err
	}

	origin, err := h.addressProvider.GetCoordinates(ctx, seeker.HomeAddressID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return FindNearbyRequestsQueryResponse{}, ErrLocationUnavailable
		}
		return FindNearbyRequestsQueryResponse{}, err
	}

	filter, err := h.buildFilter(query)
	if err != nil {
		return FindNearbyRequestsQueryResponse{}, err
	}

	page, err := h.requestRepo.GetPendingPage(ctx, filter)
	if err != nil {
		return FindNearbyRequestsQueryResponse{}, err
	}

	candidates := make([]services.Candidate, 0, len(page))
	for _, candidate := range page {
		coordinate, coordErr := h.addressProvider.GetCoordinates(ctx, candidate.AddressID())
		if coordErr != nil {
			if errors.Is(coordErr, errs.ErrObjectNotFound) {
				h.logger.WarnContext(ctx, "Skipping request without resolvable coordinates",
					"request_id", candidate.ID().String())
				continue
			}
			return FindNearbyRequestsQueryResponse{}, coordErr
		}

		candidates = append(candidates, services.Candidate{
			Request:    candidate,
			Coordinate: coordinate,
		})
	}

	ranked, err := h.ranker.Rank(origin, candidates)
	if err != nil {
		return FindNearbyRequestsQueryResponse{}, err
	}

	nearby := make([]NearbyRequest, 0, len(ranked))
	for _, r := range ranked {
		nearby = append(nearby, NearbyRequest{
			Request:             r.Request,
			DistanceKm:          r.DistanceKm,
			EstimatedTravelTime: r.EstimatedTravelTime,
		})
	}

	return FindNearbyRequestsQueryResponse{
		Requests:          nearby,
		Total:             len(nearby),
		VolunteerLocation: origin,
		SearchRadiusKm:    h.ranker.SearchRadiusKm(),
		Timestamp:         time.Now().UTC(),
	}, nil
}

// buildFilter translates the raw category filter into repository terms:
// "ambulance" selects the ambulance kind, any other non-"all" value selects
// a volunteer-assistance category.
func (h FindNearbyRequestsQueryHandler) buildFilter(query FindNearbyRequestsQuery) (ports.PendingFilter, error) {
	filter := ports.PendingFilter{
		ExcludeVolunteer: query.VolunteerID(),
		SearchText:       query.SearchText(),
		Page:             query.Page(),
		PageSize:         h.pageSize,
	}

	raw := query.CategoryFilter()
	if raw == "" || raw == categoryFilterAll {
		return filter, nil
	}

	if raw == request.KindAmbulance.String() {
		filter.Kind = request.KindAmbulance
		return filter, nil
	}

	category, err := request.CategoryFromString(raw)
	if err != nil {
		return ports.PendingFilter{}, err
	}
	filter.Category = category

	return filter, nil
}
