package services

import (
	"sort"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
)

// Candidate pairs a pending request with its resolved address coordinate.
// Callers resolve coordinates before ranking; candidates whose address could
// not be resolved must not reach the ranker.
type Candidate struct {
	Request    *request.AssistanceRequest
	Coordinate kernel.GeoPoint
}

// RankedRequest is a request that survived the matching band filter,
// decorated with its distance from the volunteer origin and a display-only
// travel time estimate.
type RankedRequest struct {
	Request             *request.AssistanceRequest
	DistanceKm          float64
	EstimatedTravelTime string
}

// RequestRanker is a domain service that ranks candidate requests for a
// volunteer by travel distance from the volunteer's home coordinate.
//
// Key responsibilities:
//   - Computing great-circle distance per candidate
//   - Filtering candidates to the admissible matching band
//   - Sorting survivors nearest-first
//
// Ranking is pure nearest-first: priority and recency are not tie-breakers.
//
// Example usage:
//
//	ranker := services.NewRequestRanker()
//	ranked, err := ranker.Rank(origin, candidates)
//	if err != nil {
//	    // a candidate or the origin was malformed
//	}
//	for _, r := range ranked {
//	    fmt.Printf("%s at %.2f km (%s)\n", r.Request.ID(), r.DistanceKm, r.EstimatedTravelTime)
//	}
type RequestRanker struct {
	minDistanceKm float64
	maxDistanceKm float64
}

// NewRequestRanker creates a ranker using the standard matching band
// [kernel.MinMatchDistanceKm, kernel.MaxMatchDistanceKm].
func NewRequestRanker() RequestRanker {
	return NewRequestRankerWithBand(kernel.MinMatchDistanceKm, kernel.MaxMatchDistanceKm)
}

// NewRequestRankerWithBand creates a ranker with an explicit matching band.
// Used by the composition root so the band is injected rather than read from
// a global.
func NewRequestRankerWithBand(minDistanceKm float64, maxDistanceKm float64) RequestRanker {
	return RequestRanker{
		minDistanceKm: minDistanceKm,
		maxDistanceKm: maxDistanceKm,
	}
}

// SearchRadiusKm returns the outer edge of the matching band, reported to
// callers as the effective search radius.
func (r RequestRanker) SearchRadiusKm() float64 {
	return r.maxDistanceKm
}

// Rank computes distances from the origin, drops candidates outside the
// matching band, and returns the survivors sorted ascending by distance.
//
// Distances below the band's minimum are treated as data errors (coincident
// or duplicate coordinates) and excluded; distances above the maximum are out
// of the volunteer's service area.
//
// Returns an error only when the origin or a candidate fails validation; a
// candidate merely outside the band is not an error.
func (r RequestRanker) Rank(origin kernel.GeoPoint, candidates []Candidate) ([]RankedRequest, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	ranked := make([]RankedRequest, 0, len(candidates))
	for _, c := range candidates {
		if err := c.Request.Validate(); err != nil {
			return nil, err
		}

		distance, err := origin.DistanceKm(c.Coordinate)
		if err != nil {
			return nil, err
		}

		if !kernel.WithinMatchBand(distance, r.minDistanceKm, r.maxDistanceKm) {
			continue
		}

		ranked = append(ranked, RankedRequest{
			Request:             c.Request,
			DistanceKm:          distance,
			EstimatedTravelTime: kernel.EstimatedTravelTime(distance),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	return ranked, nil
}
