package http

import "github.com/google/uuid"

// Error is the uniform error body returned by every endpoint. Code is a
// stable machine-readable identifier; clients branch on it, not on Message.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Stable error codes carried in Error.Code.
const (
	codeBadRequest          = "BAD_REQUEST"
	codeNotFound            = "NOT_FOUND"
	codeAlreadyClaimed      = "ALREADY_CLAIMED"
	codeCapacityExceeded    = "CAPACITY_EXCEEDED"
	codeLocationUnavailable = "LOCATION_UNAVAILABLE"
	codeNotOwner            = "NOT_OWNER"
	codeInternal            = "INTERNAL"
)

// GeoPointBody carries a geocoded coordinate in request and response bodies.
type GeoPointBody struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AddressBody is the address payload attached to volunteers and requests.
// Coordinate is the result of the caller's geocoding step; omit it when
// geocoding failed and the address will be stored unresolvable.
type AddressBody struct {
	Line       string        `json:"line"`
	City       string        `json:"city"`
	Postcode   string        `json:"postcode"`
	Coordinate *GeoPointBody `json:"coordinate,omitempty"`
}

// SubmitRequestBody is the payload for POST /api/v1/requests.
type SubmitRequestBody struct {
	RequesterID   uuid.UUID   `json:"requester_id"`
	Kind          string      `json:"kind"`
	Category      string      `json:"category,omitempty"`
	Priority      string      `json:"priority"`
	Description   string      `json:"description,omitempty"`
	RequestedDate string      `json:"requested_date,omitempty"`
	RequestedTime string      `json:"requested_time,omitempty"`
	Address       AddressBody `json:"address"`
}

// RegisterVolunteerBody is the payload for POST /api/v1/volunteers.
type RegisterVolunteerBody struct {
	Name        string      `json:"name"`
	HomeAddress AddressBody `json:"home_address"`
}

// CreatedResponse returns the id assigned to a newly created resource.
type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

// VolunteerActionBody identifies the volunteer performing a request action
// (approve, reject, complete).
type VolunteerActionBody struct {
	VolunteerID uuid.UUID `json:"volunteer_id"`
}

// RequestResponse is the representation of an assistance request.
type RequestResponse struct {
	ID                  uuid.UUID  `json:"id"`
	RequesterID         uuid.UUID  `json:"requester_id"`
	Kind                string     `json:"kind"`
	Category            string     `json:"category,omitempty"`
	Priority            string     `json:"priority"`
	Description         string     `json:"description,omitempty"`
	RequestedDate       string     `json:"requested_date,omitempty"`
	RequestedTime       string     `json:"requested_time,omitempty"`
	Status              string     `json:"status"`
	AssignedVolunteerID *uuid.UUID `json:"assigned_volunteer_id,omitempty"`
}

// NearbyRequestResponse is one ranked entry in a volunteer's nearby list.
type NearbyRequestResponse struct {
	Request             RequestResponse `json:"request"`
	DistanceKm          float64         `json:"distance_km"`
	EstimatedTravelTime string          `json:"estimated_travel_time"`
}

// NearbyRequestsResponse is one page of ranked nearby requests.
//
// Total counts the entries on this page after distance filtering, not the
// system-wide pool size.
type NearbyRequestsResponse struct {
	Requests          []NearbyRequestResponse `json:"requests"`
	Total             int                     `json:"total"`
	VolunteerLocation GeoPointBody            `json:"volunteer_location"`
	SearchRadiusKm    float64                 `json:"search_radius_km"`
	Timestamp         string                  `json:"timestamp"`
}

// TaskLimitResponse reports whether a volunteer can take more work.
type TaskLimitResponse struct {
	AtTaskLimit bool `json:"at_task_limit"`
}
