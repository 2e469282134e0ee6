// Package http exposes the matching engine over a REST API.
// It coordinates between HTTP handlers and application use cases, translating
// domain errors into the stable error codes clients branch on.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"aidmatch/internal/core/application/usecases/commands"
	"aidmatch/internal/core/application/usecases/queries"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/core/domain/model/volunteer"
	"aidmatch/internal/core/ports"
	"aidmatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// AddressWriter persists geocoded addresses submitted alongside volunteers
// and requests.
type AddressWriter interface {
	Put(ctx context.Context, addressID kernel.UUID, line, city, postcode string, coordinate *kernel.GeoPoint) error
}

// Server handles HTTP requests for the matching engine.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	submitRequestHandler     commands.SubmitRequestCommandHandler
	registerVolunteerHandler commands.RegisterVolunteerCommandHandler
	approveRequestHandler    commands.ApproveRequestCommandHandler
	rejectRequestHandler     commands.RejectRequestCommandHandler
	completeRequestHandler   commands.CompleteRequestCommandHandler

	// Query handlers
	findNearbyRequestsHandler queries.FindNearbyRequestsQueryHandler
	checkTaskLimitHandler     queries.CheckTaskLimitQueryHandler

	addressWriter AddressWriter
	logger        *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	submitRequestHandler commands.SubmitRequestCommandHandler,
	registerVolunteerHandler commands.RegisterVolunteerCommandHandler,
	approveRequestHandler commands.ApproveRequestCommandHandler,
	rejectRequestHandler commands.RejectRequestCommandHandler,
	completeRequestHandler commands.CompleteRequestCommandHandler,
	findNearbyRequestsHandler queries.FindNearbyRequestsQueryHandler,
	checkTaskLimitHandler queries.CheckTaskLimitQueryHandler,
	addressWriter AddressWriter,
	logger *slog.Logger,
) *Server {
	return &Server{
		submitRequestHandler:      submitRequestHandler,
		registerVolunteerHandler:  registerVolunteerHandler,
		approveRequestHandler:     approveRequestHandler,
		rejectRequestHandler:      rejectRequestHandler,
		completeRequestHandler:    completeRequestHandler,
		findNearbyRequestsHandler: findNearbyRequestsHandler,
		checkTaskLimitHandler:     checkTaskLimitHandler,
		addressWriter:             addressWriter,
		logger:                    logger.With("component", "http"),
	}
}

// RegisterRoutes attaches all endpoints to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/requests", s.SubmitRequest)
	api.POST("/requests/:request_id/approve", s.ApproveRequest)
	api.POST("/requests/:request_id/reject", s.RejectRequest)
	api.POST("/requests/:request_id/complete", s.CompleteRequest)

	api.POST("/volunteers", s.RegisterVolunteer)
	api.GET("/volunteers/:volunteer_id/nearby-requests", s.GetNearbyRequests)
	api.GET("/volunteers/:volunteer_id/task-limit", s.GetTaskLimit)
}

// SubmitRequest handles POST /api/v1/requests - submits a new assistance
// request into the pending pool. The request's address is persisted first so
// its coordinate is available to matching the moment the request is visible.
func (s *Server) SubmitRequest(ctx echo.Context) error {
	var body SubmitRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	kind, err := request.KindFromString(body.Kind)
	if err != nil {
		return badRequest(ctx, "Invalid kind: "+body.Kind)
	}

	category := request.CategoryNone
	if body.Category != "" {
		category, err = request.CategoryFromString(body.Category)
		if err != nil {
			return badRequest(ctx, "Invalid category: "+body.Category)
		}
	}

	priority := request.PriorityNormal
	if body.Priority != "" {
		priority, err = request.PriorityFromString(body.Priority)
		if err != nil {
			return badRequest(ctx, "Invalid priority: "+body.Priority)
		}
	}

	requesterID, err := kernel.UUIDFromBytes(body.RequesterID[:])
	if err != nil {
		return badRequest(ctx, "Invalid requester id")
	}

	addressID, err := s.storeAddress(ctx.Request().Context(), body.Address)
	if err != nil {
		return s.fail(ctx, err, "Failed to store request address")
	}

	requestID := kernel.NewUUID()
	cmd, err := commands.NewSubmitRequestCommand(
		requestID, requesterID, addressID,
		kind, category, priority,
		body.Description,
		request.Schedule{Date: body.RequestedDate, Time: body.RequestedTime},
	)
	if err != nil {
		return badRequest(ctx, "Invalid request data: "+err.Error())
	}

	if err := s.submitRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to submit request")
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: requestID.Bytes()})
}

// RegisterVolunteer handles POST /api/v1/volunteers - registers a volunteer
// with a geocoded home address.
func (s *Server) RegisterVolunteer(ctx echo.Context) error {
	var body RegisterVolunteerBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	addressID, err := s.storeAddress(ctx.Request().Context(), body.HomeAddress)
	if err != nil {
		return s.fail(ctx, err, "Failed to store home address")
	}

	volunteerID := kernel.NewUUID()
	cmd, err := commands.NewRegisterVolunteerCommand(volunteerID, body.Name, addressID)
	if err != nil {
		return badRequest(ctx, "Invalid volunteer data: "+err.Error())
	}

	if err := s.registerVolunteerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to register volunteer")
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: volunteerID.Bytes()})
}

// ApproveRequest handles POST /api/v1/requests/:request_id/approve - the
// volunteer claims the request exclusively.
func (s *Server) ApproveRequest(ctx echo.Context) error {
	requestID, volunteerID, err := s.bindRequestAction(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewApproveRequestCommand(requestID, volunteerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	claimed, err := s.approveRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to approve request")
	}

	return ctx.JSON(http.StatusOK, toRequestResponse(claimed))
}

// RejectRequest handles POST /api/v1/requests/:request_id/reject - the
// volunteer removes the request from their own feed. The request stays
// pending and visible to everyone else.
func (s *Server) RejectRequest(ctx echo.Context) error {
	requestID, volunteerID, err := s.bindRequestAction(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewRejectRequestCommand(requestID, volunteerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.rejectRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to reject request")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteRequest handles POST /api/v1/requests/:request_id/complete - the
// assigned volunteer marks the task done, freeing one capacity slot.
func (s *Server) CompleteRequest(ctx echo.Context) error {
	requestID, volunteerID, err := s.bindRequestAction(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCompleteRequestCommand(requestID, volunteerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	completed, err := s.completeRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to complete request")
	}

	return ctx.JSON(http.StatusOK, toRequestResponse(completed))
}

// GetNearbyRequests handles GET /api/v1/volunteers/:volunteer_id/nearby-requests.
// Query parameters: page (1-based), search (description filter), category
// ("all", "ambulance", or a volunteer-assistance category).
func (s *Server) GetNearbyRequests(ctx echo.Context) error {
	volunteerID, err := kernel.UUIDFromString(ctx.Param("volunteer_id"))
	if err != nil {
		return badRequest(ctx, "Invalid volunteer id")
	}

	page := 1
	if raw := ctx.QueryParam("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "Invalid page: "+raw)
		}
	}

	query, err := queries.NewFindNearbyRequestsQuery(
		volunteerID, page,
		ctx.QueryParam("search"),
		ctx.QueryParam("category"),
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.findNearbyRequestsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to find nearby requests")
	}

	entries := make([]NearbyRequestResponse, len(result.Requests))
	for i, entry := range result.Requests {
		entries[i] = NearbyRequestResponse{
			Request:             toRequestResponse(entry.Request),
			DistanceKm:          entry.DistanceKm,
			EstimatedTravelTime: entry.EstimatedTravelTime,
		}
	}

	return ctx.JSON(http.StatusOK, NearbyRequestsResponse{
		Requests: entries,
		Total:    result.Total,
		VolunteerLocation: GeoPointBody{
			Latitude:  result.VolunteerLocation.Lat(),
			Longitude: result.VolunteerLocation.Lon(),
		},
		SearchRadiusKm: result.SearchRadiusKm,
		Timestamp:      result.Timestamp.Format(time.RFC3339),
	})
}

// GetTaskLimit handles GET /api/v1/volunteers/:volunteer_id/task-limit.
func (s *Server) GetTaskLimit(ctx echo.Context) error {
	volunteerID, err := kernel.UUIDFromString(ctx.Param("volunteer_id"))
	if err != nil {
		return badRequest(ctx, "Invalid volunteer id")
	}

	query, err := queries.NewCheckTaskLimitQuery(volunteerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	atLimit, err := s.checkTaskLimitHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to check task limit")
	}

	return ctx.JSON(http.StatusOK, TaskLimitResponse{AtTaskLimit: atLimit})
}

// storeAddress persists the submitted address and returns its new id.
func (s *Server) storeAddress(ctx context.Context, body AddressBody) (kernel.UUID, error) {
	addressID := kernel.NewUUID()

	var coordinate *kernel.GeoPoint
	if body.Coordinate != nil {
		point, err := kernel.NewGeoPoint(body.Coordinate.Latitude, body.Coordinate.Longitude)
		if err != nil {
			return kernel.UUID{}, err
		}
		coordinate = &point
	}

	if err := s.addressWriter.Put(ctx, addressID, body.Line, body.City, body.Postcode, coordinate); err != nil {
		return kernel.UUID{}, err
	}

	return addressID, nil
}

// bindRequestAction extracts the request id from the path and the acting
// volunteer id from the body.
func (s *Server) bindRequestAction(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	requestID, err := kernel.UUIDFromString(ctx.Param("request_id"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid request id")
	}

	var body VolunteerActionBody
	if err := ctx.Bind(&body); err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid request body")
	}

	volunteerID, err := kernel.UUIDFromBytes(body.VolunteerID[:])
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid volunteer id")
	}

	return requestID, volunteerID, nil
}

// fail maps a use-case error onto the HTTP error taxonomy. Expected domain
// outcomes get their own status and code; everything else is logged and
// reported as an opaque 500.
func (s *Server) fail(ctx echo.Context, err error, message string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{Code: codeNotFound, Message: err.Error()})
	case errors.Is(err, ports.ErrAlreadyClaimed):
		return ctx.JSON(http.StatusConflict, Error{Code: codeAlreadyClaimed, Message: err.Error()})
	case errors.Is(err, volunteer.ErrCapacityExceeded):
		return ctx.JSON(http.StatusConflict, Error{Code: codeCapacityExceeded, Message: err.Error()})
	case errors.Is(err, queries.ErrLocationUnavailable):
		return ctx.JSON(http.StatusUnprocessableEntity, Error{Code: codeLocationUnavailable, Message: err.Error()})
	case errors.Is(err, request.ErrNotOwner):
		return ctx.JSON(http.StatusForbidden, Error{Code: codeNotOwner, Message: err.Error()})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{Code: codeBadRequest, Message: err.Error()})
	}

	s.logger.ErrorContext(ctx.Request().Context(), message, "error", err)
	return ctx.JSON(http.StatusInternalServerError, Error{Code: codeInternal, Message: message})
}

// badRequest writes a 400 with the uniform error body.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: codeBadRequest, Message: message})
}

// toRequestResponse converts an assistance request aggregate to its wire form.
func toRequestResponse(aggregate *request.AssistanceRequest) RequestResponse {
	resp := RequestResponse{
		ID:            aggregate.ID().Bytes(),
		RequesterID:   aggregate.RequesterID().Bytes(),
		Kind:          aggregate.Kind().String(),
		Priority:      aggregate.Priority().String(),
		Description:   aggregate.Description(),
		RequestedDate: aggregate.Schedule().Date,
		RequestedTime: aggregate.Schedule().Time,
		Status:        aggregate.Status().String(),
	}

	if aggregate.Category() != request.CategoryNone {
		resp.Category = aggregate.Category().String()
	}

	if assignee := aggregate.AssignedVolunteer(); assignee != nil {
		raw := assignee.Bytes()
		resp.AssignedVolunteerID = &raw
	}

	return resp
}
