// Package http exposes the delivery lifecycle over a JSON API.
//
// Actor identity arrives in the X-Actor-ID header; authentication itself is
// terminated upstream and out of scope here. Error responses share one
// shape, with the HTTP code derived from the domain error: unknown object
// 404, invalid input 400, authorization failure 403, illegal transition 400
// with the allowed targets listed, concurrent-update conflict 409.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"couriertrack/internal/core/application/usecases/commands"
	"couriertrack/internal/core/application/usecases/queries"
	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const actorHeader = "X-Actor-ID"

// Notifier receives successfully changed deliveries for asynchronous
// fan-out. May be nil when notifications are disabled.
type Notifier interface {
	Enqueue(aggregate *delivery.Delivery)
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createDeliveryHandler commands.CreateDeliveryCommandHandler
	assignRiderHandler    commands.AssignRiderCommandHandler
	changeStatusHandler   commands.ChangeDeliveryStatusCommandHandler

	// Query handlers
	getDeliveriesHandler      queries.GetDeliveriesQueryHandler
	getDeliveryHistoryHandler queries.GetDeliveryHistoryQueryHandler

	notifier Notifier
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	assignRiderHandler commands.AssignRiderCommandHandler,
	changeStatusHandler commands.ChangeDeliveryStatusCommandHandler,
	getDeliveriesHandler queries.GetDeliveriesQueryHandler,
	getDeliveryHistoryHandler queries.GetDeliveryHistoryQueryHandler,
	notifier Notifier,
) *Server {
	return &Server{
		createDeliveryHandler:     createDeliveryHandler,
		assignRiderHandler:        assignRiderHandler,
		changeStatusHandler:       changeStatusHandler,
		getDeliveriesHandler:      getDeliveriesHandler,
		getDeliveryHistoryHandler: getDeliveryHistoryHandler,
		notifier:                  notifier,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/deliveries", s.CreateDelivery)
	api.GET("/deliveries", s.GetDeliveries)
	api.PUT("/deliveries/:id/status", s.ChangeDeliveryStatus)
	api.PUT("/deliveries/:id/assign", s.AssignRider)
	api.GET("/deliveries/:id/history", s.GetDeliveryHistory)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateDelivery handles POST /api/v1/deliveries - registers a new delivery.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	actorID, ok := actorFromHeader(ctx)
	if !ok {
		return nil
	}

	var req CreateDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	businessID, err := kernel.UUIDFromString(req.BusinessID)
	if err != nil {
		return badRequest(ctx, "Invalid business ID: "+err.Error())
	}

	pickup, err := delivery.NewContact(req.Pickup.Address, req.Pickup.Name, req.Pickup.Phone)
	if err != nil {
		return badRequest(ctx, "Invalid pickup contact: "+err.Error())
	}

	dropoff, err := delivery.NewContact(req.Dropoff.Address, req.Dropoff.Name, req.Dropoff.Phone)
	if err != nil {
		return badRequest(ctx, "Invalid dropoff contact: "+err.Error())
	}

	cmd, err := commands.NewCreateDeliveryCommand(
		kernel.NewUUID(),
		businessID,
		pickup,
		dropoff,
		req.PackageDescription,
		actorID,
	)
	if err != nil {
		return badRequest(ctx, "Invalid delivery data: "+err.Error())
	}

	created, err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toDeliveryResponse(created))
}

// GetDeliveries handles GET /api/v1/deliveries - lists deliveries for the
// dashboard, newest first, optionally filtered by status.
func (s *Server) GetDeliveries(ctx echo.Context) error {
	var statusFilter *delivery.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := delivery.ParseStatus(raw)
		if err != nil {
			return badRequest(ctx, "Invalid status filter: "+err.Error())
		}
		statusFilter = &parsed
	}

	limit, err := intQueryParam(ctx, "limit")
	if err != nil {
		return badRequest(ctx, "Invalid limit: "+err.Error())
	}
	offset, err := intQueryParam(ctx, "offset")
	if err != nil {
		return badRequest(ctx, "Invalid offset: "+err.Error())
	}

	query, err := queries.NewGetDeliveriesQuery(statusFilter, limit, offset)
	if err != nil {
		return badRequest(ctx, "Invalid paging: "+err.Error())
	}

	rows, err := s.getDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]DeliveryListItem, len(rows))
	for i, row := range rows {
		response[i] = toDeliveryListItem(row)
	}
	return ctx.JSON(http.StatusOK, response)
}

// ChangeDeliveryStatus handles PUT /api/v1/deliveries/:id/status - moves a
// delivery along its lifecycle.
func (s *Server) ChangeDeliveryStatus(ctx echo.Context) error {
	actorID, ok := actorFromHeader(ctx)
	if !ok {
		return nil
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery ID: "+err.Error())
	}

	var req ChangeStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	targetStatus, err := delivery.ParseStatus(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewChangeDeliveryStatusCommand(deliveryID, actorID, targetStatus, req.Note)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	updated, err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	if s.notifier != nil {
		s.notifier.Enqueue(updated)
	}
	return ctx.JSON(http.StatusOK, toDeliveryResponse(updated))
}

// AssignRider handles PUT /api/v1/deliveries/:id/assign - assigns or
// reassigns a rider.
func (s *Server) AssignRider(ctx echo.Context) error {
	actorID, ok := actorFromHeader(ctx)
	if !ok {
		return nil
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery ID: "+err.Error())
	}

	var req AssignRiderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return badRequest(ctx, "Invalid rider ID: "+err.Error())
	}

	cmd, err := commands.NewAssignRiderCommand(deliveryID, actorID, riderID)
	if err != nil {
		return badRequest(ctx, "Invalid assignment: "+err.Error())
	}

	updated, err := s.assignRiderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	if s.notifier != nil {
		s.notifier.Enqueue(updated)
	}
	return ctx.JSON(http.StatusOK, toDeliveryResponse(updated))
}

// GetDeliveryHistory handles GET /api/v1/deliveries/:id/history - returns
// the audit trail of one delivery in chronological order.
func (s *Server) GetDeliveryHistory(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery ID: "+err.Error())
	}

	query, err := queries.NewGetDeliveryHistoryQuery(deliveryID)
	if err != nil {
		return badRequest(ctx, "Invalid history query: "+err.Error())
	}

	rows, err := s.getDeliveryHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]EventResponse, len(rows))
	for i, row := range rows {
		response[i] = toEventResponse(row)
	}
	return ctx.JSON(http.StatusOK, response)
}

// actorFromHeader extracts the calling actor's identity. Requests without a
// parseable identity are rejected before any handler runs; the bool result
// reports whether handling should continue.
func actorFromHeader(ctx echo.Context) (kernel.UUID, bool) {
	raw := ctx.Request().Header.Get(actorHeader)
	if raw == "" {
		_ = ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Missing " + actorHeader + " header",
		})
		return kernel.UUID{}, false
	}

	actorID, err := kernel.UUIDFromString(raw)
	if err != nil {
		_ = ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Invalid " + actorHeader + " header",
		})
		return kernel.UUID{}, false
	}
	return actorID, true
}

func intQueryParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError translates a domain failure into the matching HTTP response.
func domainError(ctx echo.Context, err error) error {
	var illegal *delivery.IllegalTransitionError
	if errors.As(err, &illegal) {
		allowed := make([]string, len(illegal.Allowed))
		for i, s := range illegal.Allowed {
			allowed[i] = s.String()
		}
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:               http.StatusBadRequest,
			Message:            err.Error(),
			AllowedTransitions: allowed,
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrOperationForbidden):
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrVersionConflict):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
