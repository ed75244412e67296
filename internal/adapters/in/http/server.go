// Package http exposes the repair-order use cases over a JSON API. The
// caller's identity arrives in the X-User-Id and X-User-Role headers, set
// by the gateway in front of this service; requests without them are
// treated as anonymous.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"autoservice/internal/core/application/usecases/commands"
	"autoservice/internal/core/application/usecases/queries"
	"autoservice/internal/core/domain/model/account"
	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"
	"autoservice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	setStatusHandler        commands.SetStatusCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler
	updateJobsHandler       commands.UpdateJobsCommandHandler
	setVehicleFieldsHandler commands.SetVehicleFieldsCommandHandler
	linkOrdersHandler       commands.LinkOrdersCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getOrderAnonymousHandler queries.GetOrderAnonymousQueryHandler
	listOrdersHandler        queries.ListOrdersQueryHandler
	listMessagesHandler      queries.ListMessagesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	setStatusHandler commands.SetStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	updateJobsHandler commands.UpdateJobsCommandHandler,
	setVehicleFieldsHandler commands.SetVehicleFieldsCommandHandler,
	linkOrdersHandler commands.LinkOrdersCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderAnonymousHandler queries.GetOrderAnonymousQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	listMessagesHandler queries.ListMessagesQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		setStatusHandler:         setStatusHandler,
		cancelOrderHandler:       cancelOrderHandler,
		updateJobsHandler:        updateJobsHandler,
		setVehicleFieldsHandler:  setVehicleFieldsHandler,
		linkOrdersHandler:        linkOrdersHandler,
		getOrderHandler:          getOrderHandler,
		getOrderAnonymousHandler: getOrderAnonymousHandler,
		listOrdersHandler:        listOrdersHandler,
		listMessagesHandler:      listMessagesHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.POST("/orders/link", s.LinkOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.PUT("/orders/:orderId/status", s.SetStatus)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.GET("/orders/:orderId/messages", s.ListMessages)
	api.PATCH("/orders/:orderId/vehicles/:vehicleId", s.SetVehicleFields)
	api.PUT("/orders/:orderId/vehicles/:vehicleId/jobs", s.UpdateJobs)
}

// CreateOrder handles POST /api/v1/orders - places a new repair order.
// A registered customer orders under their id; an anonymous caller must
// provide a contact phone instead.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request createOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	params := commands.CreateOrderParams{
		OrderID:             kernel.NewUUID(),
		ContactName:         request.ContactName,
		ContactPhone:        request.ContactPhone,
		DriverName:          request.DriverName,
		DriverPhone:         request.DriverPhone,
		Street:              request.Street,
		City:                request.City,
		Region:              request.Region,
		Latitude:            request.Latitude,
		Longitude:           request.Longitude,
		Description:         request.Description,
		NeedEvacuator:       request.NeedEvacuator,
		NeedFieldTechnician: request.NeedFieldTechnician,
	}

	if userID, role, ok := identity(ctx); ok && role == kernel.RoleCustomer {
		params.CustomerID = &userID
		params.ContactPhone = ""
	}

	for _, spec := range request.Vehicles {
		params.Vehicles = append(params.Vehicles, commands.VehicleSpec{
			Brand:        spec.Brand,
			Model:        spec.Model,
			VehicleType:  spec.VehicleType,
			TrailerType:  spec.TrailerType,
			LicensePlate: spec.LicensePlate,
			VIN:          spec.VIN,
			Mileage:      spec.Mileage,
			Jobs:         jobSpecsFromRequest(spec.Jobs),
		})
	}

	cmd, err := commands.NewCreateOrderCommand(params)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	number, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{
		ID:     cmd.OrderID().String(),
		Number: number,
	})
}

// GetOrder handles GET /api/v1/orders/{orderId}. Authenticated callers get
// the role-projected view; anonymous callers see open orders only,
// anonymized.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	userID, role, ok := identity(ctx)
	if !ok {
		query, queryErr := queries.NewGetOrderAnonymousQuery(orderID)
		if queryErr != nil {
			return badRequest(ctx, "Invalid order id")
		}

		view, handleErr := s.getOrderAnonymousHandler.Handle(ctx.Request().Context(), query)
		if handleErr != nil {
			return respondError(ctx, handleErr)
		}
		return ctx.JSON(http.StatusOK, orderFromView(view, nil))
	}

	query, err := queries.NewGetOrderQuery(orderID, userID, role)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromView(response.View, response.Balance))
}

// ListOrders handles GET /api/v1/orders - the caller's order feed.
// Customers see their own orders; contractors see their assigned orders
// plus the open ones of their region.
func (s *Server) ListOrders(ctx echo.Context) error {
	userID, role, ok := identity(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	offset, err := intQueryParam(ctx, "offset", 0)
	if err != nil {
		return badRequest(ctx, "Invalid offset")
	}
	limit, err := intQueryParam(ctx, "limit", 0)
	if err != nil {
		return badRequest(ctx, "Invalid limit")
	}

	query, err := queries.NewListOrdersQuery(userID, role, offset, limit)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	rows, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summariesFromQuery(rows))
}

// SetStatus handles PUT /api/v1/orders/{orderId}/status - moves an order
// through its lifecycle. Accepting an order reserves funds and provisions
// the chat as one transaction.
func (s *Server) SetStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	userID, role, ok := identity(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	var request setStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewSetStatusCommand(orderID, target, userID, role)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if err = s.setStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel - archives the
// engagement as a hidden snapshot and reopens the order for other
// contractors.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	userID, role, ok := identity(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, userID, role)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateJobs handles PUT /api/v1/orders/{orderId}/vehicles/{vehicleId}/jobs -
// replaces one vehicle's job scope with the submitted set.
func (s *Server) UpdateJobs(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	vehicleID, err := pathUUID(ctx, "vehicleId")
	if err != nil {
		return badRequest(ctx, "Invalid vehicle id")
	}
	userID, role, ok := identity(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	var request updateJobsRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateJobsCommand(
		orderID, vehicleID, jobSpecsFromRequest(request.Jobs), userID, role)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if err = s.updateJobsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetVehicleFields handles PATCH /api/v1/orders/{orderId}/vehicles/{vehicleId} -
// fills in the license plate, VIN and mileage of one vehicle.
func (s *Server) SetVehicleFields(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	vehicleID, err := pathUUID(ctx, "vehicleId")
	if err != nil {
		return badRequest(ctx, "Invalid vehicle id")
	}
	userID, role, ok := identity(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	var request setVehicleFieldsRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetVehicleFieldsCommand(
		orderID, vehicleID, request.LicensePlate, request.VIN, request.Mileage, userID, role)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if err = s.setVehicleFieldsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// LinkOrders handles POST /api/v1/orders/link - adopts the anonymous
// orders placed under the caller's phone before they registered.
func (s *Server) LinkOrders(ctx echo.Context) error {
	userID, role, ok := identity(ctx)
	if !ok || role != kernel.RoleCustomer {
		return unauthorized(ctx)
	}

	var request linkOrdersRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewLinkOrdersCommand(userID, request.Phone)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if err = s.linkOrdersHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListMessages handles GET /api/v1/orders/{orderId}/messages - the chat
// history of the order, empty for non-members.
func (s *Server) ListMessages(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	userID, _, ok := identity(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	query, err := queries.NewListMessagesQuery(orderID, userID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	rows, err := s.listMessagesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, messagesFromQuery(rows))
}

func identity(ctx echo.Context) (kernel.UUID, kernel.Role, bool) {
	userID, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerUserID))
	if err != nil {
		return kernel.UUID{}, kernel.RoleUnknown, false
	}
	role, err := kernel.RoleFromString(ctx.Request().Header.Get(headerUserRole))
	if err != nil {
		return kernel.UUID{}, kernel.RoleUnknown, false
	}
	return userID, role, true
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func intQueryParam(ctx echo.Context, name string, fallback int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: "invalid_request", Message: message})
}

func unauthorized(ctx echo.Context) error {
	return ctx.JSON(http.StatusUnauthorized, Error{
		Code: "unauthorized", Message: "Identity headers are missing or malformed",
	})
}

// respondError translates domain failures into stable API codes so clients
// can branch without parsing messages.
func respondError(ctx echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError

	switch {
	case errors.As(err, &notFound):
		return ctx.JSON(http.StatusNotFound, Error{Code: "not_found", Message: err.Error()})
	case errors.Is(err, order.ErrAccessDenied):
		return ctx.JSON(http.StatusForbidden, Error{Code: "access_denied", Message: err.Error()})
	case errors.Is(err, order.ErrStatusChangeNotAllowed):
		return ctx.JSON(http.StatusForbidden, Error{Code: "change_status_not_allowed", Message: err.Error()})
	case errors.Is(err, order.ErrOrderAlreadyInProgress):
		return ctx.JSON(http.StatusConflict, Error{Code: "order_already_in_progress", Message: err.Error()})
	case errors.Is(err, order.ErrCancelOrderNotAllowed):
		return ctx.JSON(http.StatusConflict, Error{Code: "cancel_order_not_allowed", Message: err.Error()})
	case errors.Is(err, order.ErrDuplicateVin):
		return ctx.JSON(http.StatusConflict, Error{Code: "vin_already_exists_in_order", Message: err.Error()})
	case errors.Is(err, account.ErrInsufficientFunds):
		return ctx.JSON(http.StatusPaymentRequired, Error{Code: "not_enough_money_on_balance", Message: err.Error()})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{Code: "internal_error", Message: "Internal server error"})
	}
}
