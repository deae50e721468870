// Package http implements the inbound HTTP adapter. Server fulfils the
// generated ServerInterface and translates between wire types and the
// application's commands and queries. Caller identity arrives in the
// X-User-Id and X-User-Role headers, which an upstream gateway is expected
// to have authenticated.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       *commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	dispatchOrderHandler     commands.DispatchOrderCommandHandler
	updateLocationHandler    commands.UpdateLocationCommandHandler
	removeLocationHandler    commands.RemoveLocationCommandHandler
	setAvailabilityHandler   commands.SetAvailabilityCommandHandler

	// Query handlers
	getOrderHandler      queries.GetOrderQueryHandler
	listOrdersHandler    queries.ListOrdersQueryHandler
	nearbyDriversHandler queries.NearbyDriversQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler *commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	dispatchOrderHandler commands.DispatchOrderCommandHandler,
	updateLocationHandler commands.UpdateLocationCommandHandler,
	removeLocationHandler commands.RemoveLocationCommandHandler,
	setAvailabilityHandler commands.SetAvailabilityCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	nearbyDriversHandler queries.NearbyDriversQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		dispatchOrderHandler:     dispatchOrderHandler,
		updateLocationHandler:    updateLocationHandler,
		removeLocationHandler:    removeLocationHandler,
		setAvailabilityHandler:   setAvailabilityHandler,
		getOrderHandler:          getOrderHandler,
		listOrdersHandler:        listOrdersHandler,
		nearbyDriversHandler:     nearbyDriversHandler,
	}
}

// CreateOrder handles POST /api/v1/orders. The caller becomes the order's
// customer; driver assignment happens asynchronously after the 201.
func (s *Server) CreateOrder(ctx echo.Context, params servers.CreateOrderParams) error {
	actor, err := actorFromHeaders(params.XUserId, params.XUserRole)
	if err != nil {
		return writeError(ctx, err)
	}

	var body servers.NewOrder
	if err = ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	merchantID, err := kernel.UUIDFromBytes(body.MerchantId[:])
	if err != nil {
		return writeError(ctx, err)
	}

	pickup, err := kernel.NewGeoPoint(body.Pickup.Latitude, body.Pickup.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}
	dropoff, err := kernel.NewGeoPoint(body.Dropoff.Latitude, body.Dropoff.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]order.Item, 0, len(body.Items))
	for _, row := range body.Items {
		item, itemErr := order.NewItem(row.Name, row.Quantity, row.UnitPrice)
		if itemErr != nil {
			return writeError(ctx, itemErr)
		}
		items = append(items, item)
	}

	notes := ""
	if body.Notes != nil {
		notes = *body.Notes
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), actor.ID(), merchantID, pickup, dropoff, items, notes)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromAggregate(created))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	actor, err := actorFromHeaders(params.XUserId, params.XUserRole)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewListOrdersQuery(actor)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = orderFromResponse(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(
	ctx echo.Context,
	orderId openapi_types.UUID,
	params servers.GetOrderParams,
) error {
	actor, err := actorFromHeaders(params.XUserId, params.XUserRole)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromResponse(response))
}

// UpdateOrderStatus handles POST /api/v1/orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(
	ctx echo.Context,
	orderId openapi_types.UUID,
	params servers.UpdateOrderStatusParams,
) error {
	actor, err := actorFromHeaders(params.XUserId, params.XUserRole)
	if err != nil {
		return writeError(ctx, err)
	}

	var body servers.StatusUpdate
	if err = ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	target, err := order.StatusFromString(string(body.Status))
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(updated))
}

// DispatchOrder handles POST /api/v1/orders/{orderId}/dispatch. A run that
// finds no eligible driver returns 200 with assigned=false; only an order
// that already left created status is a conflict.
func (s *Server) DispatchOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := servers.DispatchResult{Assigned: result.Assigned}
	if result.DriverID != nil {
		driverID := result.DriverID.Bytes()
		response.DriverId = &driverID
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateDriverLocation handles PUT /api/v1/drivers/{driverId}/location.
func (s *Server) UpdateDriverLocation(ctx echo.Context, driverId openapi_types.UUID) error {
	var body servers.GeoPoint
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromBytes(driverId[:])
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateLocationCommand(driverID, body.Latitude, body.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveDriverLocation handles DELETE /api/v1/drivers/{driverId}/location.
func (s *Server) RemoveDriverLocation(ctx echo.Context, driverId openapi_types.UUID) error {
	driverID, err := kernel.UUIDFromBytes(driverId[:])
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRemoveLocationCommand(driverID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.removeLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetDriverAvailability handles PUT /api/v1/drivers/{driverId}/availability.
func (s *Server) SetDriverAvailability(ctx echo.Context, driverId openapi_types.UUID) error {
	var body servers.AvailabilityUpdate
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromBytes(driverId[:])
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSetAvailabilityCommand(driverID, body.Available)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.setAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetNearbyDrivers handles GET /api/v1/drivers/nearby.
func (s *Server) GetNearbyDrivers(ctx echo.Context, params servers.GetNearbyDriversParams) error {
	radiusKm := 0.0
	if params.RadiusKm != nil {
		radiusKm = *params.RadiusKm
	}

	query, err := queries.NewNearbyDriversQuery(params.Lat, params.Lng, radiusKm)
	if err != nil {
		return writeError(ctx, err)
	}

	drivers, err := s.nearbyDriversHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.NearbyDriver, len(drivers))
	for i, d := range drivers {
		response[i] = servers.NearbyDriver{
			DriverId:   d.DriverID.Bytes(),
			Latitude:   d.Latitude,
			Longitude:  d.Longitude,
			DistanceKm: d.DistanceKm,
			UpdatedAt:  d.UpdatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// actorFromHeaders builds the domain actor from the identity headers.
func actorFromHeaders(userID openapi_types.UUID, roleRaw string) (order.Actor, error) {
	id, err := kernel.UUIDFromBytes(userID[:])
	if err != nil {
		return order.Actor{}, err
	}

	role, err := order.RoleFromString(roleRaw)
	if err != nil {
		return order.Actor{}, err
	}

	return order.NewActor(id, role)
}

// writeError maps domain and application errors onto HTTP statuses.
// Access errors win over conflicts so a non-party never learns lifecycle
// details of someone else's order.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, order.ErrActorNotParty),
		errors.Is(err, order.ErrRoleForbidden):
		return errorJSON(ctx, http.StatusForbidden, err.Error())

	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())

	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrDriverAlreadySet),
		errors.Is(err, commands.ErrOrderAlreadyDispatched):
		return errorJSON(ctx, http.StatusConflict, err.Error())

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return errorJSON(ctx, http.StatusBadRequest, err.Error())

	case errors.Is(err, errs.ErrPersistenceFailed):
		return errorJSON(ctx, http.StatusInternalServerError, "Storage operation failed")

	default:
		return errorJSON(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{
		Code:    int32(code), //nolint:gosec //http status codes fit in int32
		Message: message,
	})
}

func orderFromAggregate(aggregate *order.Order) servers.Order {
	items := make([]servers.OrderItem, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, servers.OrderItem{
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	response := servers.Order{
		Id:         aggregate.ID().Bytes(),
		CustomerId: aggregate.CustomerID().Bytes(),
		MerchantId: aggregate.MerchantID().Bytes(),
		Pickup: servers.GeoPoint{
			Latitude:  aggregate.Pickup().Latitude(),
			Longitude: aggregate.Pickup().Longitude(),
		},
		Dropoff: servers.GeoPoint{
			Latitude:  aggregate.Dropoff().Latitude(),
			Longitude: aggregate.Dropoff().Longitude(),
		},
		Items:      items,
		TotalPrice: aggregate.TotalPrice(),
		Status:     servers.OrderStatus(aggregate.Status().String()),
		CreatedAt:  aggregate.CreatedAt(),
		UpdatedAt:  aggregate.UpdatedAt(),
	}

	if notes := aggregate.Notes(); notes != "" {
		response.Notes = &notes
	}
	if driverID := aggregate.Driver(); driverID != nil {
		raw := driverID.Bytes()
		response.DriverId = &raw
	}

	return response
}

func orderFromResponse(o queries.OrderResponse) servers.Order {
	items := make([]servers.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, servers.OrderItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	response := servers.Order{
		Id:         o.ID.Bytes(),
		CustomerId: o.CustomerID.Bytes(),
		MerchantId: o.MerchantID.Bytes(),
		Pickup: servers.GeoPoint{
			Latitude:  o.Pickup.Latitude(),
			Longitude: o.Pickup.Longitude(),
		},
		Dropoff: servers.GeoPoint{
			Latitude:  o.Dropoff.Latitude(),
			Longitude: o.Dropoff.Longitude(),
		},
		Items:      items,
		TotalPrice: o.TotalPrice,
		Status:     servers.OrderStatus(o.Status.String()),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}

	if o.Notes != "" {
		notes := o.Notes
		response.Notes = &notes
	}
	if o.DriverID != nil {
		raw := o.DriverID.Bytes()
		response.DriverId = &raw
	}

	return response
}
