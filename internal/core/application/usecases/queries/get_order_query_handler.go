package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order from the database and enforces
// party-level visibility before returning it.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	response, err := handler.Handle(ctx, query)
//	if errors.Is(err, order.ErrActorNotParty) {
//	    // requester is not a party to this order
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle fetches the order and checks that the actor is one of its parties.
// A non-party actor receives order.ErrActorNotParty even when the order
// exists, so the response does not leak the order's presence details.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(
		selectOrderColumns+` FROM orders WHERE id = ?`,
		query.OrderID().String(),
	).Rows()
	if err != nil {
		return OrderResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderResponse{}, err
		}
		return OrderResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
	}

	aggregate, err := scanOrderRow(rows)
	if err != nil {
		return OrderResponse{}, err
	}

	if !aggregate.IsParty(query.Actor()) {
		return OrderResponse{}, fmt.Errorf("%w: user %s on order %s",
			order.ErrActorNotParty, query.Actor().ID(), aggregate.ID())
	}

	return toOrderResponse(aggregate), nil
}

const selectOrderColumns = `
	SELECT
		id,
		customer_id,
		merchant_id,
		driver_id,
		pickup_lat,
		pickup_lng,
		dropoff_lat,
		dropoff_lng,
		items,
		notes,
		total_price,
		status,
		created_at,
		updated_at`

// orderItemRow mirrors the jsonb encoding of one order line in the items
// column.
type orderItemRow struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// scanOrderRow reads one row produced by selectOrderColumns and rebuilds the
// domain aggregate. Going through RestoreOrder keeps the read side on the
// same validation and party rules as the write side.
func scanOrderRow(rows *sql.Rows) (*order.Order, error) {
	var (
		id, customerID, merchantID uuid.UUID
		driverID                   uuid.NullUUID
		pickupLat, pickupLng       float64
		dropoffLat, dropoffLng     float64
		itemsJSON                  []byte
		notes, statusRaw           string
		totalPrice                 float64
		createdAt, updatedAt       sql.NullTime
	)

	err := rows.Scan(
		&id,
		&customerID,
		&merchantID,
		&driverID,
		&pickupLat,
		&pickupLng,
		&dropoffLat,
		&dropoffLng,
		&itemsJSON,
		&notes,
		&totalPrice,
		&statusRaw,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	customer, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return nil, err
	}
	merchant, err := kernel.UUIDFromBytes(merchantID[:])
	if err != nil {
		return nil, err
	}

	var driver *kernel.UUID
	if driverID.Valid {
		d, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
		if idErr != nil {
			return nil, idErr
		}
		driver = &d
	}

	pickup, err := kernel.NewGeoPoint(pickupLat, pickupLng)
	if err != nil {
		return nil, err
	}
	dropoff, err := kernel.NewGeoPoint(dropoffLat, dropoffLng)
	if err != nil {
		return nil, err
	}

	var itemRows []orderItemRow
	if err = json.Unmarshal(itemsJSON, &itemRows); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}

	items := make([]order.Item, 0, len(itemRows))
	for _, row := range itemRows {
		item, itemErr := order.NewItem(row.Name, row.Quantity, row.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	status, err := order.StatusFromString(statusRaw)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		orderID,
		customer,
		merchant,
		driver,
		pickup,
		dropoff,
		items,
		notes,
		totalPrice,
		status,
		createdAt.Time,
		updatedAt.Time,
	)
}

func toOrderResponse(aggregate *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemResponse{
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return OrderResponse{
		ID:         aggregate.ID(),
		CustomerID: aggregate.CustomerID(),
		MerchantID: aggregate.MerchantID(),
		DriverID:   aggregate.Driver(),
		Pickup:     aggregate.Pickup(),
		Dropoff:    aggregate.Dropoff(),
		Items:      items,
		Notes:      aggregate.Notes(),
		TotalPrice: aggregate.TotalPrice(),
		Status:     aggregate.Status(),
		CreatedAt:  aggregate.CreatedAt(),
		UpdatedAt:  aggregate.UpdatedAt(),
	}
}
