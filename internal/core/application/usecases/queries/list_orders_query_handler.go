package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves the orders visible to an actor from the
// database. Visibility is applied in SQL so a role only ever reads its own
// rows; admins read everything.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(db)
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle lists the actor's orders, newest first.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statement := selectOrderColumns + ` FROM orders`
	args := make([]any, 0, 1)

	switch query.Actor().Role() {
	case order.RoleAdmin:
		// no filter
	case order.RoleCustomer:
		statement += ` WHERE customer_id = ?`
		args = append(args, query.Actor().ID().String())
	case order.RoleMerchant:
		statement += ` WHERE merchant_id = ?`
		args = append(args, query.Actor().ID().String())
	case order.RoleDriver:
		statement += ` WHERE driver_id = ?`
		args = append(args, query.Actor().ID().String())
	default:
		return []OrderResponse{}, nil
	}

	statement += ` ORDER BY created_at DESC, id`

	rows, err := h.db.WithContext(ctx).Raw(statement, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		aggregate, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, toOrderResponse(aggregate))
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
