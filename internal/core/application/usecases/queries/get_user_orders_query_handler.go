package queries

import (
	"context"
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetUserOrdersQueryHandler reads a user's order history directly from the
// database, bypassing the aggregate. Read models do not need the aggregate's
// invariant machinery.
type GetUserOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUserOrdersQueryHandler creates a handler for order history queries.
// Requires a GORM database connection for query execution.
func NewGetUserOrdersQueryHandler(db *gorm.DB) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{db: db}
}

// Handle executes the query. An unknown user fails with ObjectNotFoundError
// rather than returning an empty history, so callers can tell "no such user"
// from "no orders yet". The grand total sums every row's total, with a NULL
// total coalesced to zero.
func (h GetUserOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUserOrdersQuery,
) (GetUserOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetUserOrdersQueryResponse{}, err
	}

	var userCount int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT count(1) FROM users WHERE id = ?
	`, query.UserID().Bytes()).Scan(&userCount).Error
	if err != nil {
		return GetUserOrdersQueryResponse{}, err
	}
	if userCount == 0 {
		return GetUserOrdersQueryResponse{}, errs.NewObjectNotFoundError("user", query.UserID().String())
	}

	response := GetUserOrdersQueryResponse{
		Orders:           make([]UserOrderResponse, 0),
		TotalOfAllOrders: decimal.Zero,
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			COALESCE(o.total, 0),
			COALESCE(count(i.id), 0),
			o.created_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.user_id = ?
		GROUP BY o.id, o.status, o.total, o.created_at
		ORDER BY o.created_at DESC
	`, query.UserID().Bytes()).Rows()
	if err != nil {
		return GetUserOrdersQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var status order.Status
		var total decimal.Decimal
		var itemCount int
		var createdAt time.Time

		if err = rows.Scan(&id, &status, &total, &itemCount, &createdAt); err != nil {
			return GetUserOrdersQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetUserOrdersQueryResponse{}, idErr
		}

		response.Orders = append(response.Orders, UserOrderResponse{
			ID:        orderID,
			Status:    status.String(),
			Total:     total,
			ItemCount: itemCount,
			CreatedAt: createdAt,
		})
		response.TotalOfAllOrders = response.TotalOfAllOrders.Add(total)
	}

	if err = rows.Err(); err != nil {
		return GetUserOrdersQueryResponse{}, err
	}

	return response, nil
}
