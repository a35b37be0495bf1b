package queries

import (
	"context"
	"database/sql"
	"errors"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler reads one order's status from the database.
type GetOrderStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusQueryHandler creates a handler for order status queries.
func NewGetOrderStatusQueryHandler(db *gorm.DB) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db}
}

// Handle executes the query. A missing order fails with ObjectNotFoundError;
// an order owned by a different user fails with UnauthorizedError, never
// revealing the order's status.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	var status order.Status
	var ownerID uuid.UUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT status, user_id FROM orders WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	if err := row.Scan(&status, &ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderStatusQueryResponse{},
				errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderStatusQueryResponse{}, err
	}

	owner, err := kernel.UUIDFromBytes(ownerID[:])
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	if !owner.IsEqual(query.UserID()) {
		return GetOrderStatusQueryResponse{},
			errs.NewUnauthorizedError("order", query.OrderID().String(), query.UserID().String())
	}

	return GetOrderStatusQueryResponse{
		ID:     query.OrderID(),
		Status: status.String(),
	}, nil
}
