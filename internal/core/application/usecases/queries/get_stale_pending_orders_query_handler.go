package queries

import (
	"context"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStalePendingOrdersQueryHandler finds Pending orders that outlived the
// payment window.
type GetStalePendingOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetStalePendingOrdersQueryHandler creates a handler for expiry sweep
// queries.
func NewGetStalePendingOrdersQueryHandler(db *gorm.DB) GetStalePendingOrdersQueryHandler {
	return GetStalePendingOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are ordered oldest first so the sweep
// works through the backlog in age order.
func (h GetStalePendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStalePendingOrdersQuery,
) ([]GetStalePendingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stale := make([]GetStalePendingOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, user_id
		FROM orders
		WHERE status = ? AND created_at < ?
		ORDER BY created_at
	`, order.Pending, query.Cutoff()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, userID uuid.UUID

		if err = rows.Scan(&id, &userID); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ownerID, idErr := kernel.UUIDFromBytes(userID[:])
		if idErr != nil {
			return nil, idErr
		}

		stale = append(stale, GetStalePendingOrdersQueryResponse{ID: orderID, UserID: ownerID})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stale, nil
}
