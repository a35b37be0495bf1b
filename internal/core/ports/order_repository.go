package ports

import (
	"context"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order and its line items are stored and loaded as one unit; all
// operations on a single order are atomic with respect to each other.
// Business invariants are the engine's responsibility, not the repository's.
type OrderRepository interface {
	// Add persists a new order aggregate together with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order's mutable fields
	// (status, shipping address). Line items never change after creation.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks it against concurrent
	// writers for the remainder of the surrounding transaction. This is the
	// serialization point for per-order mutations: status re-checks must
	// happen after this call, not before.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByUser retrieves all orders owned by the given user.
	ListByUser(ctx context.Context, userID kernel.UUID) ([]*order.Order, error)

	// ListByUserInStatus retrieves the user's orders in the given status.
	ListByUserInStatus(ctx context.Context, userID kernel.UUID, status order.Status) ([]*order.Order, error)

	// Delete removes the order record and its line items.
	Delete(ctx context.Context, id kernel.UUID) error
}
