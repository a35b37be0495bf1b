package ports

import (
	"context"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/product"
)

// ProductRepository combines the product catalog read contract with the
// inventory store's atomic adjustment operations.
//
// Reserve is the defining correctness point of order creation: for any
// interleaving of concurrent callers, the sum of successful reservations for
// a product never exceeds its available quantity. Implementations must make
// the read-check-decrement a single indivisible step per product (a
// conditional UPDATE in SQL, a per-product lock in memory), with the change
// visible to subsequent reservations immediately.
type ProductRepository interface {
	// Add persists a new product.
	Add(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// Reserve atomically decrements the available quantity if at least the
	// requested amount is available. Fails with InsufficientStockError
	// (naming the product and the shortfall) or ObjectNotFoundError.
	Reserve(ctx context.Context, id kernel.UUID, quantity int) error

	// Release atomically restores quantity to a product. Used for
	// compensation on cancellation, removal and mid-creation rollback.
	Release(ctx context.Context, id kernel.UUID, quantity int) error
}
