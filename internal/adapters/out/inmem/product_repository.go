// Package inmem provides an in-memory product store with the same atomic
// reservation semantics as the postgres adapter. Used by tests and by local
// runs that do not need durable inventory.
package inmem

import (
	"context"
	"sync"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/product"
	"ecommerce/internal/pkg/errs"
)

// entry holds one product's state under its own lock, so reservations of
// different products never contend with each other.
type entry struct {
	mu       sync.Mutex
	name     string
	desc     string
	price    kernel.Money
	quantity int
}

// ProductRepository is a thread-safe in-memory implementation of
// ports.ProductRepository. A reservation checks and decrements stock under
// the product's lock, which makes the check-and-decrement atomic the same
// way the database's conditional update does.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*entry
}

// NewProductRepository creates an empty in-memory product repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[string]*entry),
	}
}

// Add stores a new product.
func (r *ProductRepository) Add(_ context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := aggregate.ID().String()
	if _, exists := r.products[key]; exists {
		return errs.NewValueIsInvalidError("product ID")
	}

	r.products[key] = &entry{
		name:     aggregate.Name(),
		desc:     aggregate.Description(),
		price:    aggregate.Price(),
		quantity: aggregate.Quantity(),
	}
	return nil
}

// Get retrieves a product by ID.
func (r *ProductRepository) Get(_ context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return product.RestoreProduct(id, e.name, e.desc, e.price, e.quantity)
}

// Reserve atomically decrements available stock by quantity.
func (r *ProductRepository) Reserve(_ context.Context, id kernel.UUID, quantity int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}

	e, err := r.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.quantity < quantity {
		return errs.NewInsufficientStockError(e.name, id.String(), quantity, e.quantity)
	}

	e.quantity -= quantity
	return nil
}

// Release returns quantity to available stock.
func (r *ProductRepository) Release(_ context.Context, id kernel.UUID, quantity int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}

	e, err := r.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.quantity += quantity
	return nil
}

func (r *ProductRepository) lookup(id kernel.UUID) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.products[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", id.String())
	}
	return e, nil
}
