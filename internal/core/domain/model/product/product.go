package product

import (
	"errors"
	"fmt"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/errs"
)

// ErrProductIsNotConstructed is returned when a Product instance was not
// created through the NewProduct or RestoreProduct factory functions.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product represents a catalog item with a finite available quantity.
//
// Product follows these invariants:
//   - Must have a valid unique identifier
//   - Name must not be empty
//   - Unit price must be a valid non-negative amount
//   - Available quantity is never negative
//
// The available quantity is mutated only through the inventory store's atomic
// reserve/release operations; Product itself is a read-mostly view of the
// catalog that the engine snapshots price and name from at order creation.
type Product struct {
	id          kernel.UUID
	name        string
	description string
	price       kernel.Money
	quantity    int

	guard kernel.ConstructorGuard
}

// NewProduct creates a new Product with validation. This is the only way to
// create a valid Product for a fresh catalog entry.
func NewProduct(id kernel.UUID, name string, description string, price kernel.Money, quantity int) (*Product, error) {
	p := &Product{
		description: description,
		guard:       kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
		p.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a Product from persistence. The same invariants
// apply; repositories call this after mapping database rows.
func RestoreProduct(id kernel.UUID, name string, description string, price kernel.Money, quantity int) (*Product, error) {
	return NewProduct(id, name, description, price, quantity)
}

// Validate ensures the Product was created through a constructor.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// Description returns the product's description.
func (p *Product) Description() string {
	return p.description
}

// Price returns the current unit price.
func (p *Product) Price() kernel.Money {
	return p.price
}

// Quantity returns the available quantity as of the last read.
func (p *Product) Quantity() int {
	return p.quantity
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	p.price = price
	return nil
}

func (p *Product) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is negative", quantity),
		)
	}
	p.quantity = quantity
	return nil
}
