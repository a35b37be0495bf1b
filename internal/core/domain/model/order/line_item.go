package order

import (
	"errors"
	"fmt"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/errs"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created
// through the NewLineItem or RestoreLineItem factory functions.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is an entity owned exclusively by an Order. It references a
// product by identifier and carries a snapshot of the product's unit price
// and name taken at order-creation time.
//
// Snapshot pricing is an invariant: once built, a line item's price, name and
// subtotal never change, regardless of later catalog edits. The subtotal is
// always unit price times quantity.
type LineItem struct {
	id          kernel.UUID
	productID   kernel.UUID
	quantity    int
	unitPrice   kernel.Money
	productName string
	subtotal    kernel.Money

	guard kernel.ConstructorGuard
}

// NewLineItem creates a line item at order-creation time, snapshotting the
// product's price and name and deriving the subtotal. Quantity must be
// positive.
func NewLineItem(id kernel.UUID, productID kernel.UUID, quantity int, unitPrice kernel.Money, productName string) (LineItem, error) {
	item := LineItem{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
		item.setProductName(productName),
	); err != nil {
		return LineItem{}, err
	}

	item.subtotal = unitPrice.MulQuantity(quantity)
	return item, nil
}

// RestoreLineItem reconstructs a line item from persistence. The persisted
// subtotal is checked against the snapshot invariant rather than recomputed
// silently, so storage corruption surfaces as an error.
func RestoreLineItem(
	id kernel.UUID,
	productID kernel.UUID,
	quantity int,
	unitPrice kernel.Money,
	productName string,
	subtotal kernel.Money,
) (LineItem, error) {
	item, err := NewLineItem(id, productID, quantity, unitPrice, productName)
	if err != nil {
		return LineItem{}, err
	}

	if !item.subtotal.IsEqual(subtotal) {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"subtotal",
			fmt.Errorf("%s does not equal %s * %d", subtotal.String(), unitPrice.String(), quantity),
		)
	}

	return item, nil
}

// Validate ensures the line item was created through a constructor.
func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// ID returns the line item's unique identifier.
func (li LineItem) ID() kernel.UUID {
	return li.id
}

// ProductID returns the identifier of the referenced product.
func (li LineItem) ProductID() kernel.UUID {
	return li.productID
}

// Quantity returns the ordered quantity.
func (li LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the unit price snapshot taken at order creation.
func (li LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

// ProductName returns the product name snapshot taken at order creation.
func (li LineItem) ProductName() string {
	return li.productName
}

// Subtotal returns unit price times quantity.
func (li LineItem) Subtotal() kernel.Money {
	return li.subtotal
}

func (li *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.id = id
	return nil
}

func (li *LineItem) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	li.productID = productID
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	li.quantity = quantity
	return nil
}

func (li *LineItem) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	li.unitPrice = unitPrice
	return nil
}

func (li *LineItem) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	li.productName = productName
	return nil
}
