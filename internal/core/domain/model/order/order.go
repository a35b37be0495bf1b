package order

import (
	"errors"
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a customer order. It exclusively owns its
// line items and drives the lifecycle from creation through payment, shipment
// and delivery, or cancellation.
//
// Order maintains these invariants:
//   - Must have a valid unique identifier and owning user
//   - Must have at least one line item
//   - Total always equals the sum of line item subtotals
//   - Status transitions follow the Pending/Paid/Shipped/Delivered/Cancelled
//     state machine; Delivered and Cancelled are terminal
//   - Line items are fixed at creation: snapshot pricing never changes
//
// The struct uses private fields so all mutation goes through validated
// methods; the repository is the only writer path for persistence.
type Order struct {
	id                kernel.UUID
	userID            kernel.UUID
	createdAt         time.Time
	status            Status
	items             []LineItem
	total             kernel.Money
	shippingAddressID *kernel.UUID

	isConstructed bool
}

// NewOrder creates a new Order in Pending status from already-built line
// items. The total is derived from the item subtotals; an empty item list is
// rejected, since an order reserves stock for at least one product.
func NewOrder(id kernel.UUID, userID kernel.UUID, createdAt time.Time, items []LineItem) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setCreatedAt(createdAt),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.recalculateTotal()
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its status
// and optional shipping address. The total invariant is re-derived from the
// restored line items rather than trusted from storage.
func RestoreOrder(
	id kernel.UUID,
	userID kernel.UUID,
	createdAt time.Time,
	status Status,
	items []LineItem,
	shippingAddressID *kernel.UUID,
) (*Order, error) {
	o, err := NewOrder(id, userID, createdAt, items)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	o.status = status

	if shippingAddressID != nil {
		if err = shippingAddressID.Validate(); err != nil {
			return nil, err
		}
		addressID := *shippingAddressID
		o.shippingAddressID = &addressID
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the identifier of the owning user.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// CreatedAt returns the order creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Items returns the order's line items. The returned slice is a copy so
// callers cannot break the total invariant.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Total returns the order total, the sum of all line item subtotals.
func (o *Order) Total() kernel.Money {
	return o.total
}

// ShippingAddressID returns the attached shipping address identifier.
// Returns nil if no address was attached.
func (o *Order) ShippingAddressID() *kernel.UUID {
	return o.shippingAddressID
}

// IsOwnedBy reports whether the order belongs to the given user.
func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.userID.IsEqual(userID)
}

// Pay marks the order as paid after a confirmed gateway charge.
// Only a Pending order may be paid: this enforces the at-most-once charge
// rule for already-paid and cancelled orders.
func (o *Order) Pay() error {
	newStatus, err := o.status.Pay()
	if err != nil {
		return o.stateError(err)
	}

	o.status = newStatus
	return nil
}

// Ship marks the order as shipped, optionally attaching a previously
// validated shipping address. Only a Paid order may be shipped.
func (o *Order) Ship(shippingAddressID *kernel.UUID) error {
	newStatus, err := o.status.Ship()
	if err != nil {
		return o.stateError(err)
	}

	if shippingAddressID != nil {
		if err = shippingAddressID.Validate(); err != nil {
			return err
		}
		addressID := *shippingAddressID
		o.shippingAddressID = &addressID
	}

	o.status = newStatus
	return nil
}

// Deliver marks the order as delivered. Only a Shipped order may be
// delivered; Delivered is terminal.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return o.stateError(err)
	}

	o.status = newStatus
	return nil
}

// Cancel marks the order as cancelled. Permitted from Pending and Paid only;
// a second cancellation fails, so inventory compensation runs exactly once.
// Releasing the reserved stock is the caller's responsibility; the aggregate
// does not reach across to the inventory store.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return o.stateError(err)
	}

	o.status = newStatus
	return nil
}

// stateError stamps the order's identifier into a status transition error.
func (o *Order) stateError(err error) error {
	var stateErr *errs.InvalidStateError
	if errors.As(err, &stateErr) {
		return errs.NewInvalidStateError(stateErr.Entity, o.id.String(), stateErr.Current, stateErr.Expected)
	}
	return err
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

// recalculateTotal re-derives the total from line item subtotals. Items never
// change after construction, so this runs once per constructed order.
func (o *Order) recalculateTotal() {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	o.total = total
}
