package commands

import (
	"errors"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/errs"
	"ecommerce/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// RequestedItem is a caller's request for a quantity of one product.
// Price and name snapshots are taken by the handler from the live catalog,
// never supplied by the caller.
type RequestedItem struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand represents a request to create a new order for a user
// from a list of requested items.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), userID, []RequestedItem{
//	    {ProductID: widgetID, Quantity: 2},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	userID  kernel.UUID
	items   []RequestedItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order and user identifiers are valid and that at least
// one item is requested. Per-item quantity and product existence are checked
// by the handler against the live catalog.
func NewCreateOrderCommand(orderID kernel.UUID, userID kernel.UUID, items []RequestedItem) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the identifier of the ordering user.
func (c CreateOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// Items returns the requested items.
func (c CreateOrderCommand) Items() []RequestedItem {
	items := make([]RequestedItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setItems(items []RequestedItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}

	for _, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return err
		}
	}

	c.items = make([]RequestedItem, len(items))
	copy(c.items, items)
	return nil
}
