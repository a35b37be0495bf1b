package commands

import (
	"errors"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand is a command to cancel a Pending or Paid order and
// release its reserved stock.
type CancelOrderCommand struct {
	orderID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a new CancelOrderCommand with validation.
func NewCancelOrderCommand(orderID, userID kernel.UUID) (CancelOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		userID.Validate(),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID: orderID,
		userID:  userID,

		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderCommand) UserID() kernel.UUID {
	return c.userID
}
