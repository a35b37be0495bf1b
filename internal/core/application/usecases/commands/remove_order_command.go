package commands

import (
	"errors"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/guard"
)

var ErrRemoveOrderCommandIsNotConstructed = errors.New(
	"RemoveOrderCommand must be created via NewRemoveOrderCommand constructor",
)

// RemoveOrderCommand is a command to delete an order record outright,
// returning its reserved stock regardless of the order's state.
type RemoveOrderCommand struct {
	orderID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveOrderCommand creates a new RemoveOrderCommand with validation.
func NewRemoveOrderCommand(orderID, userID kernel.UUID) (RemoveOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		userID.Validate(),
	); err != nil {
		return RemoveOrderCommand{}, err
	}

	return RemoveOrderCommand{
		orderID: orderID,
		userID:  userID,

		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveOrderCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderCommandIsNotConstructed)
}

func (c RemoveOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RemoveOrderCommand) UserID() kernel.UUID {
	return c.userID
}
