package commands

import (
	"errors"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand is a command to move a Shipped order into Delivered.
type MarkDeliveredCommand struct {
	orderID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a new MarkDeliveredCommand with validation.
func NewMarkDeliveredCommand(orderID, userID kernel.UUID) (MarkDeliveredCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		userID.Validate(),
	); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return MarkDeliveredCommand{
		orderID: orderID,
		userID:  userID,

		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

func (c MarkDeliveredCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c MarkDeliveredCommand) UserID() kernel.UUID {
	return c.userID
}
