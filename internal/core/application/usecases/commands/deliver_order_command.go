package commands

import (
	"errors"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand is a command to run the full fulfilment flow for a
// Paid order: ship it to the given address and confirm delivery.
type DeliverOrderCommand struct {
	orderID   kernel.UUID
	userID    kernel.UUID
	addressID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeliverOrderCommand creates a new DeliverOrderCommand with validation.
// addressID may be nil when the order ships without a recorded address.
func NewDeliverOrderCommand(orderID, userID kernel.UUID, addressID *kernel.UUID) (DeliverOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		userID.Validate(),
		validateOptionalUUID(addressID),
	); err != nil {
		return DeliverOrderCommand{}, err
	}

	return DeliverOrderCommand{
		orderID:   orderID,
		userID:    userID,
		addressID: copyOptionalUUID(addressID),

		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c DeliverOrderCommand) UserID() kernel.UUID {
	return c.userID
}

func (c DeliverOrderCommand) AddressID() *kernel.UUID {
	return copyOptionalUUID(c.addressID)
}
