package commands

import (
	"errors"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/guard"
)

var ErrInitiateShippingCommandIsNotConstructed = errors.New(
	"InitiateShippingCommand must be created via NewInitiateShippingCommand constructor",
)

// InitiateShippingCommand is a command to move a Paid order into Shipped,
// optionally recording the shipping address it was dispatched to.
type InitiateShippingCommand struct {
	orderID   kernel.UUID
	userID    kernel.UUID
	addressID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewInitiateShippingCommand creates a new InitiateShippingCommand with
// validation. addressID may be nil when the order ships without a recorded
// address.
func NewInitiateShippingCommand(orderID, userID kernel.UUID, addressID *kernel.UUID) (InitiateShippingCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		userID.Validate(),
		validateOptionalUUID(addressID),
	); err != nil {
		return InitiateShippingCommand{}, err
	}

	return InitiateShippingCommand{
		orderID:   orderID,
		userID:    userID,
		addressID: copyOptionalUUID(addressID),

		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c InitiateShippingCommand) Validate() error {
	return c.guard.Validate(ErrInitiateShippingCommandIsNotConstructed)
}

func (c InitiateShippingCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c InitiateShippingCommand) UserID() kernel.UUID {
	return c.userID
}

func (c InitiateShippingCommand) AddressID() *kernel.UUID {
	return copyOptionalUUID(c.addressID)
}

func validateOptionalUUID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	return id.Validate()
}

func copyOptionalUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	clone := *id
	return &clone
}
