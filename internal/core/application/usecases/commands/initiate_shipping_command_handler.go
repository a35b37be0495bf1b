package commands

import (
	"context"

	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/core/ports"
	"ecommerce/internal/pkg/errs"
)

// InitiateShippingCommandHandler dispatches a Paid order: the shipping
// address (when given) is resolved through the address book and the order
// transitions to Shipped.
type InitiateShippingCommandHandler struct {
	uowFactory  OrderUoWFactory
	addressBook ports.AddressBook
}

// NewInitiateShippingCommandHandler creates a handler for shipping
// initiation.
func NewInitiateShippingCommandHandler(uowFactory OrderUoWFactory, addressBook ports.AddressBook) InitiateShippingCommandHandler {
	return InitiateShippingCommandHandler{
		uowFactory:  uowFactory,
		addressBook: addressBook,
	}
}

// Handle processes the shipping command and returns the order in its Shipped
// state. The address lookup happens before the transaction opens so an
// unknown or foreign address never acquires the row lock. Returns
// UnauthorizedError for a foreign order, ObjectNotFoundError ("address") for
// an unresolvable address and InvalidStateError when the order is not Paid.
func (h InitiateShippingCommandHandler) Handle(ctx context.Context, cmd InitiateShippingCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	addressID := cmd.AddressID()
	if addressID != nil {
		if _, err := h.addressBook.Get(ctx, cmd.UserID(), *addressID); err != nil {
			return nil, err
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if !o.IsOwnedBy(cmd.UserID()) {
		return nil, errs.NewUnauthorizedError("order", o.ID().String(), cmd.UserID().String())
	}

	if err = o.Ship(addressID); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
