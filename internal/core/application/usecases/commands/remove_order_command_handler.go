package commands

import (
	"context"

	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/pkg/errs"
)

// RemoveOrderCommandHandler deletes an order record and its line items.
// Unlike cancellation this works in any state; it exists for cleaning up
// abandoned or test orders rather than for the customer-facing lifecycle.
type RemoveOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewRemoveOrderCommandHandler creates a handler for order removal.
func NewRemoveOrderCommandHandler(uowFactory UoWFactory) RemoveOrderCommandHandler {
	return RemoveOrderCommandHandler{uowFactory: uowFactory}
}

// Handle deletes the order. Stock still held by the order (any non-Cancelled
// state) is released in the same transaction; a Cancelled order already
// returned its stock, so removal releases nothing.
func (h RemoveOrderCommandHandler) Handle(ctx context.Context, cmd RemoveOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !o.IsOwnedBy(cmd.UserID()) {
		return errs.NewUnauthorizedError("order", o.ID().String(), cmd.UserID().String())
	}

	if o.Status() != order.Cancelled {
		if err = releaseOrderStock(ctx, uow, o); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Delete(ctx, o.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
