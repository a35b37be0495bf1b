package commands

import (
	"context"
	"errors"

	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels a Pending or Paid order and returns every
// line item's quantity to product stock. Cancellation and stock release
// commit in one transaction, so the released quantities become visible
// exactly when the Cancelled status does.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the cancellation and returns the order in its Cancelled
// state. A second cancel of the same order fails the status transition:
// stock is never released twice. Products deleted from the catalog since the
// order was created are skipped during release; their reservation has
// nothing to return to.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
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

	if err = o.Cancel(); err != nil {
		return nil, err
	}

	if err = releaseOrderStock(ctx, uow, o); err != nil {
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

// releaseOrderStock returns each line item's quantity to stock. Missing
// products are tolerated; any other release failure aborts the caller's
// transaction.
func releaseOrderStock(ctx context.Context, uow UoW, o *order.Order) error {
	products := uow.ProductRepository()

	for _, item := range o.Items() {
		if err := products.Release(ctx, item.ProductID(), item.Quantity()); err != nil {
			var notFound *errs.ObjectNotFoundError
			if errors.As(err, &notFound) {
				continue
			}
			return err
		}
	}

	return nil
}
