package commands

import (
	"context"

	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/pkg/errs"
)

// MarkDeliveredCommandHandler transitions a Shipped order to Delivered, the
// terminal success state of the lifecycle.
type MarkDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkDeliveredCommandHandler creates a handler for delivery confirmation.
func NewMarkDeliveredCommandHandler(uowFactory OrderUoWFactory) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{uowFactory: uowFactory}
}

// Handle processes the delivery confirmation and returns the order in its
// Delivered state.
func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) (*order.Order, error) {
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

	if err = o.Deliver(); err != nil {
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
