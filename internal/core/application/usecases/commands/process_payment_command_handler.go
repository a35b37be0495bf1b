package commands

import (
	"context"

	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/core/ports"
	"ecommerce/internal/pkg/errs"
)

// chargeCurrency is the settlement currency for gateway charges. Order totals
// are stored currency-less; the charge amount is the total in minor units.
const chargeCurrency = "usd"

// ProcessPaymentCommandHandler charges a Pending order through the payment
// gateway and marks it Paid.
//
// The charge is at most once per order: the order's status is checked before
// calling the gateway, the gateway call happens with no database lock held,
// and the Paid transition is applied under a row lock with the status
// re-checked. A gateway failure leaves the order Pending and retryable.
type ProcessPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
}

// NewProcessPaymentCommandHandler creates a handler for single-order payment.
func NewProcessPaymentCommandHandler(uowFactory OrderUoWFactory, gateway ports.PaymentGateway) ProcessPaymentCommandHandler {
	return ProcessPaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle processes the payment command and returns the order in its Paid
// state. Returns UnauthorizedError when the order belongs to another user,
// InvalidStateError when the order is not Pending, and the gateway's error
// (declined or unavailable) when the charge fails.
func (h ProcessPaymentCommandHandler) Handle(ctx context.Context, cmd ProcessPaymentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	// Unlocked pre-check: never call the gateway for an order that is
	// visibly not chargeable.
	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = h.checkChargeable(o, cmd); err != nil {
		return nil, err
	}

	// The gateway call holds no lock. A slow or hung gateway must not
	// block other operations on this order.
	if err = h.gateway.Charge(ctx, o.Total().MinorUnits(), chargeCurrency, cmd.PaymentMethod()); err != nil {
		return nil, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err = uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = h.checkChargeable(o, cmd); err != nil {
		return nil, err
	}

	if err = o.Pay(); err != nil {
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

func (h ProcessPaymentCommandHandler) checkChargeable(o *order.Order, cmd ProcessPaymentCommand) error {
	if !o.IsOwnedBy(cmd.UserID()) {
		return errs.NewUnauthorizedError("order", o.ID().String(), cmd.UserID().String())
	}
	if o.Status() != order.Pending {
		return errs.NewInvalidStateError("order", o.ID().String(), o.Status().String(), order.Pending.String())
	}
	return nil
}
