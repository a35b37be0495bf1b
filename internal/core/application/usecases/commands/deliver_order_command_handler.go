package commands

import (
	"context"
	"errors"
	"fmt"

	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/core/ports"
	"ecommerce/internal/pkg/errs"
)

// DeliverOrderCommandHandler runs the combined fulfilment flow: initiate
// shipping and confirm delivery in sequence. When shipping fails for a
// business reason the handler compensates by cancelling the order, which
// returns its reserved stock; the caller learns both that delivery failed
// and that the order ended up Cancelled.
type DeliverOrderCommandHandler struct {
	ship    InitiateShippingCommandHandler
	deliver MarkDeliveredCommandHandler
	cancel  CancelOrderCommandHandler
}

// NewDeliverOrderCommandHandler creates a handler for the combined
// ship-and-deliver flow.
func NewDeliverOrderCommandHandler(
	uowFactory UoWFactory,
	orderUoWFactory OrderUoWFactory,
	addressBook ports.AddressBook,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		ship:    NewInitiateShippingCommandHandler(orderUoWFactory, addressBook),
		deliver: NewMarkDeliveredCommandHandler(orderUoWFactory),
		cancel:  NewCancelOrderCommandHandler(uowFactory),
	}
}

// Handle ships the order and marks it delivered. A shipping failure caused
// by the order's state or an unresolvable address cancels the order and
// returns an error wrapping the shipping failure; not-found orders and
// authorization failures propagate as-is, leaving the order untouched.
func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	shipCmd, err := NewInitiateShippingCommand(cmd.OrderID(), cmd.UserID(), cmd.AddressID())
	if err != nil {
		return nil, err
	}

	if _, err = h.ship.Handle(ctx, shipCmd); err != nil {
		if !h.shouldCompensate(err) {
			return nil, err
		}
		return nil, h.cancelAfterFailure(ctx, cmd, err)
	}

	deliverCmd, err := NewMarkDeliveredCommand(cmd.OrderID(), cmd.UserID())
	if err != nil {
		return nil, err
	}

	return h.deliver.Handle(ctx, deliverCmd)
}

// shouldCompensate decides whether a shipping failure cancels the order.
// State conflicts and unresolvable addresses do; a missing order or a
// foreign order must not, since there is nothing of the caller's to cancel.
func (h DeliverOrderCommandHandler) shouldCompensate(err error) bool {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return notFound.ParamName == "address"
	}

	return errors.Is(err, errs.ErrInvalidState)
}

// cancelAfterFailure cancels the order and reports the combined outcome.
// If the compensating cancel itself fails (the order may already be
// terminal), both errors are surfaced together.
func (h DeliverOrderCommandHandler) cancelAfterFailure(ctx context.Context, cmd DeliverOrderCommand, shipErr error) error {
	cancelCmd, err := NewCancelOrderCommand(cmd.OrderID(), cmd.UserID())
	if err != nil {
		return errors.Join(shipErr, err)
	}

	if _, err = h.cancel.Handle(ctx, cancelCmd); err != nil {
		return errors.Join(shipErr, fmt.Errorf("compensating cancel: %w", err))
	}

	return fmt.Errorf("delivery failed, order cancelled: %w", shipErr)
}
