package commands

import (
	"errors"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/guard"
)

var ErrProcessPaymentCommandIsNotConstructed = errors.New(
	"ProcessPaymentCommand must be created via NewProcessPaymentCommand constructor",
)

// ProcessPaymentCommand is a command to charge a single Pending order.
type ProcessPaymentCommand struct {
	orderID       kernel.UUID
	userID        kernel.UUID
	paymentMethod string

	guard guard.ConstructorGuard
}

// NewProcessPaymentCommand creates a new ProcessPaymentCommand with validation.
func NewProcessPaymentCommand(orderID, userID kernel.UUID, paymentMethod string) (ProcessPaymentCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		userID.Validate(),
	); err != nil {
		return ProcessPaymentCommand{}, err
	}

	return ProcessPaymentCommand{
		orderID:       orderID,
		userID:        userID,
		paymentMethod: paymentMethod,

		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ProcessPaymentCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentCommandIsNotConstructed)
}

func (c ProcessPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ProcessPaymentCommand) UserID() kernel.UUID {
	return c.userID
}

// PaymentMethod is the gateway payment method token. Empty means the
// gateway's configured default.
func (c ProcessPaymentCommand) PaymentMethod() string {
	return c.paymentMethod
}
