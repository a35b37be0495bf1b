package commands

import (
	"errors"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/guard"
)

var ErrProcessAllPaymentsCommandIsNotConstructed = errors.New(
	"ProcessAllPaymentsCommand must be created via NewProcessAllPaymentsCommand constructor",
)

// ProcessAllPaymentsCommand is a command to charge every Pending order that
// belongs to one user.
type ProcessAllPaymentsCommand struct {
	userID        kernel.UUID
	paymentMethod string

	guard guard.ConstructorGuard
}

// NewProcessAllPaymentsCommand creates a new ProcessAllPaymentsCommand with
// validation.
func NewProcessAllPaymentsCommand(userID kernel.UUID, paymentMethod string) (ProcessAllPaymentsCommand, error) {
	if err := userID.Validate(); err != nil {
		return ProcessAllPaymentsCommand{}, err
	}

	return ProcessAllPaymentsCommand{
		userID:        userID,
		paymentMethod: paymentMethod,

		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ProcessAllPaymentsCommand) Validate() error {
	return c.guard.Validate(ErrProcessAllPaymentsCommandIsNotConstructed)
}

func (c ProcessAllPaymentsCommand) UserID() kernel.UUID {
	return c.userID
}

func (c ProcessAllPaymentsCommand) PaymentMethod() string {
	return c.paymentMethod
}
