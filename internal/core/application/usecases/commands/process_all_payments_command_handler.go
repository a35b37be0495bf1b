package commands

import (
	"context"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/core/ports"
)

// PaymentFailure records one order that could not be charged during a batch
// payment run.
type PaymentFailure struct {
	OrderID kernel.UUID
	Err     error
}

// ProcessAllPaymentsResult is the outcome of a batch payment run. Orders that
// charged successfully land in Paid; per-order failures are collected in
// Failures rather than aborting the batch.
type ProcessAllPaymentsResult struct {
	Paid     []*order.Order
	Failures []PaymentFailure
}

// ProcessAllPaymentsCommandHandler charges every Pending order of a user,
// one order at a time. Each order goes through the same single-order payment
// flow, so a declined or unavailable charge on one order never blocks the
// rest of the batch.
type ProcessAllPaymentsCommandHandler struct {
	uowFactory OrderUoWFactory
	payOrder   ProcessPaymentCommandHandler
}

// NewProcessAllPaymentsCommandHandler creates a handler for batch payment.
func NewProcessAllPaymentsCommandHandler(uowFactory OrderUoWFactory, gateway ports.PaymentGateway) ProcessAllPaymentsCommandHandler {
	return ProcessAllPaymentsCommandHandler{
		uowFactory: uowFactory,
		payOrder:   NewProcessPaymentCommandHandler(uowFactory, gateway),
	}
}

// Handle charges all of the user's Pending orders. The Pending set is read
// once up front; orders paid or cancelled by concurrent operations after the
// snapshot simply fail their individual status check and are reported in
// Failures.
func (h ProcessAllPaymentsCommandHandler) Handle(ctx context.Context, cmd ProcessAllPaymentsCommand) (ProcessAllPaymentsResult, error) {
	if err := cmd.Validate(); err != nil {
		return ProcessAllPaymentsResult{}, err
	}

	uow := h.uowFactory.Create()

	pending, err := uow.OrderRepository().ListByUserInStatus(ctx, cmd.UserID(), order.Pending)
	if err != nil {
		return ProcessAllPaymentsResult{}, err
	}

	var result ProcessAllPaymentsResult

	for _, o := range pending {
		payCmd, cmdErr := NewProcessPaymentCommand(o.ID(), cmd.UserID(), cmd.PaymentMethod())
		if cmdErr != nil {
			result.Failures = append(result.Failures, PaymentFailure{OrderID: o.ID(), Err: cmdErr})
			continue
		}

		paid, payErr := h.payOrder.Handle(ctx, payCmd)
		if payErr != nil {
			result.Failures = append(result.Failures, PaymentFailure{OrderID: o.ID(), Err: payErr})
			continue
		}

		result.Paid = append(result.Paid, paid)
	}

	return result, nil
}
