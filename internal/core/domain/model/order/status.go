package order

import (
	"fmt"

	"ecommerce/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with defined transitions to ensure orders follow the correct
// business workflow.
//
// State transitions:
//
//	Pending ──> Paid ──> Shipped ──> Delivered
//	   │          │
//	   └──────────┴──> Cancelled
//
// Delivered and Cancelled are terminal: no transition leaves them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: stock is reserved, payment outstanding.
	Pending

	// Paid indicates the payment gateway confirmed the charge.
	Paid

	// Shipped indicates shipping was initiated for a paid order.
	Shipped

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled and its stock released.
	// Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string
// representations. All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Paid:      "Paid",
		Shipped:   "Shipped",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Paid:      "Paid",
		Shipped:   "Shipped",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the Status value is one of the defined order states.
// Used to reject Status values arriving from persistence or transport.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. Implements
// fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Pay transitions the status to Paid. Only a Pending order may be paid;
// this is the at-most-once charge guard: an already Paid or Cancelled
// order rejects further payment attempts.
func (s Status) Pay() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateError("order", "", s.String(), Pending.String())
	}
	return Paid, nil
}

// Ship transitions the status to Shipped. Only a Paid order may be shipped.
func (s Status) Ship() (Status, error) {
	if s != Paid {
		return 0, errs.NewInvalidStateError("order", "", s.String(), Paid.String())
	}
	return Shipped, nil
}

// Deliver transitions the status to Delivered. Only a Shipped order may be
// delivered. Delivered is terminal.
func (s Status) Deliver() (Status, error) {
	if s != Shipped {
		return 0, errs.NewInvalidStateError("order", "", s.String(), Shipped.String())
	}
	return Delivered, nil
}

// Cancel transitions the status to Cancelled. Cancellation is permitted from
// Pending and Paid; cancelling an already Cancelled order fails, which keeps
// inventory release exactly-once.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Paid {
		return 0, errs.NewInvalidStateError(
			"order", "", s.String(),
			fmt.Sprintf("%s or %s", Pending.String(), Paid.String()),
		)
	}
	return Cancelled, nil
}
