package kernel

import (
	"fmt"

	"ecommerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// minorUnitsPerMajor converts between major currency units (dollars) and the
// minor units (cents) the payment gateway charges in.
var minorUnitsPerMajor = decimal.NewFromInt(100)

// Money is a value object representing a non-negative monetary amount with
// fixed-point decimal semantics (DECIMAL(10,2) in storage). It is used for
// product prices, line item subtotals and order totals.
//
// Money is immutable: arithmetic methods return new values. The zero value is
// a valid zero amount, which lets aggregates start accumulating totals from
// Zero() without a constructor error path.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money from a decimal amount. Negative amounts are
// rejected: prices and totals in this domain are never negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount.Round(2)}, nil
}

// MoneyFromString parses a decimal string such as "10.00" into Money.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// ZeroMoney returns a zero amount, the identity element for Add.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MulQuantity returns the amount multiplied by an integer quantity.
// Used to derive a line item subtotal from its unit price.
func (m Money) MulQuantity(qty int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(qty)))}
}

// MinorUnits returns the amount expressed in minor currency units (cents),
// the representation the payment gateway charges in.
func (m Money) MinorUnits() int64 {
	return m.amount.Mul(minorUnitsPerMajor).Round(0).IntPart()
}

// Decimal returns the underlying decimal value for persistence.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two amounts for numeric equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the amount formatted with two decimal places, e.g. "35.00".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Validate checks the amount invariant. Restored persistence data may carry
// arbitrary values, so repositories validate after mapping.
func (m Money) Validate() error {
	if m.amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", m.amount.String()),
		)
	}
	return nil
}
