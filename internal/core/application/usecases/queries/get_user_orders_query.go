package queries

import (
	"errors"
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetUserOrdersQueryIsNotConstructed = errors.New(
		"GetUserOrdersQuery must be created via NewGetUserOrdersQuery constructor",
	)
)

// GetUserOrdersQuery retrieves all orders placed by one user, newest first.
//
// Example:
//
//	query, err := NewGetUserOrdersQuery(userID)
//	if err != nil {
//	    return err
//	}
//
//	orders, err := handler.Handle(ctx, query)
type GetUserOrdersQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUserOrdersQuery creates a query for a user's order history.
func NewGetUserOrdersQuery(userID kernel.UUID) (GetUserOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserOrdersQuery{}, err
	}

	return GetUserOrdersQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUserOrdersQueryIsNotConstructed)
}

func (q GetUserOrdersQuery) UserID() kernel.UUID {
	return q.userID
}

// GetUserOrdersQueryResponse is a user's order history together with the sum
// of every order's total. An order whose stored total is missing counts as
// zero in the sum.
type GetUserOrdersQueryResponse struct {
	Orders           []UserOrderResponse
	TotalOfAllOrders decimal.Decimal
}

// UserOrderResponse is one row of a user's order history. Totals come
// straight from the read model; the engine derived them from snapshot prices
// at creation time.
type UserOrderResponse struct {
	ID        kernel.UUID
	Status    string
	Total     decimal.Decimal
	ItemCount int
	CreatedAt time.Time
}
