package queries

import (
	"errors"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/guard"
)

var (
	ErrGetOrderStatusQueryIsNotConstructed = errors.New(
		"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
	)
)

// GetOrderStatusQuery retrieves the current lifecycle status of one order,
// scoped to its owning user.
type GetOrderStatusQuery struct {
	orderID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderStatusQuery creates a query for one order's status.
func NewGetOrderStatusQuery(orderID, userID kernel.UUID) (GetOrderStatusQuery, error) {
	if err := errors.Join(
		orderID.Validate(),
		userID.Validate(),
	); err != nil {
		return GetOrderStatusQuery{}, err
	}

	return GetOrderStatusQuery{
		orderID: orderID,
		userID:  userID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

func (q GetOrderStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderStatusQuery) UserID() kernel.UUID {
	return q.userID
}

// GetOrderStatusQueryResponse is the current status of one order.
type GetOrderStatusQueryResponse struct {
	ID     kernel.UUID
	Status string
}
