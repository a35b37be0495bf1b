package queries

import (
	"errors"
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/errs"
	"ecommerce/internal/pkg/guard"
)

var (
	ErrGetStalePendingOrdersQueryIsNotConstructed = errors.New(
		"GetStalePendingOrdersQuery must be created via NewGetStalePendingOrdersQuery constructor",
	)
)

// GetStalePendingOrdersQuery retrieves Pending orders created before a
// cutoff. Feeds the expiry sweep that cancels orders abandoned without
// payment, freeing their reserved stock.
type GetStalePendingOrdersQuery struct {
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewGetStalePendingOrdersQuery creates a query for Pending orders older
// than the cutoff.
func NewGetStalePendingOrdersQuery(cutoff time.Time) (GetStalePendingOrdersQuery, error) {
	if cutoff.IsZero() {
		return GetStalePendingOrdersQuery{}, errs.NewValueIsRequiredError("cutoff")
	}

	return GetStalePendingOrdersQuery{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStalePendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStalePendingOrdersQueryIsNotConstructed)
}

func (q GetStalePendingOrdersQuery) Cutoff() time.Time {
	return q.cutoff
}

// GetStalePendingOrdersQueryResponse identifies one expired Pending order
// and its owner, enough to route a cancellation.
type GetStalePendingOrdersQueryResponse struct {
	ID     kernel.UUID
	UserID kernel.UUID
}
