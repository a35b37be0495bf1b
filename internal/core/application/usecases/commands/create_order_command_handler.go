package commands

import (
	"context"
	"fmt"
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/core/ports"
	"ecommerce/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation:
// user validation, stock reservation with all-or-nothing rollback, snapshot
// pricing and persistence of the Pending order.
//
// Concurrent creations competing for the same product serialize at the
// product repository's atomic Reserve; cross-product creations run in
// parallel.
type CreateOrderCommandHandler struct {
	uowFactory    UoWFactory
	userDirectory ports.UserDirectory
	now           func() time.Time
}

// reservation records a successful stock decrement so it can be compensated
// if a later item in the same order fails.
type reservation struct {
	productID kernel.UUID
	quantity  int
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// Requires a UoWFactory for transactional persistence and the user directory
// collaborator for owner validation.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, userDirectory ports.UserDirectory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		userDirectory: userDirectory,
		now:           time.Now,
	}
}

// Handle processes the order creation command.
//
// For each requested item the product is loaded, the quantity validated, the
// stock reserved and a line item built with price/name snapshots. If any item
// fails partway through the list, every reservation already made for this
// attempt is released before the error propagates, so partial reservation is
// never left in place. On success the order is persisted as Pending with its
// total derived from the line item subtotals.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	exists, err := h.userDirectory.Exists(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("user", cmd.UserID().String())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	products := uow.ProductRepository()

	items := make([]order.LineItem, 0, len(cmd.Items()))
	reserved := make([]reservation, 0, len(cmd.Items()))

	for _, requested := range cmd.Items() {
		item, itemErr := h.reserveItem(ctx, products, requested)
		if itemErr != nil {
			h.releaseAll(ctx, products, reserved)
			return nil, itemErr
		}

		items = append(items, item)
		reserved = append(reserved, reservation{productID: requested.ProductID, quantity: requested.Quantity})
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.UserID(), h.now(), items)
	if err != nil {
		h.releaseAll(ctx, products, reserved)
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		h.releaseAll(ctx, products, reserved)
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}

// reserveItem validates one requested item against the catalog, reserves its
// stock and builds the line item with price and name snapshots.
func (h CreateOrderCommandHandler) reserveItem(
	ctx context.Context,
	products ports.ProductRepository,
	requested RequestedItem,
) (order.LineItem, error) {
	p, err := products.Get(ctx, requested.ProductID)
	if err != nil {
		return order.LineItem{}, err
	}

	if requested.Quantity <= 0 {
		return order.LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not positive for product %s", requested.Quantity, p.Name()),
		)
	}

	if err = products.Reserve(ctx, p.ID(), requested.Quantity); err != nil {
		return order.LineItem{}, err
	}

	return order.NewLineItem(kernel.NewUUID(), p.ID(), requested.Quantity, p.Price(), p.Name())
}

// releaseAll compensates every reservation made during a failed creation
// attempt. Release errors are deliberately not surfaced over the original
// failure; the transaction rollback covers the transactional store either way.
func (h CreateOrderCommandHandler) releaseAll(
	ctx context.Context,
	products ports.ProductRepository,
	reserved []reservation,
) {
	for _, r := range reserved {
		_ = products.Release(ctx, r.productID, r.quantity)
	}
}
