package commands_test

import (
	"testing"

	"ecommerce/internal/core/application/usecases/commands"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/core/ports"
	"ecommerce/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliverOrderCommandHandler_Handle_ShipsThenDelivers(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	addressID := kernel.NewUUID()

	paid := testOrderInStatus(t, userID, order.Paid)

	cmd, err := commands.NewDeliverOrderCommand(paid.ID(), userID, &addressID)
	require.NoError(t, err)

	addresses := new(MockAddressBook)
	addresses.On("Get", ctx, userID, addressID).
		Return(ports.Address{ID: addressID, UserID: userID}, nil).Once()

	orders := new(MockOrderRepository)
	orderUoW := new(MockOrderUoW)
	orderUoW.On("OrderRepository").Return(orders)
	// Shipping and delivery run as two independent transactions.
	orderUoW.On("Begin", ctx).Return(nil).Twice()
	orders.On("GetForUpdate", ctx, paid.ID()).Return(paid, nil).Twice()
	orders.On("Update", ctx, paid).Return(nil).Twice()
	orderUoW.On("Commit", ctx).Return(nil).Twice()
	orderUoW.On("Rollback", ctx).Return(nil).Twice()

	orderFactory := new(MockOrderUoWFactory)
	orderFactory.On("Create").Return(orderUoW)

	uowFactory := new(MockUoWFactory)

	h := commands.NewDeliverOrderCommandHandler(uowFactory, orderFactory, addresses)
	delivered, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, delivered.Status())
	uowFactory.AssertNotCalled(t, "Create")
	orders.AssertExpectations(t)
}

func TestDeliverOrderCommandHandler_Handle_PendingOrderIsCancelled(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()

	// Given: a Pending order, which cannot ship
	pending := testOrderInStatus(t, userID, order.Pending)
	item := pending.Items()[0]

	cmd, err := commands.NewDeliverOrderCommand(pending.ID(), userID, nil)
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	orderUoW := new(MockOrderUoW)
	orderUoW.On("OrderRepository").Return(orders)
	orderUoW.On("Begin", ctx).Return(nil).Once()
	orders.On("GetForUpdate", ctx, pending.ID()).Return(pending, nil).Once()
	orderUoW.On("Rollback", ctx).Return(nil).Once()

	orderFactory := new(MockOrderUoWFactory)
	orderFactory.On("Create").Return(orderUoW).Once()

	// The compensating cancel runs through the cross-aggregate unit of work.
	products := new(MockProductRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orders)
	uow.On("ProductRepository").Return(products)
	uow.On("Begin", ctx).Return(nil).Once()
	orders.On("GetForUpdate", ctx, pending.ID()).Return(pending, nil).Once()
	products.On("Release", ctx, item.ProductID(), item.Quantity()).Return(nil).Once()
	orders.On("Update", ctx, pending).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	uowFactory := new(MockUoWFactory)
	uowFactory.On("Create").Return(uow).Once()

	addresses := new(MockAddressBook)

	// When: delivery is attempted
	h := commands.NewDeliverOrderCommandHandler(uowFactory, orderFactory, addresses)
	_, err = h.Handle(ctx, cmd)

	// Then: the order ends up Cancelled with its stock released, and the
	// error names both outcomes
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Contains(t, err.Error(), "delivery failed, order cancelled")
	assert.Equal(t, order.Cancelled, pending.Status())
	products.AssertExpectations(t)
}

func TestDeliverOrderCommandHandler_Handle_UnknownAddressIsCancelled(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	addressID := kernel.NewUUID()

	paid := testOrderInStatus(t, userID, order.Paid)
	item := paid.Items()[0]

	cmd, err := commands.NewDeliverOrderCommand(paid.ID(), userID, &addressID)
	require.NoError(t, err)

	addresses := new(MockAddressBook)
	addresses.On("Get", ctx, userID, addressID).
		Return(ports.Address{}, errs.NewObjectNotFoundError("address", addressID.String())).Once()

	orders := new(MockOrderRepository)
	products := new(MockProductRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orders)
	uow.On("ProductRepository").Return(products)
	uow.On("Begin", ctx).Return(nil).Once()
	orders.On("GetForUpdate", ctx, paid.ID()).Return(paid, nil).Once()
	products.On("Release", ctx, item.ProductID(), item.Quantity()).Return(nil).Once()
	orders.On("Update", ctx, paid).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	uowFactory := new(MockUoWFactory)
	uowFactory.On("Create").Return(uow).Once()

	orderFactory := new(MockOrderUoWFactory)

	h := commands.NewDeliverOrderCommandHandler(uowFactory, orderFactory, addresses)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Contains(t, err.Error(), "delivery failed, order cancelled")
	assert.Equal(t, order.Cancelled, paid.Status())
}

func TestDeliverOrderCommandHandler_Handle_OrderNotFoundPropagates(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	cmd, err := commands.NewDeliverOrderCommand(orderID, userID, nil)
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	orderUoW := new(MockOrderUoW)
	orderUoW.On("OrderRepository").Return(orders)
	orderUoW.On("Begin", ctx).Return(nil).Once()
	orders.On("GetForUpdate", ctx, orderID).
		Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once()
	orderUoW.On("Rollback", ctx).Return(nil).Once()

	orderFactory := new(MockOrderUoWFactory)
	orderFactory.On("Create").Return(orderUoW).Once()

	uowFactory := new(MockUoWFactory)

	h := commands.NewDeliverOrderCommandHandler(uowFactory, orderFactory, new(MockAddressBook))
	_, err = h.Handle(ctx, cmd)

	// A missing order is not compensated; there is nothing to cancel.
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.NotContains(t, err.Error(), "order cancelled")
	uowFactory.AssertNotCalled(t, "Create")
}

func TestDeliverOrderCommandHandler_Handle_UnauthorizedPropagates(t *testing.T) {
	ctx := t.Context()
	owner := kernel.NewUUID()
	intruder := kernel.NewUUID()

	paid := testOrderInStatus(t, owner, order.Paid)

	cmd, err := commands.NewDeliverOrderCommand(paid.ID(), intruder, nil)
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	orderUoW := new(MockOrderUoW)
	orderUoW.On("OrderRepository").Return(orders)
	orderUoW.On("Begin", ctx).Return(nil).Once()
	orders.On("GetForUpdate", ctx, paid.ID()).Return(paid, nil).Once()
	orderUoW.On("Rollback", ctx).Return(nil).Once()

	orderFactory := new(MockOrderUoWFactory)
	orderFactory.On("Create").Return(orderUoW).Once()

	uowFactory := new(MockUoWFactory)

	h := commands.NewDeliverOrderCommandHandler(uowFactory, orderFactory, new(MockAddressBook))
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Equal(t, order.Paid, paid.Status())
	uowFactory.AssertNotCalled(t, "Create")
}
