package commands_test

import (
	"context"
	"testing"
	"time"

	"ecommerce/internal/core/application/usecases/commands"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/core/domain/model/product"
	"ecommerce/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUserInStatus(
	ctx context.Context, userID kernel.UUID, status order.Status,
) ([]*order.Order, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Reserve(ctx context.Context, id kernel.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) Release(ctx context.Context, id kernel.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) Exists(ctx context.Context, userID kernel.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserDirectory) Get(ctx context.Context, userID kernel.UUID) (ports.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(ports.User), args.Error(1)
}

type MockAddressBook struct{ mock.Mock }

func (m *MockAddressBook) Get(ctx context.Context, userID kernel.UUID, addressID kernel.UUID) (ports.Address, error) {
	args := m.Called(ctx, userID, addressID)
	return args.Get(0).(ports.Address), args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Charge(ctx context.Context, amountMinorUnits int64, currency string, paymentMethod string) error {
	args := m.Called(ctx, amountMinorUnits, currency, paymentMethod)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// Fixtures shared across handler tests.

func testMoney(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(amount)
	require.NoError(t, err)
	return m
}

func testProduct(t *testing.T, name string, price string, quantity int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), name, name+" description", testMoney(t, price), quantity)
	require.NoError(t, err)
	return p
}

func testLineItem(t *testing.T, productID kernel.UUID, quantity int, unitPrice string) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), productID, quantity, testMoney(t, unitPrice), "widget")
	require.NoError(t, err)
	return item
}

func testOrderInStatus(t *testing.T, userID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	return testOrderWithID(t, kernel.NewUUID(), userID, status)
}

func testOrderWithID(t *testing.T, id kernel.UUID, userID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	item := testLineItem(t, kernel.NewUUID(), 2, "10.00")
	o, err := order.RestoreOrder(id, userID, time.Now(), status, []order.LineItem{item}, nil)
	require.NoError(t, err)
	return o
}
