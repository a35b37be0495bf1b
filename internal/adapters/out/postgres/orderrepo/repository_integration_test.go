package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"ecommerce/internal/adapters/out/postgres/orderrepo"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(kernel.NewUUID(), order.Pending)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.assertItemCount(2)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsAggregate() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(kernel.NewUUID(), order.Pending)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(testOrder.ID()))
	suite.True(loaded.UserID().IsEqual(testOrder.UserID()))
	suite.Equal(order.Pending, loaded.Status())
	suite.Len(loaded.Items(), 2)
	suite.True(loaded.Total().IsEqual(testOrder.Total()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusAndAddress() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(kernel.NewUUID(), order.Pending)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.Pay())
	addressID := kernel.NewUUID()
	suite.Require().NoError(testOrder.Ship(&addressID))

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Shipped, loaded.Status())
	suite.Require().NotNil(loaded.ShippingAddressID())
	suite.True(loaded.ShippingAddressID().IsEqual(addressID))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(kernel.NewUUID(), order.Pending)

	err := suite.repository.Update(ctx, testOrder)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByUserInStatus_FiltersByOwnerAndStatus() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	otherUserID := kernel.NewUUID()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	pending := suite.createTestOrder(userID, order.Pending)
	paid := suite.createTestOrder(userID, order.Paid)
	foreign := suite.createTestOrder(otherUserID, order.Pending)

	suite.Require().NoError(suite.repository.Add(ctx, pending))
	suite.Require().NoError(suite.repository.Add(ctx, paid))
	suite.Require().NoError(suite.repository.Add(ctx, foreign))

	listed, err := suite.repository.ListByUserInStatus(ctx, userID, order.Pending)
	suite.Require().NoError(err)

	suite.Require().Len(listed, 1)
	suite.True(listed[0].ID().IsEqual(pending.ID()))

	all, err := suite.repository.ListByUser(ctx, userID)
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_RemovesOrderAndItems() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(kernel.NewUUID(), order.Pending)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(suite.repository.Delete(ctx, testOrder.ID()))

	suite.assertOrderCount(0)
	suite.assertItemCount(0)

	_, err := suite.repository.Get(ctx, testOrder.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_SerializesConcurrentWriters() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(kernel.NewUUID(), order.Pending)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// First transaction takes the row lock.
	tx1 := suite.db.Begin()
	suite.Require().NoError(tx1.Error)
	repo1 := orderrepo.NewGormOrderRepository(tx1, suite.tracker)

	locked, err := repo1.GetForUpdate(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.Pay())
	suite.Require().NoError(repo1.Update(ctx, locked))

	// Second transaction blocks on the same row until the first commits.
	released := make(chan order.Status, 1)
	go func() {
		tx2 := suite.db.Begin()
		defer tx2.Rollback()
		repo2 := orderrepo.NewGormOrderRepository(tx2, suite.tracker)

		o, lockErr := repo2.GetForUpdate(ctx, testOrder.ID())
		if lockErr != nil {
			released <- order.Unknown
			return
		}
		released <- o.Status()
	}()

	select {
	case <-released:
		suite.Fail("second transaction acquired the lock before the first committed")
	case <-time.After(200 * time.Millisecond):
	}

	suite.Require().NoError(tx1.Commit().Error)

	select {
	case status := <-released:
		// The late reader observes the committed Paid status.
		suite.Equal(order.Paid, status)
	case <-time.After(5 * time.Second):
		suite.Fail("second transaction never acquired the lock")
	}
}

// Helpers

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(userID kernel.UUID, status order.Status) *order.Order {
	price, err := kernel.MoneyFromString("10.00")
	suite.Require().NoError(err)

	itemA, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), 2, price, "widget")
	suite.Require().NoError(err)
	itemB, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), 1, price, "gadget")
	suite.Require().NoError(err)

	o, err := order.RestoreOrder(
		kernel.NewUUID(), userID, time.Now().UTC(), status,
		[]order.LineItem{itemA, itemB}, nil,
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) assertItemCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderItemDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
