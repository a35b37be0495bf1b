package queries_test

import (
	"context"
	"testing"
	"time"

	"ecommerce/internal/adapters/out/postgres/orderrepo"
	"ecommerce/internal/core/application/usecases/queries"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetStalePendingOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetStalePendingOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetStalePendingOrdersQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetStalePendingOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetStalePendingOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetStalePendingOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetStalePendingOrdersQueryHandlerTestSuite) TestHandle_ReturnsStaleOrdersOldestFirst() {
	userID := kernel.NewUUID()

	oldest := suite.createOrder(userID, time.Now().Add(-3*time.Hour), false)
	older := suite.createOrder(userID, time.Now().Add(-2*time.Hour), false)
	suite.createOrder(userID, time.Now(), false) // fresh, outside the window

	query, err := queries.NewGetStalePendingOrdersQuery(time.Now().Add(-time.Hour))
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(oldest.ID()))
	suite.True(result[1].ID.IsEqual(older.ID()))
	suite.True(result[0].UserID.IsEqual(userID))
}

func (suite *GetStalePendingOrdersQueryHandlerTestSuite) TestHandle_PaidOrdersExcluded() {
	userID := kernel.NewUUID()
	suite.createOrder(userID, time.Now().Add(-2*time.Hour), true)

	query, err := queries.NewGetStalePendingOrdersQuery(time.Now().Add(-time.Hour))
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetStalePendingOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetStalePendingOrdersQuery(time.Now())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetStalePendingOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetStalePendingOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetStalePendingOrdersQuery constructor")
}

func (suite *GetStalePendingOrdersQueryHandlerTestSuite) createOrder(
	userID kernel.UUID, createdAt time.Time, paid bool,
) *order.Order {
	price, err := kernel.MoneyFromString("10.00")
	suite.Require().NoError(err)

	item, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), 1, price, "widget")
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), userID, createdAt, []order.LineItem{item})
	suite.Require().NoError(err)

	if paid {
		err = o.Pay()
		suite.Require().NoError(err)
	}

	err = suite.orderRepo.Add(context.Background(), o)
	suite.Require().NoError(err)

	return o
}

func TestGetStalePendingOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetStalePendingOrdersQueryHandlerTestSuite))
}
