package cmd

import (
	"log/slog"

	"ecommerce/internal/adapters/out/postgres"
	"ecommerce/internal/adapters/out/postgres/userrepo"
	"ecommerce/internal/adapters/out/stripe"
	"ecommerce/internal/core/application/usecases/commands"
	"ecommerce/internal/core/application/usecases/queries"
	"ecommerce/internal/core/ports"
	"ecommerce/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	users      *userrepo.GormUserDirectory
	addresses  *userrepo.GormAddressBook
	gateway    ports.PaymentGateway
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		users:      userrepo.NewGormUserDirectory(gormDB),
		addresses:  userrepo.NewGormAddressBook(gormDB),
		gateway:    stripe.NewGateway(config.StripeSecretKey, config.StripePaymentMethod),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) crossUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.crossUoWFactory(), c.users)
}

func (c *CompositionRoot) CreateProcessPaymentCommandHandler() commands.ProcessPaymentCommandHandler {
	return commands.NewProcessPaymentCommandHandler(c.orderUoWFactory(), c.gateway)
}

func (c *CompositionRoot) CreateProcessAllPaymentsCommandHandler() commands.ProcessAllPaymentsCommandHandler {
	return commands.NewProcessAllPaymentsCommandHandler(c.orderUoWFactory(), c.gateway)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.crossUoWFactory(), c.orderUoWFactory(), c.addresses)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.crossUoWFactory())
}

func (c *CompositionRoot) CreateRemoveOrderCommandHandler() commands.RemoveOrderCommandHandler {
	return commands.NewRemoveOrderCommandHandler(c.crossUoWFactory())
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStalePendingOrdersQueryHandler() queries.GetStalePendingOrdersQueryHandler {
	return queries.NewGetStalePendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetStalePendingOrdersQueryHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.config.PendingOrderTTL,
		logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
