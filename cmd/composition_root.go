package cmd

import (
	"log/slog"

	"procurement/internal/adapters/out/notify"
	"procurement/internal/adapters/out/postgres"
	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	notifier      ports.NotificationGateway
	alertThrottle *commands.AlertThrottle
	logger        *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:      notify.NewSlogNotificationGateway(logger),
		alertThrottle: commands.NewAlertThrottle(configs.AlertThrottleInterval),
		logger:        logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.StockUoWFactory = FuncStockUoWFactory(func() commands.StockUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateAggregateOrdersCommandHandler() commands.AggregateOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAggregateOrdersCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateMaterializeSupplierOrdersCommandHandler() commands.MaterializeSupplierOrdersCommandHandler {
	var f commands.SupplierUoWFactory = FuncSupplierUoWFactory(func() commands.SupplierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMaterializeSupplierOrdersCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateRunRecurringOrdersCommandHandler() commands.RunRecurringOrdersCommandHandler {
	var f commands.RecurringUoWFactory = FuncRecurringUoWFactory(func() commands.RecurringUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRunRecurringOrdersCommandHandler(f, c.notifier, c.alertThrottle, c.logger)
}

func (c *CompositionRoot) CreateGetOrdersByDeliveryDateQueryHandler() queries.GetOrdersByDeliveryDateQueryHandler {
	return queries.NewGetOrdersByDeliveryDateQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSupplierOrdersQueryHandler() queries.GetSupplierOrdersQueryHandler {
	return queries.NewGetSupplierOrdersQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncStockUoWFactory func() commands.StockUoW

func (f FuncStockUoWFactory) Create() commands.StockUoW {
	return f()
}

type FuncSupplierUoWFactory func() commands.SupplierUoW

func (f FuncSupplierUoWFactory) Create() commands.SupplierUoW {
	return f()
}

type FuncRecurringUoWFactory func() commands.RecurringUoW

func (f FuncRecurringUoWFactory) Create() commands.RecurringUoW {
	return f()
}
