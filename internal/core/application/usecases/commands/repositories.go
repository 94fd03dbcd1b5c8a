// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"procurement/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// RecurringOrderRepoFactory provides access to the recurring order
	// repository within a transaction.
	RecurringOrderRepoFactory interface {
		RecurringOrderRepository() ports.RecurringOrderRepository
	}

	// SupplierOrderRepoFactory provides access to the supplier order
	// repository within a transaction.
	SupplierOrderRepoFactory interface {
		SupplierOrderRepository() ports.SupplierOrderRepository
	}

	// StockRepoFactory provides access to the stock repository within a transaction.
	StockRepoFactory interface {
		StockRepository() ports.StockRepository
	}

	// OrderUoW manages transactions for order creation and aggregation.
	// The product repository is read to snapshot catalog prices into orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StockUoW manages transactions for status changes that touch shop
	// stock, i.e. the delivery confirmation.
	StockUoW interface {
		TxManager
		OrderRepoFactory
		StockRepoFactory
	}

	// StockUoWFactory creates new stock unit of work instances.
	StockUoWFactory interface {
		Create() StockUoW
	}

	// SupplierUoW manages transactions that materialize supplier purchase
	// orders from aggregated shop orders.
	SupplierUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		SupplierOrderRepoFactory
	}

	// SupplierUoWFactory creates new supplier unit of work instances.
	SupplierUoWFactory interface {
		Create() SupplierUoW
	}

	// RecurringUoW manages transactions of the recurring order scheduler.
	// Each template execution runs in its own unit of work so one failing
	// template never rolls back the others.
	RecurringUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		RecurringOrderRepoFactory
	}

	// RecurringUoWFactory creates new recurring unit of work instances.
	RecurringUoWFactory interface {
		Create() RecurringUoW
	}
)
