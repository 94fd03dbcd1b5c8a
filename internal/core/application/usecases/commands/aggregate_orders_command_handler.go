package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/product"
	"procurement/internal/core/domain/services"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
)

// AggregateOrdersResult summarizes one aggregation run.
type AggregateOrdersResult struct {
	// OrdersAggregated is the number of orders moved to AGGREGATED.
	OrdersAggregated int

	// Demands holds the merged per-product quantities of the run.
	Demands []services.AggregatedDemand

	// Unassigned holds the demands whose product has no supplier. They
	// stay part of the run and are reported to the administrators.
	Unassigned []services.AggregatedDemand
}

// AggregateOrdersCommandHandler handles the aggregation run for one
// delivery date. It merges all NEW orders into per-product demand, moves
// them to AGGREGATED in one transaction, then alerts administrators about
// products that cannot be routed to any supplier.
//
// Notification delivery is best-effort and happens after the commit: a
// failing notifier never rolls an aggregation back.
type AggregateOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	aggregator services.Aggregator
	notifier   ports.NotificationGateway
}

// NewAggregateOrdersCommandHandler creates a handler for aggregation runs.
func NewAggregateOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.NotificationGateway,
) AggregateOrdersCommandHandler {
	return AggregateOrdersCommandHandler{
		uowFactory: uowFactory,
		aggregator: services.NewAggregator(),
		notifier:   notifier,
	}
}

// Handle processes the aggregation command.
// Returns ObjectNotFoundError when the delivery date has no NEW orders,
// so callers can distinguish "nothing to do" from an empty success.
func (h *AggregateOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd AggregateOrdersCommand,
) (AggregateOrdersResult, error) {
	if err := cmd.Validate(); err != nil {
		return AggregateOrdersResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AggregateOrdersResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.GetByDeliveryDateInStatus(ctx, cmd.DeliveryDate(), order.New)
	if err != nil {
		return AggregateOrdersResult{}, err
	}
	if len(orders) == 0 {
		return AggregateOrdersResult{}, errs.NewObjectNotFoundError(
			"orders for delivery date", cmd.DeliveryDate().Format(time.DateOnly))
	}

	demands, err := h.aggregator.AggregateByProductAndDate(orders)
	if err != nil {
		return AggregateOrdersResult{}, err
	}

	products, err := h.loadProducts(ctx, uow, demands)
	if err != nil {
		return AggregateOrdersResult{}, err
	}
	_, unassigned := h.aggregator.GroupBySupplier(demands, products)

	now := time.Now()
	for _, aggregate := range orders {
		if err = aggregate.MarkAggregated(now, cmd.ActorRole()); err != nil {
			return AggregateOrdersResult{}, err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return AggregateOrdersResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return AggregateOrdersResult{}, err
	}

	if len(unassigned) > 0 {
		names := make([]string, 0, len(unassigned))
		for _, demand := range unassigned {
			names = append(names, demand.ProductName)
		}
		_ = h.notifier.NotifyAdmins(ctx, "Products without supplier",
			fmt.Sprintf("aggregation for %s has products without supplier: %s",
				cmd.DeliveryDate().Format(time.DateOnly), strings.Join(names, ", ")))
	}

	return AggregateOrdersResult{
		OrdersAggregated: len(orders),
		Demands:          demands,
		Unassigned:       unassigned,
	}, nil
}

func (h *AggregateOrdersCommandHandler) loadProducts(
	ctx context.Context,
	uow OrderUoW,
	demands []services.AggregatedDemand,
) (map[kernel.UUID]*product.Product, error) {
	productIDs := make([]kernel.UUID, 0, len(demands))
	for _, demand := range demands {
		productIDs = append(productIDs, demand.ProductID)
	}
	return uow.ProductRepository().GetByIDs(ctx, productIDs)
}
