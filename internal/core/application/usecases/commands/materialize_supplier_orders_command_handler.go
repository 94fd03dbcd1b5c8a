package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/product"
	"procurement/internal/core/domain/model/supplierorder"
	"procurement/internal/core/domain/services"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
)

// supplierOrderNumberAttempts bounds the retries on SO number collisions.
// The suffix space is small enough that collisions happen within a month.
const supplierOrderNumberAttempts = 3

// MaterializeSupplierOrdersResult summarizes one materialization run.
type MaterializeSupplierOrdersResult struct {
	// SupplierOrderIDs identifies the created purchase orders.
	SupplierOrderIDs []kernel.UUID

	// SupplierOrderNumbers holds the created SO document numbers.
	SupplierOrderNumbers []string

	// OrdersCovered is the number of shop orders moved to SUPPLIER_ORDERED.
	OrdersCovered int

	// Unassigned holds the demands whose product has no supplier; they
	// stay AGGREGATED and are reported to the administrators.
	Unassigned []services.AggregatedDemand
}

// MaterializeSupplierOrdersCommandHandler turns the aggregated demand of
// one delivery date into supplier purchase orders. Each supplier bucket
// becomes one purchase order with denormalized lines; covered shop orders
// move to SUPPLIER_ORDERED in the same transaction.
//
// Unit prices resolve per supplier: the supplier-specific price when the
// product's link carries one, else the catalog price. SO document numbers
// are random within the month, so creation retries on a number conflict.
type MaterializeSupplierOrdersCommandHandler struct {
	uowFactory SupplierUoWFactory
	aggregator services.Aggregator
	notifier   ports.NotificationGateway
}

// NewMaterializeSupplierOrdersCommandHandler creates a handler for
// materialization runs.
func NewMaterializeSupplierOrdersCommandHandler(
	uowFactory SupplierUoWFactory,
	notifier ports.NotificationGateway,
) MaterializeSupplierOrdersCommandHandler {
	return MaterializeSupplierOrdersCommandHandler{
		uowFactory: uowFactory,
		aggregator: services.NewAggregator(),
		notifier:   notifier,
	}
}

// Handle processes the materialization command.
// Returns ObjectNotFoundError when the delivery date has no AGGREGATED
// orders, or when the requested supplier has no aggregated items. Shop
// orders with only unassigned products stay AGGREGATED for a later run
// once a supplier is assigned.
func (h *MaterializeSupplierOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd MaterializeSupplierOrdersCommand,
) (MaterializeSupplierOrdersResult, error) {
	if err := cmd.Validate(); err != nil {
		return MaterializeSupplierOrdersResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return MaterializeSupplierOrdersResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.GetByDeliveryDateInStatus(ctx, cmd.DeliveryDate(), order.Aggregated)
	if err != nil {
		return MaterializeSupplierOrdersResult{}, err
	}
	if len(orders) == 0 {
		return MaterializeSupplierOrdersResult{}, errs.NewObjectNotFoundError(
			"aggregated orders for delivery date", cmd.DeliveryDate().Format(time.DateOnly))
	}

	demands, err := h.aggregator.AggregateByProductAndDate(orders)
	if err != nil {
		return MaterializeSupplierOrdersResult{}, err
	}

	productIDs := make([]kernel.UUID, 0, len(demands))
	for _, demand := range demands {
		productIDs = append(productIDs, demand.ProductID)
	}
	products, err := uow.ProductRepository().GetByIDs(ctx, productIDs)
	if err != nil {
		return MaterializeSupplierOrdersResult{}, err
	}

	buckets, unassigned := h.aggregator.GroupBySupplier(demands, products)

	if supplierID := cmd.SupplierID(); supplierID != nil {
		bucket, ok := buckets[*supplierID]
		if !ok {
			return MaterializeSupplierOrdersResult{}, errs.NewObjectNotFoundError(
				"aggregated items for supplier", supplierID.String())
		}
		buckets = map[kernel.UUID]services.SupplierBucket{*supplierID: bucket}
	}

	result := MaterializeSupplierOrdersResult{Unassigned: unassigned}
	coveringOrder := make(map[kernel.UUID]kernel.UUID)

	for _, bucket := range sortedBuckets(buckets) {
		created, err := h.createSupplierOrder(ctx, uow, cmd, bucket, products)
		if err != nil {
			return MaterializeSupplierOrdersResult{}, err
		}

		result.SupplierOrderIDs = append(result.SupplierOrderIDs, created.ID())
		result.SupplierOrderNumbers = append(result.SupplierOrderNumbers, created.OrderNumber())

		// first covering purchase order wins for orders spanning suppliers
		for _, demand := range bucket.Demands {
			for _, contribution := range demand.Contributions {
				if _, ok := coveringOrder[contribution.OrderID]; !ok {
					coveringOrder[contribution.OrderID] = created.ID()
				}
			}
		}
	}

	for _, aggregate := range orders {
		supplierOrderID, ok := coveringOrder[aggregate.ID()]
		if !ok {
			continue
		}
		if err = aggregate.MarkSupplierOrdered(supplierOrderID, cmd.ActorRole()); err != nil {
			return MaterializeSupplierOrdersResult{}, err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return MaterializeSupplierOrdersResult{}, err
		}
		result.OrdersCovered++
	}

	if err = uow.Commit(ctx); err != nil {
		return MaterializeSupplierOrdersResult{}, err
	}

	if len(unassigned) > 0 {
		names := make([]string, 0, len(unassigned))
		for _, demand := range unassigned {
			names = append(names, demand.ProductName)
		}
		_ = h.notifier.NotifyAdmins(ctx, "Products without supplier",
			fmt.Sprintf("materialization for %s skipped products without supplier: %s",
				cmd.DeliveryDate().Format(time.DateOnly), strings.Join(names, ", ")))
	}

	return result, nil
}

func (h *MaterializeSupplierOrdersCommandHandler) createSupplierOrder(
	ctx context.Context,
	uow SupplierUoW,
	cmd MaterializeSupplierOrdersCommand,
	bucket services.SupplierBucket,
	products map[kernel.UUID]*product.Product,
) (*supplierorder.SupplierOrder, error) {
	lines := make([]supplierorder.Line, 0, len(bucket.Demands))
	for _, demand := range bucket.Demands {
		p := products[demand.ProductID]

		line, err := supplierorder.NewLine(
			p.ID(),
			p.Name(),
			p.Reference(),
			demand.TotalQuantity,
			p.Unit(),
			p.SupplierUnitPrice(bucket.SupplierID),
			p.EffectiveTVARate(),
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	now := time.Now()
	var lastErr error
	for attempt := 0; attempt < supplierOrderNumberAttempts; attempt++ {
		created, err := supplierorder.NewSupplierOrder(
			kernel.NewUUID(),
			kernel.NewSupplierOrderNumber(now),
			bucket.SupplierID,
			lines,
			cmd.DeliveryDate(),
			cmd.ActorID(),
			now,
		)
		if err != nil {
			return nil, err
		}

		err = uow.SupplierOrderRepository().Add(ctx, created)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, ports.ErrOrderNumberConflict) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

func sortedBuckets(buckets map[kernel.UUID]services.SupplierBucket) []services.SupplierBucket {
	sorted := make([]services.SupplierBucket, 0, len(buckets))
	for _, bucket := range buckets {
		sorted = append(sorted, bucket)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SupplierID.String() < sorted[j].SupplierID.String()
	})
	return sorted
}
