package commands

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Resolves every requested line against the catalog, snapshots product
// names, prices and TVA rates into the order and persists it in NEW status.
//
// Example:
//
//	handler := commands.NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now created and awaiting the next aggregation run
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Every line must reference an existing, orderable catalog product; the
// order totals are computed from the catalog snapshot, never from caller
// input. Uses a transaction so the order is fully persisted or not at all.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productIDs := make([]kernel.UUID, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		productIDs = append(productIDs, line.ProductID)
	}

	products, err := uow.ProductRepository().GetByIDs(ctx, productIDs)
	if err != nil {
		return err
	}

	items := make([]order.Item, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		p, ok := products[line.ProductID]
		if !ok {
			return errs.NewObjectNotFoundError("product", line.ProductID)
		}
		if !p.IsOrderable() {
			return errs.NewValueIsInvalidError("product " + p.Name() + " is not orderable")
		}

		item, err := order.NewItem(p.ID(), p.Name(), line.Quantity, p.PriceHT(), p.EffectiveTVARate())
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	now := time.Now()
	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		kernel.NewOrderNumber(now),
		cmd.ShopID(),
		items,
		now,
		cmd.DeliveryDate(),
		cmd.RecurringOrderID(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
