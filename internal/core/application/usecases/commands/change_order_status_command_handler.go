package commands

import (
	"context"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler handles order workflow transitions.
// The transition table decides which edges exist and which roles may take
// them; this handler adds the transactional side effects around them.
//
// Confirming a delivery (LIVRAISON to LIVREE) merges the order's
// quantities into the shop's stock inside the same transaction: either the
// order is delivered AND the stock is updated, or neither happens.
type ChangeOrderStatusCommandHandler struct {
	uowFactory StockUoWFactory
}

// NewChangeOrderStatusCommandHandler creates a handler for status changes.
// Requires a StockUoWFactory because delivery confirmations touch shop stock.
func NewChangeOrderStatusCommandHandler(uowFactory StockUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command.
// Re-requesting the status an order already has is a no-op, not an error,
// so retried requests stay safe. The transition is authorized before any
// side effect runs: an unauthorized LIVREE request never touches stock.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if aggregate == nil {
		return errs.NewObjectNotFoundError("order", cmd.OrderID())
	}

	// already there: retried requests must not fail
	if aggregate.Status() == cmd.Target() {
		return nil
	}

	if result := aggregate.CanTransitionBy(cmd.Target(), cmd.ActorRole()); !result.Allowed {
		return errs.NewStateTransitionError(
			aggregate.Status().String(), cmd.Target().String(), result.Reason)
	}

	// the status check keeps a replayed confirmation from counting twice
	if cmd.Target() == order.Livree && aggregate.Status() == order.Livraison {
		stockRepo := uow.StockRepository()
		for _, item := range aggregate.Items() {
			if err = stockRepo.AddQuantity(ctx, aggregate.ShopID(), item.ProductID(), item.Quantity()); err != nil {
				return err
			}
		}
	}

	if err = aggregate.TransitionBy(cmd.Target(), cmd.ActorRole()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
