package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/recurring"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
)

// RunRecurringOrdersResult summarizes one scheduler tick.
type RunRecurringOrdersResult struct {
	// Succeeded is the number of templates executed without error,
	// including templates whose execution produced no order because every
	// product became unorderable.
	Succeeded int

	// Failed is the number of templates whose execution rolled back.
	Failed int

	// OrdersCreated is the number of shop orders actually created.
	OrdersCreated int

	// FailedTemplateIDs identifies the templates that failed.
	FailedTemplateIDs []kernel.UUID
}

// RunRecurringOrdersCommandHandler executes due recurring templates.
//
// Every template runs in its own transaction: one corrupt template fails
// alone, advances nothing of its own state and never blocks the others.
// Failures raise an administrator alert, rate-limited per template by the
// throttle so a permanently broken template alerts once per window, not
// once per tick.
type RunRecurringOrdersCommandHandler struct {
	uowFactory RecurringUoWFactory
	notifier   ports.NotificationGateway
	throttle   *AlertThrottle
	logger     *slog.Logger
}

// NewRunRecurringOrdersCommandHandler creates a handler for scheduler ticks.
func NewRunRecurringOrdersCommandHandler(
	uowFactory RecurringUoWFactory,
	notifier ports.NotificationGateway,
	throttle *AlertThrottle,
	logger *slog.Logger,
) RunRecurringOrdersCommandHandler {
	return RunRecurringOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		throttle:   throttle,
		logger:     logger.With("component", "run_recurring_orders"),
	}
}

// Handle processes one scheduler tick.
// The returned error covers only the due-template lookup; per-template
// failures are isolated, counted and reported in the result instead.
func (h *RunRecurringOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd RunRecurringOrdersCommand,
) (RunRecurringOrdersResult, error) {
	if err := cmd.Validate(); err != nil {
		return RunRecurringOrdersResult{}, err
	}

	templateIDs, err := h.collectDue(ctx, cmd.AsOf())
	if err != nil {
		return RunRecurringOrdersResult{}, err
	}

	var result RunRecurringOrdersResult
	for _, templateID := range templateIDs {
		created, err := h.executeTemplate(ctx, templateID, cmd.AsOf())
		if err != nil {
			result.Failed++
			result.FailedTemplateIDs = append(result.FailedTemplateIDs, templateID)
			h.logger.Error("recurring template execution failed",
				"template_id", templateID.String(), "error", err)

			if h.throttle.ShouldAlert(templateID) {
				_ = h.notifier.NotifyAdmins(ctx, "Recurring order failed",
					fmt.Sprintf("template %s failed: %v", templateID.String(), err))
			}
			continue
		}

		result.Succeeded++
		if created {
			result.OrdersCreated++
		}
	}

	return result, nil
}

// collectDue reads the due template ids in a short read-only transaction.
func (h *RunRecurringOrdersCommandHandler) collectDue(ctx context.Context, asOf time.Time) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	templates, err := uow.RecurringOrderRepository().GetAllDue(ctx, asOf)
	if err != nil {
		return nil, err
	}

	templateIDs := make([]kernel.UUID, 0, len(templates))
	for _, template := range templates {
		templateIDs = append(templateIDs, template.ID())
	}
	return templateIDs, nil
}

// executeTemplate runs one template in its own transaction and reports
// whether an order was created.
func (h *RunRecurringOrdersCommandHandler) executeTemplate(
	ctx context.Context,
	templateID kernel.UUID,
	asOf time.Time,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	template, err := uow.RecurringOrderRepository().Get(ctx, templateID)
	if err != nil {
		return false, err
	}
	if template == nil {
		return false, errs.NewObjectNotFoundError("recurring template", templateID)
	}

	// a concurrent run may have executed the template already
	if !template.IsDue(asOf) {
		return false, nil
	}

	items, err := h.resolveItems(ctx, uow, template)
	if err != nil {
		return false, err
	}

	var newOrder *order.Order
	if len(items) == 0 {
		h.logger.Warn("recurring template has no orderable products, skipping order",
			"template_id", templateID.String(), "template_name", template.Name())
	} else {
		deliveryDate := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
		templateRef := template.ID()
		newOrder, err = order.NewOrder(
			kernel.NewUUID(),
			kernel.NewOrderNumber(asOf),
			template.ShopID(),
			items,
			asOf,
			&deliveryDate,
			&templateRef,
		)
		if err != nil {
			return false, err
		}

		if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
			return false, err
		}
	}

	// nextRun advances even without an order, so a fully unorderable
	// template does not fire again every tick
	template.MarkExecuted(asOf)
	if err = uow.RecurringOrderRepository().Update(ctx, template); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	// best effort, after the commit: a failed notification must not undo
	// a created order
	if newOrder != nil {
		_ = h.notifier.NotifyAdmins(ctx, "Recurring order created",
			fmt.Sprintf("order %s created for shop %s from template %s",
				newOrder.OrderNumber(), newOrder.ShopID().String(), template.Name()))
	}

	return newOrder != nil, nil
}

// resolveItems snapshots the template items against the live catalog,
// dropping products that disappeared or became unorderable.
func (h *RunRecurringOrdersCommandHandler) resolveItems(
	ctx context.Context,
	uow RecurringUoW,
	template *recurring.Template,
) ([]order.Item, error) {
	productIDs := make([]kernel.UUID, 0, len(template.Items()))
	for _, item := range template.Items() {
		productIDs = append(productIDs, item.ProductID())
	}

	products, err := uow.ProductRepository().GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(template.Items()))
	for _, templateItem := range template.Items() {
		p, ok := products[templateItem.ProductID()]
		if !ok || !p.IsOrderable() {
			h.logger.Warn("recurring template references unorderable product",
				"template_id", template.ID().String(),
				"product_id", templateItem.ProductID().String())
			continue
		}

		item, err := order.NewItem(p.ID(), p.Name(), templateItem.Quantity(), p.PriceHT(), p.EffectiveTVARate())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
