package commands

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/guard"
)

var ErrAggregateOrdersCommandIsNotConstructed = errors.New(
	"AggregateOrdersCommand must be created via NewAggregateOrdersCommand constructor",
)

// AggregateOrdersCommand represents a request to run the aggregation for
// one delivery date: all NEW orders for that date are merged into
// per-product demand and moved to AGGREGATED.
//
// Example:
//
//	cmd, err := commands.NewAggregateOrdersCommand(deliveryDate, order.RoleAdmin, actorID)
//	if err != nil {
//	    return fmt.Errorf("invalid aggregation request: %w", err)
//	}
//
//	handler := commands.NewAggregateOrdersCommandHandler(uowFactory, notifier)
//	result, err := handler.Handle(ctx, cmd)
type AggregateOrdersCommand struct { //nolint:recvcheck //using for validation
	deliveryDate time.Time
	actorRole    order.Role
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewAggregateOrdersCommand creates a command to aggregate one delivery
// date's orders. Validates the acting role and identifier; the transition
// table decides later whether the role may aggregate.
func NewAggregateOrdersCommand(
	deliveryDate time.Time,
	actorRole order.Role,
	actorID kernel.UUID,
) (AggregateOrdersCommand, error) {
	aggregateCommand := AggregateOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if deliveryDate.IsZero() {
		return AggregateOrdersCommand{}, errors.New("delivery date is required")
	}

	if err := errors.Join(
		actorRole.Validate(),
		actorID.Validate(),
	); err != nil {
		return AggregateOrdersCommand{}, err
	}

	aggregateCommand.deliveryDate = deliveryDate
	aggregateCommand.actorRole = actorRole
	aggregateCommand.actorID = actorID
	return aggregateCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AggregateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAggregateOrdersCommandIsNotConstructed)
}

// DeliveryDate returns the delivery date to aggregate.
func (c AggregateOrdersCommand) DeliveryDate() time.Time {
	return c.deliveryDate
}

// ActorRole returns the role of the acting user.
func (c AggregateOrdersCommand) ActorRole() order.Role {
	return c.actorRole
}

// ActorID returns the identifier of the acting user.
func (c AggregateOrdersCommand) ActorID() kernel.UUID {
	return c.actorID
}
