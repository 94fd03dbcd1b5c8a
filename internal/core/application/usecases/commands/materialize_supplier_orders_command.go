package commands

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/guard"
)

var ErrMaterializeSupplierOrdersCommandIsNotConstructed = errors.New(
	"MaterializeSupplierOrdersCommand must be created via NewMaterializeSupplierOrdersCommand constructor",
)

// MaterializeSupplierOrdersCommand represents a request to turn one
// delivery date's AGGREGATED orders into supplier purchase orders, one per
// supplier. An optional supplier identifier restricts the run to that
// supplier's bucket.
//
// Example:
//
//	cmd, err := commands.NewMaterializeSupplierOrdersCommand(deliveryDate, nil, order.RoleAdmin, actorID)
//	if err != nil {
//	    return fmt.Errorf("invalid materialization request: %w", err)
//	}
//
//	handler := commands.NewMaterializeSupplierOrdersCommandHandler(uowFactory, notifier)
//	result, err := handler.Handle(ctx, cmd)
type MaterializeSupplierOrdersCommand struct { //nolint:recvcheck //using for validation
	deliveryDate time.Time
	supplierID   *kernel.UUID
	actorRole    order.Role
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewMaterializeSupplierOrdersCommand creates a command to materialize
// supplier purchase orders for one delivery date. A nil supplierID
// materializes every supplier bucket of that date.
func NewMaterializeSupplierOrdersCommand(
	deliveryDate time.Time,
	supplierID *kernel.UUID,
	actorRole order.Role,
	actorID kernel.UUID,
) (MaterializeSupplierOrdersCommand, error) {
	materializeCommand := MaterializeSupplierOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if deliveryDate.IsZero() {
		return MaterializeSupplierOrdersCommand{}, errors.New("delivery date is required")
	}

	if err := errors.Join(
		actorRole.Validate(),
		actorID.Validate(),
	); err != nil {
		return MaterializeSupplierOrdersCommand{}, err
	}

	if supplierID != nil {
		if err := supplierID.Validate(); err != nil {
			return MaterializeSupplierOrdersCommand{}, err
		}
		id := *supplierID
		materializeCommand.supplierID = &id
	}

	materializeCommand.deliveryDate = deliveryDate
	materializeCommand.actorRole = actorRole
	materializeCommand.actorID = actorID
	return materializeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MaterializeSupplierOrdersCommand) Validate() error {
	return c.guard.Validate(ErrMaterializeSupplierOrdersCommandIsNotConstructed)
}

// DeliveryDate returns the delivery date to materialize.
func (c MaterializeSupplierOrdersCommand) DeliveryDate() time.Time {
	return c.deliveryDate
}

// SupplierID returns the supplier restriction, or nil for all suppliers.
func (c MaterializeSupplierOrdersCommand) SupplierID() *kernel.UUID {
	return c.supplierID
}

// ActorRole returns the role of the acting user.
func (c MaterializeSupplierOrdersCommand) ActorRole() order.Role {
	return c.actorRole
}

// ActorID returns the identifier of the acting user.
func (c MaterializeSupplierOrdersCommand) ActorID() kernel.UUID {
	return c.actorID
}
