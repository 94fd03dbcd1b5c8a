package commands

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a request to move an order along its
// workflow. The acting role decides whether the transition is authorized;
// the target status decides its side effects (leaving for delivery merges
// the order quantities into the shop's stock).
//
// Example:
//
//	cmd, err := commands.NewChangeOrderStatusCommand(orderID, order.Livraison, order.RoleLivreur, actorID)
//	if err != nil {
//	    return fmt.Errorf("invalid status change: %w", err)
//	}
//
//	handler := commands.NewChangeOrderStatusCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("status change failed: %w", err)
//	}
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	target    order.Status
	actorRole order.Role
	actorID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to change an order's status.
// Validates the order identifier, the target status and the acting role.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	actorRole order.Role,
	actorID kernel.UUID,
) (ChangeOrderStatusCommand, error) {
	statusCommand := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setTarget(target),
		statusCommand.setActor(actorRole, actorID),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested target status.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

// ActorRole returns the role of the acting user.
func (c ChangeOrderStatusCommand) ActorRole() order.Role {
	return c.actorRole
}

// ActorID returns the identifier of the acting user.
func (c ChangeOrderStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actorRole order.Role, actorID kernel.UUID) error {
	if err := errors.Join(
		actorRole.Validate(),
		actorID.Validate(),
	); err != nil {
		return err
	}

	c.actorRole = actorRole
	c.actorID = actorID
	return nil
}
