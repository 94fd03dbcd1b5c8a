package commands

import (
	"errors"
	"time"

	"procurement/internal/pkg/guard"
)

var ErrRunRecurringOrdersCommandIsNotConstructed = errors.New(
	"RunRecurringOrdersCommand must be created via NewRunRecurringOrdersCommand constructor",
)

// RunRecurringOrdersCommand represents one scheduler tick: every active
// template due at the given moment is executed into a concrete shop order.
//
// Example:
//
//	cmd, err := commands.NewRunRecurringOrdersCommand(time.Now())
//	if err != nil {
//	    return err
//	}
//
//	handler := commands.NewRunRecurringOrdersCommandHandler(uowFactory, notifier, throttle)
//	result, err := handler.Handle(ctx, cmd)
type RunRecurringOrdersCommand struct { //nolint:recvcheck //using for validation
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewRunRecurringOrdersCommand creates a command to execute all templates
// due at asOf.
func NewRunRecurringOrdersCommand(asOf time.Time) (RunRecurringOrdersCommand, error) {
	if asOf.IsZero() {
		return RunRecurringOrdersCommand{}, errors.New("asOf is required")
	}

	return RunRecurringOrdersCommand{
		asOf:  asOf,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RunRecurringOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRunRecurringOrdersCommandIsNotConstructed)
}

// AsOf returns the scheduler tick moment.
func (c RunRecurringOrdersCommand) AsOf() time.Time {
	return c.asOf
}
