package commands

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderLinesAreRequired = errors.New("at least one order line is required")
)

// CreateOrderLine is one requested (product, quantity) pair of a new order.
// Prices are never accepted from the caller: they are snapshotted from the
// catalog by the handler.
type CreateOrderLine struct {
	ProductID kernel.UUID
	Quantity  decimal.Decimal
}

// CreateOrderCommand represents a request to create a new shop order.
// Encapsulates the ordering shop, the requested lines and an optional
// delivery date.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	lines := []commands.CreateOrderLine{{ProductID: productID, Quantity: decimal.NewFromInt(2)}}
//	cmd, err := commands.NewCreateOrderCommand(orderID, shopID, lines, &deliveryDate, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := commands.NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	shopID           kernel.UUID
	lines            []CreateOrderLine
	deliveryDate     *time.Time
	recurringOrderID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new shop order.
// Validates that the order and shop identifiers are valid and that every
// line carries a known product and a positive quantity.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	shopID kernel.UUID,
	lines []CreateOrderLine,
	deliveryDate *time.Time,
	recurringOrderID *kernel.UUID,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setShopID(shopID),
		orderCommand.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	orderCommand.deliveryDate = deliveryDate
	orderCommand.recurringOrderID = recurringOrderID
	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShopID returns the ordering shop's identifier.
func (c CreateOrderCommand) ShopID() kernel.UUID {
	return c.shopID
}

// Lines returns the requested order lines.
func (c CreateOrderCommand) Lines() []CreateOrderLine {
	return c.lines
}

// DeliveryDate returns the requested delivery date, nil if not set yet.
func (c CreateOrderCommand) DeliveryDate() *time.Time {
	return c.deliveryDate
}

// RecurringOrderID returns the originating template for scheduler-created
// orders, nil for direct orders.
func (c CreateOrderCommand) RecurringOrderID() *kernel.UUID {
	return c.recurringOrderID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return err
	}

	c.shopID = shopID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []CreateOrderLine) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}

	for _, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return err
		}
		if !line.Quantity.IsPositive() {
			return errs.NewValueIsInvalidError("quantity must be greater than 0")
		}
	}

	c.lines = lines
	return nil
}
