package commands_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/kernel"
)

func TestNewCreateOrderCommand(t *testing.T) {
	validLines := []commands.CreateOrderLine{
		{ProductID: kernel.NewUUID(), Quantity: decimal.NewFromInt(2)},
	}

	t.Run("should create command with valid arguments", func(t *testing.T) {
		orderID, shopID := kernel.NewUUID(), kernel.NewUUID()
		deliveryDate := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)

		cmd, err := commands.NewCreateOrderCommand(orderID, shopID, validLines, &deliveryDate, nil)
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())

		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.ShopID().IsEqual(shopID))
		assert.Len(t, cmd.Lines(), 1)
		assert.Equal(t, deliveryDate, *cmd.DeliveryDate())
		assert.Nil(t, cmd.RecurringOrderID())
	})

	t.Run("should return error for empty order id", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.UUID{}, kernel.NewUUID(), validLines, nil, nil)
		require.Error(t, err)
	})

	t.Run("should return error for empty shop id", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.UUID{}, validLines, nil, nil)
		require.Error(t, err)
	})

	t.Run("should return error for empty lines", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), nil, nil, nil)
		require.ErrorIs(t, err, commands.ErrOrderLinesAreRequired)
	})

	t.Run("should return error for non-positive quantity", func(t *testing.T) {
		lines := []commands.CreateOrderLine{
			{ProductID: kernel.NewUUID(), Quantity: decimal.Zero},
		}
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), lines, nil, nil)
		require.Error(t, err)
	})

	t.Run("should return error for zero value command", func(t *testing.T) {
		cmd := commands.CreateOrderCommand{}
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
