package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/product"
	"procurement/internal/pkg/errs"
)

type MockNotificationGateway struct{ mock.Mock }

func (m *MockNotificationGateway) NotifyAdmins(ctx context.Context, subject, message string) error {
	args := m.Called(ctx, subject, message)
	return args.Error(0)
}
func (m *MockNotificationGateway) NotifyRole(
	ctx context.Context, role order.Role, subject, message string,
) error {
	args := m.Called(ctx, role, subject, message)
	return args.Error(0)
}

var aggregationDate = time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)

func newOrderForAggregation(t *testing.T, p *product.Product, quantity int64) *order.Order {
	t.Helper()
	now := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

	item, err := order.NewItem(p.ID(), p.Name(), decimal.NewFromInt(quantity),
		p.PriceHT(), p.EffectiveTVARate())
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewOrderNumber(now), kernel.NewUUID(),
		[]order.Item{item}, now, &aggregationDate, nil)
	require.NoError(t, err)
	return o
}

func TestAggregateOrdersCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	p := newCatalogProduct(t)
	link, err := product.NewSupplierLink(kernel.NewUUID(), nil)
	require.NoError(t, err)
	require.NoError(t, p.AssignSupplier(link))

	orders := []*order.Order{
		newOrderForAggregation(t, p, 2),
		newOrderForAggregation(t, p, 2),
		newOrderForAggregation(t, p, 2),
	}
	cmd, _ := commands.NewAggregateOrdersCommand(aggregationDate, order.RoleAdmin, kernel.NewUUID())

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("GetByDeliveryDateInStatus", mock.Anything, aggregationDate, order.New).
		Return(orders, nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).
		Return(map[kernel.UUID]*product.Product{p.ID(): p}, nil).Once()
	orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Times(3)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationGateway)

	h := commands.NewAggregateOrdersCommandHandler(factory, notifier)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, 3, result.OrdersAggregated)
	require.Len(t, result.Demands, 1)
	require.True(t, result.Demands[0].TotalQuantity.Equal(decimal.NewFromInt(6)))
	require.Empty(t, result.Unassigned)
	for _, aggregate := range orders {
		require.Equal(t, order.Aggregated, aggregate.Status())
	}
	notifier.AssertNotCalled(t, "NotifyAdmins", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestAggregateOrdersCommandHandler_Handle_NoOrders(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAggregateOrdersCommand(aggregationDate, order.RoleAdmin, kernel.NewUUID())

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByDeliveryDateInStatus", mock.Anything, aggregationDate, order.New).
			Return([]*order.Order{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAggregateOrdersCommandHandler(factory, new(MockNotificationGateway))
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestAggregateOrdersCommandHandler_Handle_NotifiesUnassigned(t *testing.T) {
	ctx := t.Context()
	p := newCatalogProduct(t) // no supplier assigned
	orders := []*order.Order{newOrderForAggregation(t, p, 2)}
	cmd, _ := commands.NewAggregateOrdersCommand(aggregationDate, order.RoleAdmin, kernel.NewUUID())

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("GetByDeliveryDateInStatus", mock.Anything, aggregationDate, order.New).
		Return(orders, nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).
		Return(map[kernel.UUID]*product.Product{p.ID(): p}, nil).Once()
	orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationGateway)
	notifier.On("NotifyAdmins", mock.Anything, "Products without supplier", mock.Anything).
		Return(nil).Once()

	h := commands.NewAggregateOrdersCommandHandler(factory, notifier)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, result.Unassigned, 1)
	notifier.AssertExpectations(t)
}
