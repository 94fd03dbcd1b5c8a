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
	"procurement/internal/core/domain/model/supplierorder"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
)

type MockSupplierOrderRepository struct{ mock.Mock }

func (m *MockSupplierOrderRepository) Add(ctx context.Context, so *supplierorder.SupplierOrder) error {
	args := m.Called(ctx, so)
	return args.Error(0)
}
func (m *MockSupplierOrderRepository) Update(ctx context.Context, so *supplierorder.SupplierOrder) error {
	args := m.Called(ctx, so)
	return args.Error(0)
}
func (m *MockSupplierOrderRepository) Get(
	ctx context.Context, id kernel.UUID,
) (*supplierorder.SupplierOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplierorder.SupplierOrder), args.Error(1)
}
func (m *MockSupplierOrderRepository) GetByDeliveryDate(
	ctx context.Context, deliveryDate time.Time,
) ([]*supplierorder.SupplierOrder, error) {
	args := m.Called(ctx, deliveryDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*supplierorder.SupplierOrder), args.Error(1)
}

type MockSupplierUoW struct{ mock.Mock }

func (m *MockSupplierUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSupplierUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSupplierUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSupplierUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockSupplierUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}
func (m *MockSupplierUoW) SupplierOrderRepository() ports.SupplierOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.SupplierOrderRepository)
}

type MockSupplierUoWFactory struct{ mock.Mock }

func (m *MockSupplierUoWFactory) Create() commands.SupplierUoW {
	args := m.Called()
	return args.Get(0).(commands.SupplierUoW)
}

func aggregatedOrderFor(t *testing.T, p *product.Product, quantity int64) *order.Order {
	t.Helper()
	aggregate := newOrderForAggregation(t, p, quantity)
	require.NoError(t, aggregate.MarkAggregated(time.Now(), order.RoleAdmin))
	return aggregate
}

func TestMaterializeSupplierOrdersCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	supplierID := kernel.NewUUID()
	negotiated := decimal.RequireFromString("0.90")

	p := newCatalogProduct(t)
	link, err := product.NewSupplierLink(supplierID, &negotiated)
	require.NoError(t, err)
	require.NoError(t, p.AssignSupplier(link))

	orders := []*order.Order{
		aggregatedOrderFor(t, p, 2),
		aggregatedOrderFor(t, p, 4),
	}
	cmd, _ := commands.NewMaterializeSupplierOrdersCommand(
		aggregationDate, nil, order.RoleAdmin, kernel.NewUUID())

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	supplierOrderRepo := new(MockSupplierOrderRepository)
	uow := new(MockSupplierUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("GetByDeliveryDateInStatus", mock.Anything, aggregationDate, order.Aggregated).
		Return(orders, nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).
		Return(map[kernel.UUID]*product.Product{p.ID(): p}, nil).Once()
	uow.On("SupplierOrderRepository").Return(supplierOrderRepo).Once()

	var created *supplierorder.SupplierOrder
	supplierOrderRepo.On("Add", mock.Anything, mock.AnythingOfType("*supplierorder.SupplierOrder")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*supplierorder.SupplierOrder)
		}).Return(nil).Once()
	orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Times(2)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSupplierUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMaterializeSupplierOrdersCommandHandler(factory, new(MockNotificationGateway))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Len(t, result.SupplierOrderIDs, 1)
	require.Equal(t, 2, result.OrdersCovered)
	require.Empty(t, result.Unassigned)

	require.NotNil(t, created)
	require.True(t, created.SupplierID().IsEqual(supplierID))
	require.Len(t, created.Lines(), 1)
	line := created.Lines()[0]
	require.True(t, line.Quantity().Equal(decimal.NewFromInt(6)), "quantity: %s", line.Quantity())
	// negotiated supplier price wins over the catalog price
	require.True(t, line.UnitPrice().Equal(negotiated))
	// 6 x 0.90 = 5.40 HT, TVA 0.30, TTC 5.70
	require.True(t, created.Totals().TTC().Equal(decimal.RequireFromString("5.70")),
		"TTC: %s", created.Totals().TTC())

	for _, aggregate := range orders {
		require.Equal(t, order.SupplierOrdered, aggregate.Status())
		require.NotNil(t, aggregate.SupplierOrderID())
	}
	uow.AssertExpectations(t)
	supplierOrderRepo.AssertExpectations(t)
}

func TestMaterializeSupplierOrdersCommandHandler_Handle_RetriesOnNumberConflict(t *testing.T) {
	ctx := t.Context()
	supplierID := kernel.NewUUID()
	p := newCatalogProduct(t)
	link, err := product.NewSupplierLink(supplierID, nil)
	require.NoError(t, err)
	require.NoError(t, p.AssignSupplier(link))

	orders := []*order.Order{aggregatedOrderFor(t, p, 2)}
	cmd, _ := commands.NewMaterializeSupplierOrdersCommand(
		aggregationDate, nil, order.RoleAdmin, kernel.NewUUID())

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	supplierOrderRepo := new(MockSupplierOrderRepository)
	uow := new(MockSupplierUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("GetByDeliveryDateInStatus", mock.Anything, aggregationDate, order.Aggregated).
		Return(orders, nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).
		Return(map[kernel.UUID]*product.Product{p.ID(): p}, nil).Once()
	uow.On("SupplierOrderRepository").Return(supplierOrderRepo)

	supplierOrderRepo.On("Add", mock.Anything, mock.AnythingOfType("*supplierorder.SupplierOrder")).
		Return(ports.ErrOrderNumberConflict).Twice()
	supplierOrderRepo.On("Add", mock.Anything, mock.AnythingOfType("*supplierorder.SupplierOrder")).
		Return(nil).Once()
	orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSupplierUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMaterializeSupplierOrdersCommandHandler(factory, new(MockNotificationGateway))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, result.SupplierOrderIDs, 1)
	supplierOrderRepo.AssertExpectations(t)
}

func TestMaterializeSupplierOrdersCommandHandler_Handle_NoAggregatedOrders(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewMaterializeSupplierOrdersCommand(
		aggregationDate, nil, order.RoleAdmin, kernel.NewUUID())

	orderRepo := new(MockOrderRepository)
	uow := new(MockSupplierUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByDeliveryDateInStatus", mock.Anything, aggregationDate, order.Aggregated).
			Return([]*order.Order{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSupplierUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMaterializeSupplierOrdersCommandHandler(factory, new(MockNotificationGateway))
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestMaterializeSupplierOrdersCommandHandler_Handle_UnassignedStaysAggregated(t *testing.T) {
	ctx := t.Context()
	p := newCatalogProduct(t) // no supplier assigned
	orders := []*order.Order{aggregatedOrderFor(t, p, 2)}
	cmd, _ := commands.NewMaterializeSupplierOrdersCommand(
		aggregationDate, nil, order.RoleAdmin, kernel.NewUUID())

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockSupplierUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("GetByDeliveryDateInStatus", mock.Anything, aggregationDate, order.Aggregated).
		Return(orders, nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).
		Return(map[kernel.UUID]*product.Product{p.ID(): p}, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSupplierUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationGateway)
	notifier.On("NotifyAdmins", mock.Anything, "Products without supplier", mock.Anything).
		Return(nil).Once()

	h := commands.NewMaterializeSupplierOrdersCommandHandler(factory, notifier)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Empty(t, result.SupplierOrderIDs)
	require.Equal(t, 0, result.OrdersCovered)
	require.Len(t, result.Unassigned, 1)
	require.Equal(t, order.Aggregated, orders[0].Status())
	notifier.AssertExpectations(t)
}

func TestMaterializeSupplierOrdersCommandHandler_Handle_RestrictsToRequestedSupplier(t *testing.T) {
	ctx := t.Context()
	supplierA := kernel.NewUUID()
	supplierB := kernel.NewUUID()

	productA := newCatalogProduct(t)
	linkA, err := product.NewSupplierLink(supplierA, nil)
	require.NoError(t, err)
	require.NoError(t, productA.AssignSupplier(linkA))

	productB := newCatalogProduct(t)
	linkB, err := product.NewSupplierLink(supplierB, nil)
	require.NoError(t, err)
	require.NoError(t, productB.AssignSupplier(linkB))

	orderA := aggregatedOrderFor(t, productA, 3)
	orderB := aggregatedOrderFor(t, productB, 5)
	cmd, _ := commands.NewMaterializeSupplierOrdersCommand(
		aggregationDate, &supplierA, order.RoleAdmin, kernel.NewUUID())

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	supplierOrderRepo := new(MockSupplierOrderRepository)
	uow := new(MockSupplierUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("GetByDeliveryDateInStatus", mock.Anything, aggregationDate, order.Aggregated).
		Return([]*order.Order{orderA, orderB}, nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).
		Return(map[kernel.UUID]*product.Product{
			productA.ID(): productA,
			productB.ID(): productB,
		}, nil).Once()
	uow.On("SupplierOrderRepository").Return(supplierOrderRepo).Once()

	var created *supplierorder.SupplierOrder
	supplierOrderRepo.On("Add", mock.Anything, mock.AnythingOfType("*supplierorder.SupplierOrder")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*supplierorder.SupplierOrder)
		}).Return(nil).Once()
	orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSupplierUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMaterializeSupplierOrdersCommandHandler(factory, new(MockNotificationGateway))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Len(t, result.SupplierOrderIDs, 1)
	require.Equal(t, 1, result.OrdersCovered)
	require.NotNil(t, created)
	require.True(t, created.SupplierID().IsEqual(supplierA))

	// the other supplier's orders wait for their own run
	require.Equal(t, order.SupplierOrdered, orderA.Status())
	require.Equal(t, order.Aggregated, orderB.Status())
	supplierOrderRepo.AssertExpectations(t)
}

func TestMaterializeSupplierOrdersCommandHandler_Handle_UnknownSupplierNotFound(t *testing.T) {
	ctx := t.Context()
	supplierID := kernel.NewUUID()
	p := newCatalogProduct(t)
	link, err := product.NewSupplierLink(supplierID, nil)
	require.NoError(t, err)
	require.NoError(t, p.AssignSupplier(link))

	orders := []*order.Order{aggregatedOrderFor(t, p, 2)}
	other := kernel.NewUUID()
	cmd, _ := commands.NewMaterializeSupplierOrdersCommand(
		aggregationDate, &other, order.RoleAdmin, kernel.NewUUID())

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockSupplierUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("GetByDeliveryDateInStatus", mock.Anything, aggregationDate, order.Aggregated).
		Return(orders, nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	productRepo.On("GetByIDs", mock.Anything, mock.Anything).
		Return(map[kernel.UUID]*product.Product{p.ID(): p}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSupplierUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMaterializeSupplierOrdersCommandHandler(factory, new(MockNotificationGateway))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.Equal(t, order.Aggregated, orders[0].Status())
	uow.AssertExpectations(t)
}
