package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/product"
	"procurement/internal/core/domain/services"
)

var (
	testNow          = time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	testDeliveryDate = time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)
)

func buildOrder(t *testing.T, shopID kernel.UUID, deliveryDate time.Time, items ...order.Item) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewOrderNumber(testNow),
		shopID,
		items,
		testNow,
		&deliveryDate,
		nil,
	)
	require.NoError(t, err)
	return o
}

func buildItem(t *testing.T, productID kernel.UUID, name, quantity string) order.Item {
	t.Helper()
	item, err := order.NewItem(
		productID,
		name,
		decimal.RequireFromString(quantity),
		decimal.RequireFromString("1.00"),
		decimal.RequireFromString("5.5"),
	)
	require.NoError(t, err)
	return item
}

func buildProduct(t *testing.T, id kernel.UUID, name string, supplierIDs ...kernel.UUID) *product.Product {
	t.Helper()
	p, err := product.NewProduct(id, name, "REF-"+name, "kg",
		decimal.RequireFromString("1.00"), decimal.RequireFromString("5.5"))
	require.NoError(t, err)

	for _, supplierID := range supplierIDs {
		link, err := product.NewSupplierLink(supplierID, nil)
		require.NoError(t, err)
		require.NoError(t, p.AssignSupplier(link))
	}
	return p
}

func TestAggregateByProductAndDate(t *testing.T) {
	aggregator := services.NewAggregator()

	t.Run("should sum quantities of the same product across shops", func(t *testing.T) {
		productID := kernel.NewUUID()
		shopA, shopB, shopC := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

		orders := []*order.Order{
			buildOrder(t, shopA, testDeliveryDate, buildItem(t, productID, "Tomates", "2")),
			buildOrder(t, shopB, testDeliveryDate, buildItem(t, productID, "Tomates", "2")),
			buildOrder(t, shopC, testDeliveryDate, buildItem(t, productID, "Tomates", "2")),
		}

		demands, err := aggregator.AggregateByProductAndDate(orders)
		require.NoError(t, err)
		require.Len(t, demands, 1)

		demand := demands[0]
		assert.True(t, demand.ProductID.IsEqual(productID))
		assert.Equal(t, "Tomates", demand.ProductName)
		assert.True(t, demand.TotalQuantity.Equal(decimal.NewFromInt(6)), "quantity: %s", demand.TotalQuantity)
		assert.Len(t, demand.Contributions, 3)
		assert.Equal(t, 3, demand.ShopCount())
	})

	t.Run("should keep different products apart", func(t *testing.T) {
		tomates, carottes := kernel.NewUUID(), kernel.NewUUID()
		shopID := kernel.NewUUID()

		orders := []*order.Order{
			buildOrder(t, shopID, testDeliveryDate,
				buildItem(t, tomates, "Tomates", "2"),
				buildItem(t, carottes, "Carottes", "3"),
			),
			buildOrder(t, shopID, testDeliveryDate, buildItem(t, tomates, "Tomates", "1")),
		}

		demands, err := aggregator.AggregateByProductAndDate(orders)
		require.NoError(t, err)
		require.Len(t, demands, 2)

		assert.True(t, demands[0].TotalQuantity.Equal(decimal.NewFromInt(3)))
		assert.True(t, demands[1].TotalQuantity.Equal(decimal.NewFromInt(3)))
	})

	t.Run("should group by calendar day not by timestamp", func(t *testing.T) {
		productID := kernel.NewUUID()
		morning := time.Date(2026, time.March, 12, 6, 30, 0, 0, time.UTC)
		evening := time.Date(2026, time.March, 12, 19, 0, 0, 0, time.UTC)

		orders := []*order.Order{
			buildOrder(t, kernel.NewUUID(), morning, buildItem(t, productID, "Tomates", "1")),
			buildOrder(t, kernel.NewUUID(), evening, buildItem(t, productID, "Tomates", "1")),
		}

		demands, err := aggregator.AggregateByProductAndDate(orders)
		require.NoError(t, err)
		require.Len(t, demands, 1)
		assert.True(t, demands[0].TotalQuantity.Equal(decimal.NewFromInt(2)))
		assert.Equal(t, testDeliveryDate, demands[0].DeliveryDate)
	})

	t.Run("should split demands over different delivery dates", func(t *testing.T) {
		productID := kernel.NewUUID()
		nextDay := testDeliveryDate.AddDate(0, 0, 1)

		orders := []*order.Order{
			buildOrder(t, kernel.NewUUID(), testDeliveryDate, buildItem(t, productID, "Tomates", "1")),
			buildOrder(t, kernel.NewUUID(), nextDay, buildItem(t, productID, "Tomates", "1")),
		}

		demands, err := aggregator.AggregateByProductAndDate(orders)
		require.NoError(t, err)
		assert.Len(t, demands, 2)
	})

	t.Run("should count each shop once in shop count", func(t *testing.T) {
		productID := kernel.NewUUID()
		shopID := kernel.NewUUID()

		orders := []*order.Order{
			buildOrder(t, shopID, testDeliveryDate, buildItem(t, productID, "Tomates", "1")),
			buildOrder(t, shopID, testDeliveryDate, buildItem(t, productID, "Tomates", "1")),
		}

		demands, err := aggregator.AggregateByProductAndDate(orders)
		require.NoError(t, err)
		require.Len(t, demands, 1)
		assert.Len(t, demands[0].Contributions, 2)
		assert.Equal(t, 1, demands[0].ShopCount())
	})

	t.Run("should return empty result for no orders", func(t *testing.T) {
		demands, err := aggregator.AggregateByProductAndDate(nil)
		require.NoError(t, err)
		assert.Empty(t, demands)
	})

	t.Run("should return error when an order has no delivery date", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(),
			kernel.NewOrderNumber(testNow),
			kernel.NewUUID(),
			[]order.Item{buildItem(t, kernel.NewUUID(), "Tomates", "1")},
			testNow,
			nil,
			nil,
		)
		require.NoError(t, err)

		_, err = aggregator.AggregateByProductAndDate([]*order.Order{o})
		require.ErrorIs(t, err, services.ErrOrderHasNoDeliveryDate)
	})
}

func TestGroupBySupplier(t *testing.T) {
	aggregator := services.NewAggregator()

	t.Run("should route demand to the product's primary supplier", func(t *testing.T) {
		productID := kernel.NewUUID()
		supplierID := kernel.NewUUID()

		orders := []*order.Order{
			buildOrder(t, kernel.NewUUID(), testDeliveryDate, buildItem(t, productID, "Tomates", "2")),
			buildOrder(t, kernel.NewUUID(), testDeliveryDate, buildItem(t, productID, "Tomates", "2")),
			buildOrder(t, kernel.NewUUID(), testDeliveryDate, buildItem(t, productID, "Tomates", "2")),
		}
		demands, err := aggregator.AggregateByProductAndDate(orders)
		require.NoError(t, err)

		products := map[kernel.UUID]*product.Product{
			productID: buildProduct(t, productID, "Tomates", supplierID),
		}

		buckets, unassigned := aggregator.GroupBySupplier(demands, products)
		require.Len(t, buckets, 1)
		assert.Empty(t, unassigned)

		bucket := buckets[supplierID]
		require.Len(t, bucket.Demands, 1)
		assert.True(t, bucket.Demands[0].TotalQuantity.Equal(decimal.NewFromInt(6)))
	})

	t.Run("should use the first supplier when several are assigned", func(t *testing.T) {
		productID := kernel.NewUUID()
		first, second := kernel.NewUUID(), kernel.NewUUID()

		demands, err := aggregator.AggregateByProductAndDate([]*order.Order{
			buildOrder(t, kernel.NewUUID(), testDeliveryDate, buildItem(t, productID, "Tomates", "1")),
		})
		require.NoError(t, err)

		products := map[kernel.UUID]*product.Product{
			productID: buildProduct(t, productID, "Tomates", first, second),
		}

		buckets, unassigned := aggregator.GroupBySupplier(demands, products)
		assert.Empty(t, unassigned)
		require.Len(t, buckets, 1)
		_, ok := buckets[first]
		assert.True(t, ok)
	})

	t.Run("should collect products without supplier as unassigned", func(t *testing.T) {
		withSupplier := kernel.NewUUID()
		withoutSupplier := kernel.NewUUID()
		unknownProduct := kernel.NewUUID()
		supplierID := kernel.NewUUID()

		demands, err := aggregator.AggregateByProductAndDate([]*order.Order{
			buildOrder(t, kernel.NewUUID(), testDeliveryDate,
				buildItem(t, withSupplier, "Tomates", "1"),
				buildItem(t, withoutSupplier, "Carottes", "1"),
				buildItem(t, unknownProduct, "Navets", "1"),
			),
		})
		require.NoError(t, err)

		products := map[kernel.UUID]*product.Product{
			withSupplier:    buildProduct(t, withSupplier, "Tomates", supplierID),
			withoutSupplier: buildProduct(t, withoutSupplier, "Carottes"),
		}

		buckets, unassigned := aggregator.GroupBySupplier(demands, products)
		require.Len(t, buckets, 1)
		require.Len(t, unassigned, 2)

		// every demand lands exactly once, in a bucket or in unassigned
		routed := 0
		for _, bucket := range buckets {
			routed += len(bucket.Demands)
		}
		assert.Equal(t, len(demands), routed+len(unassigned))
	})

	t.Run("should group several products of one supplier into one bucket", func(t *testing.T) {
		tomates, carottes := kernel.NewUUID(), kernel.NewUUID()
		supplierID := kernel.NewUUID()

		demands, err := aggregator.AggregateByProductAndDate([]*order.Order{
			buildOrder(t, kernel.NewUUID(), testDeliveryDate,
				buildItem(t, tomates, "Tomates", "2"),
				buildItem(t, carottes, "Carottes", "3"),
			),
		})
		require.NoError(t, err)

		products := map[kernel.UUID]*product.Product{
			tomates:  buildProduct(t, tomates, "Tomates", supplierID),
			carottes: buildProduct(t, carottes, "Carottes", supplierID),
		}

		buckets, unassigned := aggregator.GroupBySupplier(demands, products)
		assert.Empty(t, unassigned)
		require.Len(t, buckets, 1)
		assert.Len(t, buckets[supplierID].Demands, 2)
	})
}
