package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/product"
)

// ErrOrderHasNoDeliveryDate is returned when an order without a delivery
// date is submitted for aggregation. The delivery date is the grouping key,
// so undated orders cannot participate in a run.
var ErrOrderHasNoDeliveryDate = errors.New("order has no delivery date")

// Contribution records one shop order's share of an aggregated demand.
// It keeps the link back to the originating order so the aggregation
// result stays traceable per shop.
type Contribution struct {
	OrderID     kernel.UUID
	OrderNumber string
	ShopID      kernel.UUID
	Quantity    decimal.Decimal
}

// AggregatedDemand is the merged quantity of one product for one delivery
// date across all participating shop orders.
type AggregatedDemand struct {
	ProductID     kernel.UUID
	ProductName   string
	DeliveryDate  time.Time
	TotalQuantity decimal.Decimal
	Contributions []Contribution
}

// ShopCount returns the number of distinct shops contributing to the demand.
func (d AggregatedDemand) ShopCount() int {
	seen := make(map[kernel.UUID]struct{}, len(d.Contributions))
	for _, c := range d.Contributions {
		seen[c.ShopID] = struct{}{}
	}
	return len(seen)
}

// SupplierBucket holds the aggregated demands routed to one supplier.
// Each bucket becomes one supplier purchase order at materialization time.
type SupplierBucket struct {
	SupplierID kernel.UUID
	Demands    []AggregatedDemand
}

// Aggregator is a domain service that merges shop orders into per-product
// demand and routes the demand to suppliers.
//
// Key responsibilities:
//   - Summing ordered quantities per product and delivery date
//   - Keeping per-shop contributions traceable in the result
//   - Partitioning demand into supplier buckets and an unassigned remainder
//
// Business rules:
//   - Orders are grouped by product and calendar day, never by timestamp
//   - The product name snapshot comes from the first contributing order
//   - Products without a supplier assignment are never silently dropped:
//     they are returned separately so operators can be alerted
//
// Example usage:
//
//	aggregator := services.NewAggregator()
//	demands, err := aggregator.AggregateByProductAndDate(orders)
//	if err != nil {
//	    return err
//	}
//	buckets, unassigned := aggregator.GroupBySupplier(demands, products)
type Aggregator struct{}

// NewAggregator creates a new Aggregator instance.
func NewAggregator() Aggregator {
	return Aggregator{}
}

// AggregateByProductAndDate merges the given orders into one demand per
// product and delivery date. Quantities are summed exactly; each order
// contributes one traceable Contribution per line. Demands are returned in
// first-seen order so repeated runs over the same input produce the same
// output.
//
// Every order must be constructed and carry a delivery date, otherwise
// aggregation fails without partial results.
func (a Aggregator) AggregateByProductAndDate(orders []*order.Order) ([]AggregatedDemand, error) {
	type demandKey struct {
		productID kernel.UUID
		day       time.Time
	}

	index := make(map[demandKey]int)
	demands := make([]AggregatedDemand, 0)

	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}

		if o.DeliveryDate() == nil {
			return nil, ErrOrderHasNoDeliveryDate
		}
		day := dateOnly(*o.DeliveryDate())

		for _, item := range o.Items() {
			key := demandKey{productID: item.ProductID(), day: day}

			pos, ok := index[key]
			if !ok {
				pos = len(demands)
				index[key] = pos
				demands = append(demands, AggregatedDemand{
					ProductID:     item.ProductID(),
					ProductName:   item.ProductName(),
					DeliveryDate:  day,
					TotalQuantity: decimal.Zero,
				})
			}

			demands[pos].TotalQuantity = demands[pos].TotalQuantity.Add(item.Quantity())
			demands[pos].Contributions = append(demands[pos].Contributions, Contribution{
				OrderID:     o.ID(),
				OrderNumber: o.OrderNumber(),
				ShopID:      o.ShopID(),
				Quantity:    item.Quantity(),
			})
		}
	}

	return demands, nil
}

// GroupBySupplier partitions aggregated demands into per-supplier buckets
// using each product's primary supplier. Demands whose product is missing
// from the catalog snapshot, or has no supplier assigned, end up in the
// unassigned remainder instead of being dropped.
//
// Every demand appears exactly once, either in a bucket or in unassigned.
func (a Aggregator) GroupBySupplier(
	demands []AggregatedDemand,
	products map[kernel.UUID]*product.Product,
) (map[kernel.UUID]SupplierBucket, []AggregatedDemand) {
	buckets := make(map[kernel.UUID]SupplierBucket)
	var unassigned []AggregatedDemand

	for _, demand := range demands {
		p, ok := products[demand.ProductID]
		if !ok {
			unassigned = append(unassigned, demand)
			continue
		}

		link, ok := p.PrimarySupplier()
		if !ok {
			unassigned = append(unassigned, demand)
			continue
		}

		bucket := buckets[link.SupplierID()]
		bucket.SupplierID = link.SupplierID()
		bucket.Demands = append(bucket.Demands, demand)
		buckets[link.SupplierID()] = bucket
	}

	return buckets, unassigned
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
