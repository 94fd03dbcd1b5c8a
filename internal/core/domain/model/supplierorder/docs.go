// Package supplierorder provides domain entities for supplier purchase
// orders in the procurement system. It implements the SupplierOrder
// aggregate root materialized from aggregated shop demand.
//
// The package includes:
//   - SupplierOrder: The aggregate root holding the SO document number,
//     supplier, delivery date, denormalized lines and recomputed totals
//   - Line: An immutable line snapshotting product name, reference, unit
//     and price at materialization time
//   - Status: The purchase order lifecycle (DRAFT, CONFIRMED, CANCELLED)
//
// Key business rules:
//   - Purchase order totals always equal the sum of recomputed line totals
//   - Lines are immutable once the purchase order is materialized, so the
//     document never drifts when the catalog changes
//   - Only draft purchase orders can be confirmed; cancellation is terminal
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package supplierorder
