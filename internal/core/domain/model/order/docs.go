// Package order provides domain entities and business logic for shop order
// management in the procurement system. It implements the Order aggregate
// root with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, lines, totals and lifecycle
//   - Item: An order line snapshotting product name, price and TVA rate at order time
//   - Status: The order lifecycle enumeration (NEW through LIVREE/ANNULEE)
//   - Role: The closed enumeration of actor roles driving transitions
//   - CanTransition: The pure transition check over the authorization table
//
// Key business rules:
//   - Order totals always equal the sum of recomputed line totals
//   - Status follows the workflow NEW -> AGGREGATED -> SUPPLIER_ORDERED ->
//     PREPARATION -> LIVRAISON -> LIVREE, with ANNULEE reachable from every
//     non-terminal status
//   - Each edge is restricted to specific actor roles
//   - LIVREE and ANNULEE are terminal; orders there are immutable
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
