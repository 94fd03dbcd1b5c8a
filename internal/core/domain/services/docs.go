// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the procurement system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - Aggregator: A domain service merging shop orders into per-product demand
//     and routing that demand to supplier buckets
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
