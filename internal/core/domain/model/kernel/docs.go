// Package kernel provides core domain primitives and utilities for the procurement system.
// It implements fundamental building blocks following Domain-Driven Design principles
// that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Totals: A value object carrying HT/TVA/TTC money amounts rounded to the cent
//   - Order number generation for the CMD-YYYYMM-NNNN and SO-YYYYMM-NNNN formats
//     used on shop orders and supplier purchase orders
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel
