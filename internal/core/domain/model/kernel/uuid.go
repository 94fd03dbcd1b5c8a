package kernel

import (
	"fmt"

	"procurement/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not properly initialized through one of the constructor functions.
// This error is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object shared by every aggregate in this
// module: orders, products, shops, suppliers and recurring templates.
// It wraps github.com/google/uuid to keep the external type out of the
// domain and to make the zero value detectable.
//
// The zero value is invalid; construct through NewUUID, UUIDFromString or
// UUIDFromBytes. UUID is immutable and safe for concurrent use, and
// comparable, so it works as a map key.
//
// Example usage:
//
//	shopID := kernel.NewUUID()
//
//	productID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    // handle error
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4). This is the primary
// way to mint identifiers for new orders, products and templates.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	fmt.Println(orderID.String()) // e.g., "550e8400-e29b-41d4-a716-446655440000"
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its string representation.
// It accepts standard UUID formats including:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//
// Returns an error if the string is not a valid UUID format. Used when
// reconstructing aggregates from persistence and when parsing identifiers
// out of request paths and headers.
//
// Example:
//
//	shopID, err := kernel.UUIDFromString(request.ShopID)
//	if err != nil {
//	    return fmt.Errorf("invalid shop ID: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a byte slice, which must be exactly
// 16 bytes long. Useful when identifiers arrive as binary columns.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the standard "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
// representation. A zero value renders as the nil UUID.
//
// Example:
//
//	id := kernel.NewUUID()
//	logger.Info("order created", "order_id", id.String())
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID value, not a byte slice.
// The postgres DTO mapping uses it to fill uuid columns; other callers
// should stay on the value object.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two UUIDs for equality.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate checks if the UUID is properly constructed.
// Returns ErrUUIDIsNotConstructed for the zero value, so aggregate
// constructors can reject identifiers that skipped a factory function.
//
// Example:
//
//	func NewShopStock(shopID, productID kernel.UUID) (*ShopStock, error) {
//	    if err := errors.Join(shopID.Validate(), productID.Validate()); err != nil {
//	        return nil, err
//	    }
//	    ...
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
