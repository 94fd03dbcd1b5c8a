package product

import (
	"errors"
	"fmt"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultTVARate is the TVA rate percent applied when a product carries no
// explicit rate. Food products fall under the reduced 5.5% rate.
var DefaultTVARate = decimal.RequireFromString("5.5")

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through NewProduct or RestoreProduct.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrSupplierAlreadyAssigned is returned when a supplier link is added twice.
	ErrSupplierAlreadyAssigned = errors.New("supplier is already assigned to product")
)

// SupplierLink associates a product with one supplier, in the product's
// supplier ordering. An optional supplier-specific unit price overrides the
// catalog priceHT when a purchase order toward that supplier is built.
type SupplierLink struct {
	supplierID kernel.UUID
	unitPrice  *decimal.Decimal
}

// NewSupplierLink creates a supplier link. unitPrice is optional; nil means
// the catalog priceHT applies.
func NewSupplierLink(supplierID kernel.UUID, unitPrice *decimal.Decimal) (SupplierLink, error) {
	if err := supplierID.Validate(); err != nil {
		return SupplierLink{}, err
	}

	if unitPrice != nil && unitPrice.IsNegative() {
		return SupplierLink{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%s is negative", unitPrice.String()))
	}

	return SupplierLink{supplierID: supplierID, unitPrice: unitPrice}, nil
}

// SupplierID returns the linked supplier's identifier.
func (l SupplierLink) SupplierID() kernel.UUID {
	return l.supplierID
}

// UnitPrice returns the supplier-specific unit price, nil if the catalog
// price applies.
func (l SupplierLink) UnitPrice() *decimal.Decimal {
	return l.unitPrice
}

// Product is the catalog aggregate. Orders snapshot its price and TVA rate
// at creation time; supplier purchase orders resolve their unit prices
// through its supplier links. Products are deactivated or hidden, never
// hard-deleted.
type Product struct {
	id        kernel.UUID
	name      string
	reference string
	unit      string
	priceHT   decimal.Decimal
	tvaRate   decimal.Decimal
	isActive  bool
	isHidden  bool
	suppliers []SupplierLink

	isConstructed bool
}

// NewProduct creates an active, visible catalog product.
// priceHT must be non-negative. A zero tvaRate means "unset": the default
// reduced rate applies through EffectiveTVARate.
func NewProduct(
	id kernel.UUID,
	name, reference, unit string,
	priceHT, tvaRate decimal.Decimal,
) (*Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	if priceHT.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("priceHT",
			fmt.Errorf("%s is negative", priceHT.String()))
	}

	if tvaRate.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("tvaRate",
			fmt.Errorf("%s is negative", tvaRate.String()))
	}

	return &Product{
		id:            id,
		name:          name,
		reference:     reference,
		unit:          unit,
		priceHT:       priceHT,
		tvaRate:       tvaRate,
		isActive:      true,
		isConstructed: true,
	}, nil
}

// RestoreProduct reconstructs a Product from persistence.
func RestoreProduct(
	id kernel.UUID,
	name, reference, unit string,
	priceHT, tvaRate decimal.Decimal,
	isActive, isHidden bool,
	suppliers []SupplierLink,
) (*Product, error) {
	restored, err := NewProduct(id, name, reference, unit, priceHT, tvaRate)
	if err != nil {
		return nil, err
	}

	restored.isActive = isActive
	restored.isHidden = isHidden
	restored.suppliers = suppliers
	return restored, nil
}

// Validate ensures the Product instance was properly constructed.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.name
}

// Reference returns the catalog reference code.
func (p *Product) Reference() string {
	return p.reference
}

// Unit returns the selling unit (kg, piece, ...).
func (p *Product) Unit() string {
	return p.unit
}

// PriceHT returns the catalog tax-exclusive unit price.
func (p *Product) PriceHT() decimal.Decimal {
	return p.priceHT
}

// TVARate returns the raw TVA rate percent; zero means unset.
func (p *Product) TVARate() decimal.Decimal {
	return p.tvaRate
}

// EffectiveTVARate returns the TVA rate percent to apply, falling back to
// DefaultTVARate when the product carries none.
func (p *Product) EffectiveTVARate() decimal.Decimal {
	if p.tvaRate.IsZero() {
		return DefaultTVARate
	}
	return p.tvaRate
}

// IsActive reports whether the product is active in the catalog.
func (p *Product) IsActive() bool {
	return p.isActive
}

// IsHidden reports whether the product is hidden from shops.
func (p *Product) IsHidden() bool {
	return p.isHidden
}

// IsOrderable reports whether the product may appear on new order lines.
// Inactive or hidden products are filtered out at execution time.
func (p *Product) IsOrderable() bool {
	return p.isActive && !p.isHidden
}

// Suppliers returns the product's supplier links in their persisted order.
func (p *Product) Suppliers() []SupplierLink {
	return p.suppliers
}

// PrimarySupplier returns the first supplier link in the product's
// ordering, or false when the product has no assigned supplier. When
// multiple suppliers are assigned the first one wins; reordering the links
// is the way to express a preferred supplier.
func (p *Product) PrimarySupplier() (SupplierLink, bool) {
	if len(p.suppliers) == 0 {
		return SupplierLink{}, false
	}
	return p.suppliers[0], true
}

// SupplierUnitPrice resolves the unit price toward the given supplier:
// the supplier-specific price when a link carries one, else the catalog
// priceHT.
func (p *Product) SupplierUnitPrice(supplierID kernel.UUID) decimal.Decimal {
	for _, link := range p.suppliers {
		if link.supplierID.IsEqual(supplierID) && link.unitPrice != nil {
			return *link.unitPrice
		}
	}
	return p.priceHT
}

// AssignSupplier appends a supplier link at the end of the ordering.
func (p *Product) AssignSupplier(link SupplierLink) error {
	for _, existing := range p.suppliers {
		if existing.supplierID.IsEqual(link.supplierID) {
			return ErrSupplierAlreadyAssigned
		}
	}

	p.suppliers = append(p.suppliers, link)
	return nil
}

// Deactivate soft-removes the product from the catalog.
func (p *Product) Deactivate() {
	p.isActive = false
}

// Activate restores a deactivated product.
func (p *Product) Activate() {
	p.isActive = true
}

// Hide hides the product from shops without deactivating it.
func (p *Product) Hide() {
	p.isHidden = true
}

// Show makes a hidden product visible again.
func (p *Product) Show() {
	p.isHidden = false
}
