package recurring

import (
	"errors"
	"fmt"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrTemplateIsNotConstructed is returned when a Template instance was
	// not created through NewTemplate or RestoreTemplate.
	ErrTemplateIsNotConstructed = errors.New("Template must be created via NewTemplate constructor")

	// ErrTemplateHasNoItems is returned when a template is created without
	// any (product, quantity) pair.
	ErrTemplateHasNoItems = errors.New("template must contain at least one item")
)

// TemplateItem is one (product, quantity) pair of a recurring template.
// Unlike order lines it carries no price: prices are resolved from the live
// catalog at each execution.
type TemplateItem struct {
	productID kernel.UUID
	quantity  decimal.Decimal

	isConstructed bool
}

// NewTemplateItem creates a template item. Quantity must be positive.
func NewTemplateItem(productID kernel.UUID, quantity decimal.Decimal) (TemplateItem, error) {
	if err := productID.Validate(); err != nil {
		return TemplateItem{}, err
	}

	if !quantity.IsPositive() {
		return TemplateItem{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%s is not greater than 0", quantity.String()))
	}

	return TemplateItem{productID: productID, quantity: quantity, isConstructed: true}, nil
}

// Validate ensures the TemplateItem was created via NewTemplateItem.
func (i TemplateItem) Validate() error {
	if !i.isConstructed {
		return errs.NewValueIsRequiredError("TemplateItem must be created via NewTemplateItem constructor")
	}
	return nil
}

// ProductID returns the templated product.
func (i TemplateItem) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the templated quantity.
func (i TemplateItem) Quantity() decimal.Decimal {
	return i.quantity
}

// Template is a standing order definition for one shop. The scheduler
// instantiates a concrete order from it whenever nextRun falls due, then
// advances nextRun deterministically from the frequency and its anchor
// fields. Templates are deactivated rather than deleted when paused.
type Template struct {
	id         kernel.UUID
	shopID     kernel.UUID
	name       string
	frequency  Frequency
	dayOfWeek  *time.Weekday
	dayOfMonth *int
	isActive   bool
	nextRun    time.Time
	lastRun    *time.Time
	items      []TemplateItem

	isConstructed bool
}

// NewTemplate creates an active template due at firstRun.
// dayOfWeek anchors Weekly templates; dayOfMonth (1-31) anchors Monthly
// ones. Both are optional.
func NewTemplate(
	id kernel.UUID,
	shopID kernel.UUID,
	name string,
	frequency Frequency,
	dayOfWeek *time.Weekday,
	dayOfMonth *int,
	firstRun time.Time,
	items []TemplateItem,
) (*Template, error) {
	if err := errors.Join(
		id.Validate(),
		shopID.Validate(),
		frequency.Validate(),
	); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	if dayOfMonth != nil && (*dayOfMonth < 1 || *dayOfMonth > 31) {
		return nil, errs.NewValueIsOutOfRangeError("dayOfMonth", *dayOfMonth, 1, 31)
	}

	if dayOfWeek != nil && (*dayOfWeek < time.Sunday || *dayOfWeek > time.Saturday) {
		return nil, errs.NewValueIsOutOfRangeError("dayOfWeek", int(*dayOfWeek), 0, 6)
	}

	if len(items) == 0 {
		return nil, ErrTemplateHasNoItems
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Template{
		id:            id,
		shopID:        shopID,
		name:          name,
		frequency:     frequency,
		dayOfWeek:     dayOfWeek,
		dayOfMonth:    dayOfMonth,
		isActive:      true,
		nextRun:       firstRun,
		items:         items,
		isConstructed: true,
	}, nil
}

// RestoreTemplate reconstructs a Template from persistence.
func RestoreTemplate(
	id kernel.UUID,
	shopID kernel.UUID,
	name string,
	frequency Frequency,
	dayOfWeek *time.Weekday,
	dayOfMonth *int,
	isActive bool,
	nextRun time.Time,
	lastRun *time.Time,
	items []TemplateItem,
) (*Template, error) {
	restored, err := NewTemplate(id, shopID, name, frequency, dayOfWeek, dayOfMonth, nextRun, items)
	if err != nil {
		return nil, err
	}

	restored.isActive = isActive
	restored.lastRun = lastRun
	return restored, nil
}

// Validate ensures the Template instance was properly constructed.
func (t *Template) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTemplateIsNotConstructed
	}
	return nil
}

// ID returns the template's unique identifier.
func (t *Template) ID() kernel.UUID {
	return t.id
}

// ShopID returns the owning shop's identifier.
func (t *Template) ShopID() kernel.UUID {
	return t.shopID
}

// Name returns the template's display name.
func (t *Template) Name() string {
	return t.name
}

// Frequency returns the template's cadence.
func (t *Template) Frequency() Frequency {
	return t.frequency
}

// DayOfWeek returns the Weekly anchor, nil if unset.
func (t *Template) DayOfWeek() *time.Weekday {
	return t.dayOfWeek
}

// DayOfMonth returns the Monthly anchor, nil if unset.
func (t *Template) DayOfMonth() *int {
	return t.dayOfMonth
}

// IsActive reports whether the template participates in scheduling.
func (t *Template) IsActive() bool {
	return t.isActive
}

// NextRun returns the next due time.
func (t *Template) NextRun() time.Time {
	return t.nextRun
}

// LastRun returns the last successful execution time, nil if never run.
func (t *Template) LastRun() *time.Time {
	return t.lastRun
}

// Items returns the template's (product, quantity) pairs in order.
func (t *Template) Items() []TemplateItem {
	return t.items
}

// IsDue reports whether the template is eligible for execution: active and
// nextRun at or before now.
func (t *Template) IsDue(now time.Time) bool {
	return t.isActive && !t.nextRun.After(now)
}

// NextRunAfter computes the next due time from the frequency and anchor
// fields, deterministically and always strictly after now:
//
//   - Daily: now + 24h
//   - Weekly: advance to the template's day of week; when today IS that
//     weekday the run lands 7 days out, never same-day, so the schedule
//     always makes forward progress; an unset anchor means now + 7 days
//   - Monthly: one month ahead, pinned to the day-of-month anchor when
//     set; short months roll over naturally (day 31 in a 30-day month
//     lands on the 1st of the following month)
//   - anything else: now + 24h, reported by the caller as a data anomaly
func (t *Template) NextRunAfter(now time.Time) time.Time {
	switch t.frequency {
	case Weekly:
		if t.dayOfWeek == nil {
			return now.AddDate(0, 0, 7)
		}
		delta := (int(*t.dayOfWeek) - int(now.Weekday()) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		return now.AddDate(0, 0, delta)
	case Monthly:
		if t.dayOfMonth == nil {
			return now.AddDate(0, 1, 0)
		}
		return time.Date(now.Year(), now.Month()+1, *t.dayOfMonth,
			now.Hour(), now.Minute(), now.Second(), 0, now.Location())
	case Daily:
		return now.AddDate(0, 0, 1)
	default:
		return now.AddDate(0, 0, 1)
	}
}

// MarkExecuted records a successful execution at now and advances nextRun.
func (t *Template) MarkExecuted(now time.Time) {
	executed := now
	t.lastRun = &executed
	t.nextRun = t.NextRunAfter(now)
}

// Deactivate pauses the template without deleting it.
func (t *Template) Deactivate() {
	t.isActive = false
}

// Activate resumes a paused template.
func (t *Template) Activate() {
	t.isActive = true
}
