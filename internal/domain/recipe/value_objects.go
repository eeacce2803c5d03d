package recipe

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Value Objects - Immutable objects that describe aspects of the domain

// Measurement is one entry of the normalized measurement catalog: a named
// component together with its unit of measure, e.g. "flour" / "g". The
// (Name, Unit) pair is unique in the catalog. Catalog rows are reference
// data loaded administratively and never mutated by the application.
type Measurement struct {
	ID   uuid.UUID
	Name string
	Unit string
}

// Validate validates the measurement.
func (m Measurement) Validate() error {
	if m.Name == "" {
		return ErrMeasurementNameRequired
	}
	if m.Unit == "" {
		return ErrMeasurementUnitRequired
	}
	return nil
}

// Label renders the measurement as it appears on a shopping list.
func (m Measurement) Label() string {
	return fmt.Sprintf("%s (%s)", m.Name, m.Unit)
}

// LineItem is a deduplicated (measurement, amount) pair. The registry keeps
// at most one line item per pair, and recipes that need the identical
// quantity of the identical component reference the same row.
type LineItem struct {
	ID          uuid.UUID
	Measurement Measurement
	Amount      Amount
}

// Validate validates the line item.
func (l LineItem) Validate() error {
	if err := l.Measurement.Validate(); err != nil {
		return err
	}
	if !l.Amount.Decimal().IsPositive() {
		return ErrAmountNotPositive
	}
	return nil
}

// Tag categorizes recipes. Name, color and slug are each unique.
type Tag struct {
	ID    uuid.UUID
	Name  string
	Color string
	Slug  string
}

// Validate validates the tag.
func (t Tag) Validate() error {
	if t.Name == "" {
		return errors.New("tag name is required")
	}
	if t.Slug == "" {
		return errors.New("tag slug is required")
	}
	return nil
}
