package model

import "fmt"

// UnitValue pairs a value with a human-readable name and unit tag.
// The tags travel with the value into every report and table, so a
// parameter renders the same way everywhere ("Discount rate (%)").
type UnitValue[T any] struct {
	Name  string
	Unit  string
	Value T
}

// Unit constructs a UnitValue.
func Unit[T any](name, unit string, value T) UnitValue[T] {
	return UnitValue[T]{Name: name, Unit: unit, Value: value}
}

// Title returns the display title, e.g. "PV capacity (kWp)".
func (u UnitValue[T]) Title() string {
	return fmt.Sprintf("%s (%s)", u.Name, u.Unit)
}
