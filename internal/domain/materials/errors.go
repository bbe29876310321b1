package materials

import "fmt"

type UnsupportedShapeError struct {
	Shape string
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("unsupported shape %q", e.Shape)
}

// MissingShapeSymbolError первый символ не φ/H/□ и т.п.
type MissingShapeSymbolError struct {
	Input string
}

func (e *MissingShapeSymbolError) Error() string {
	return fmt.Sprintf("dimension %q: missing shape symbol", e.Input)
}

type MissingNumericValueError struct {
	Input string
}

func (e *MissingNumericValueError) Error() string {
	return fmt.Sprintf("dimension %q: no numeric value", e.Input)
}

type NonPositiveDimensionError struct {
	Input string
	Value float64
}

func (e *NonPositiveDimensionError) Error() string {
	return fmt.Sprintf("dimension %q: value %g must be > 0", e.Input, e.Value)
}

type InvalidProfileError struct {
	Field string
	Value float64
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("invalid profile: %s=%g must be > 0", e.Field, e.Value)
}
