package bounds

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is wrapped by every RangeError.
var ErrOutOfRange = errors.New("out of range")

// Kind classifies a range violation.
type Kind int

// Violation kinds.
const (
	AxisBounds Kind = iota
	MemoryBounds
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case AxisBounds:
		return "axis bounds"
	case MemoryBounds:
		return "memory bounds"
	default:
		return "unknown"
	}
}

// RangeError describes one reported violation.
type RangeError struct {
	Label string
	Axis  int
	Value int
	Low   int
	High  int
}

// NewRangeError builds a RangeError from RangeFunc arguments.
func NewRangeError(label string, axis, value, low, high int) *RangeError {
	return &RangeError{Label: label, Axis: axis, Value: value, Low: low, High: high}
}

// Kind returns MemoryBounds for memory violations and AxisBounds otherwise.
func (e *RangeError) Kind() Kind {
	if e.Label == MemoryLabel {
		return MemoryBounds
	}
	return AxisBounds
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	if e.Kind() == MemoryBounds {
		return fmt.Sprintf("%s: byte offset %d out of range [%d, %d)", e.Label, e.Value, e.Low, e.High)
	}
	return fmt.Sprintf("%s: index %d out of range [%d, %d) on axis %d", e.Label, e.Value, e.Low, e.High, e.Axis)
}

// Unwrap returns ErrOutOfRange.
func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}
