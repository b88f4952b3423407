// Package dope describes array layouts: per-axis descriptors ("dopes"), layouts
// built from them, and the single algorithm that turns coordinates into an
// element offset.
//
// A Dope holds a half-open coordinate range [Low, High) and a signed stride in
// elements. A layout is an ordered sequence of dopes; its length is the rank.
// Base, stride, axis order and direction are all plain Dope values:
//
//	row-major 2x3:        {0,2,3} {0,3,1}
//	column-major 2x3:     {0,2,1} {0,3,2}
//	second axis reversed: {0,2,3} {-2,1,-1}
//	one-based 2x3:        {1,3,3} {1,4,1}  (element (1,1) is at offset 4)
//
// There is no separate base offset field. Coordinates are absolute, so a
// non-zero origin is part of the bounds; a byte base belongs to the memory
// block (see memory.Block.Window).
//
// Layouts never reference memory and are immutable: every transformation
// returns a new layout.
package dope

import (
	"fmt"
	"math"
)

// Dope describes one axis: valid coordinates Low <= c < High, and the element
// step Stride between consecutive coordinates. Stride may be zero or negative.
type Dope struct {
	Low    int
	High   int
	Stride int
}

// Len returns the number of valid coordinates on the axis.
func (d Dope) Len() int {
	return d.High - d.Low
}

// Contains reports whether c is a valid coordinate.
func (d Dope) Contains(c int) bool {
	return c >= d.Low && c < d.High
}

// Validate checks Low <= High.
func (d Dope) Validate() error {
	if d.Low > d.High {
		return fmt.Errorf("%w: low %d > high %d", ErrInvalidLayout, d.Low, d.High)
	}
	return nil
}

// String formats the dope as low:high:stride.
func (d Dope) String() string {
	return fmt.Sprintf("%d:%d:%d", d.Low, d.High, d.Stride)
}

// Range restricts an axis to [Low, High) when slicing.
type Range struct {
	Low  int
	High int
}

// All returns the range that keeps an axis's bounds unchanged.
func All() Range {
	return Range{Low: math.MinInt, High: math.MaxInt}
}

// Span returns Range{low, high}.
func Span(low, high int) Range {
	return Range{Low: low, High: high}
}

// restrict intersects d's bounds with r. An empty intersection yields an empty axis.
func (d Dope) restrict(r Range) Dope {
	low := max(d.Low, r.Low)
	high := min(d.High, r.High)
	if high < low {
		high = low
	}
	return Dope{Low: low, High: high, Stride: d.Stride}
}

// reverse negates the stride and reflects the bounds, so coordinate -c
// of the result addresses the same element as c of d.
func (d Dope) reverse() Dope {
	return Dope{Low: 1 - d.High, High: 1 - d.Low, Stride: -d.Stride}
}
