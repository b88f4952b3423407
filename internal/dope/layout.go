package dope

import (
	"fmt"
	"slices"
	"strings"
)

// Shape is the capability set shared by the dynamic Layout and the fixed-rank
// layouts. L is the implementing type itself, so transformations keep it.
type Shape[L any] interface {
	// Rank returns the number of axes.
	Rank() int
	// Dopes returns a copy of the axis descriptors in order.
	Dopes() []Dope
	// WithDopes returns a layout of the same type holding dopes.
	// It fails with ErrRankMismatch if the type cannot hold len(dopes) axes.
	WithDopes(dopes []Dope) (L, error)
}

// Layout is a layout whose rank is known only at run time.
// The zero value is the rank-0 layout, which addresses a single element at offset 0.
type Layout struct {
	dopes []Dope
}

// Make returns a dynamic layout holding a copy of dopes.
func Make(dopes ...Dope) (Layout, error) {
	if err := validate(dopes); err != nil {
		return Layout{}, err
	}
	return Layout{dopes: slices.Clone(dopes)}, nil
}

// Build returns a layout from (low, high, stride) triples.
func Build(triples ...[3]int) (Layout, error) {
	dopes := make([]Dope, len(triples))
	for i, t := range triples {
		dopes[i] = Dope{Low: t[0], High: t[1], Stride: t[2]}
	}
	return Make(dopes...)
}

// RowMajor returns a contiguous zero-based layout with the last axis varying fastest.
//
// Example:
//
//	RowMajor(2, 3) // {0,2,3} {0,3,1}
func RowMajor(extents ...int) (Layout, error) {
	dopes := make([]Dope, len(extents))
	stride := 1
	for i := len(extents) - 1; i >= 0; i-- {
		if extents[i] < 0 {
			return Layout{}, fmt.Errorf("%w: negative extent %d at axis %d", ErrInvalidLayout, extents[i], i)
		}
		dopes[i] = Dope{Low: 0, High: extents[i], Stride: stride}
		stride *= extents[i]
	}
	return Layout{dopes: dopes}, nil
}

// ColMajor returns a contiguous zero-based layout with the first axis varying fastest.
func ColMajor(extents ...int) (Layout, error) {
	dopes := make([]Dope, len(extents))
	stride := 1
	for i, n := range extents {
		if n < 0 {
			return Layout{}, fmt.Errorf("%w: negative extent %d at axis %d", ErrInvalidLayout, n, i)
		}
		dopes[i] = Dope{Low: 0, High: n, Stride: stride}
		stride *= n
	}
	return Layout{dopes: dopes}, nil
}

// Rank returns the number of axes.
func (l Layout) Rank() int {
	return len(l.dopes)
}

// Dopes returns a copy of the axis descriptors.
func (l Layout) Dopes() []Dope {
	return slices.Clone(l.dopes)
}

// Axis returns the descriptor of axis i.
func (l Layout) Axis(i int) Dope {
	return l.dopes[i]
}

// WithDopes returns a dynamic layout holding a copy of dopes.
func (Layout) WithDopes(dopes []Dope) (Layout, error) {
	return Make(dopes...)
}

// Equal reports whether both layouts have identical descriptors.
func (l Layout) Equal(other Layout) bool {
	return slices.Equal(l.dopes, other.dopes)
}

// String formats the layout as comma-separated low:high:stride triples.
func (l Layout) String() string {
	return format(l.dopes)
}

// Resolve maps coords to an element offset. See the package-level Resolve.
func (l Layout) Resolve(coords []int) int {
	return Resolve(l.dopes, coords, nil)
}

// NumElements returns the number of valid coordinate vectors.
func NumElements[L Shape[L]](l L) int {
	return numElements(l.Dopes())
}

// Extent returns the smallest and largest element offsets the layout can
// address. ok is false when the layout has no elements.
func Extent[L Shape[L]](l L) (lo, hi int, ok bool) {
	return extent(l.Dopes())
}

// Fits reports whether every element of the layout lies in [0, elements).
// A layout without elements always fits.
func Fits[L Shape[L]](l L, elements int) bool {
	lo, hi, ok := extent(l.Dopes())
	return !ok || (lo >= 0 && hi < elements)
}

// NonOverlapping reports whether distinct coordinates of the layout are
// guaranteed to address distinct elements. The test is sufficient, not
// necessary: layouts it rejects may still be free of overlap.
func NonOverlapping[L Shape[L]](l L) bool {
	return nonOverlapping(l.Dopes())
}

// Slice restricts each axis to the intersection of its bounds with ranges[i].
// Strides are unchanged.
func Slice[L Shape[L]](l L, ranges ...Range) (L, error) {
	d, err := SliceDopes(l.Dopes(), ranges)
	if err != nil {
		var zero L
		return zero, err
	}
	return l.WithDopes(d)
}

// Transpose reorders the axes: axis i of the result is axis perm[i] of l.
func Transpose[L Shape[L]](l L, perm ...int) (L, error) {
	d, err := TransposeDopes(l.Dopes(), perm)
	if err != nil {
		var zero L
		return zero, err
	}
	return l.WithDopes(d)
}

// Reverse flips the direction of axis. Coordinate -c of the result addresses
// the element that coordinate c addressed before.
func Reverse[L Shape[L]](l L, axis int) (L, error) {
	d, err := ReverseDopes(l.Dopes(), axis)
	if err != nil {
		var zero L
		return zero, err
	}
	return l.WithDopes(d)
}

// Cast converts between layout types of equal rank.
func Cast[To Shape[To], From Shape[From]](l From) (To, error) {
	var zero To
	return zero.WithDopes(l.Dopes())
}

// SliceDopes is Slice on a raw descriptor sequence. The input is not modified.
func SliceDopes(dopes []Dope, ranges []Range) ([]Dope, error) {
	if len(ranges) != len(dopes) {
		return nil, fmt.Errorf("%w: %d ranges for rank %d", ErrRankMismatch, len(ranges), len(dopes))
	}
	out := make([]Dope, len(dopes))
	for i, d := range dopes {
		out[i] = d.restrict(ranges[i])
	}
	return out, nil
}

// TransposeDopes is Transpose on a raw descriptor sequence. The input is not modified.
func TransposeDopes(dopes []Dope, perm []int) ([]Dope, error) {
	if len(perm) != len(dopes) {
		return nil, fmt.Errorf("%w: permutation %v for rank %d", ErrInvalidPermutation, perm, len(dopes))
	}
	seen := make([]bool, len(dopes))
	out := make([]Dope, len(dopes))
	for i, a := range perm {
		if a < 0 || a >= len(dopes) || seen[a] {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPermutation, perm)
		}
		seen[a] = true
		out[i] = dopes[a]
	}
	return out, nil
}

// ReverseDopes is Reverse on a raw descriptor sequence. The input is not modified.
func ReverseDopes(dopes []Dope, axis int) ([]Dope, error) {
	if axis < 0 || axis >= len(dopes) {
		return nil, fmt.Errorf("%w: %d for rank %d", ErrInvalidAxis, axis, len(dopes))
	}
	out := slices.Clone(dopes)
	out[axis] = out[axis].reverse()
	return out, nil
}

func validate(dopes []Dope) error {
	for i, d := range dopes {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("axis %d: %w", i, err)
		}
	}
	return nil
}

func numElements(dopes []Dope) int {
	n := 1
	for _, d := range dopes {
		n *= d.Len()
	}
	return n
}

func extent(dopes []Dope) (lo, hi int, ok bool) {
	for _, d := range dopes {
		if d.Len() <= 0 {
			return 0, 0, false
		}
		a, b := d.Low*d.Stride, (d.High-1)*d.Stride
		lo += min(a, b)
		hi += max(a, b)
	}
	return lo, hi, true
}

func nonOverlapping(dopes []Dope) bool {
	type axis struct{ n, stride int }
	axes := make([]axis, 0, len(dopes))
	for _, d := range dopes {
		n := d.Len()
		if n == 0 {
			return true
		}
		if n == 1 {
			continue
		}
		s := d.Stride
		if s < 0 {
			s = -s
		}
		axes = append(axes, axis{n: n, stride: s})
	}
	slices.SortFunc(axes, func(a, b axis) int { return a.stride - b.stride })

	span := 1 // elements covered by the axes seen so far
	for _, a := range axes {
		if a.stride < span {
			return false
		}
		span = a.stride*(a.n-1) + span
	}
	return true
}

func format(dopes []Dope) string {
	parts := make([]string, len(dopes))
	for i, d := range dopes {
		parts[i] = d.String()
	}
	return strings.Join(parts, ",")
}
