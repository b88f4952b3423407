package array

import (
	"slices"

	"github.com/born-ml/dope/internal/bounds"
	"github.com/born-ml/dope/internal/dope"
)

// Every derivation below copies the layout by value and shares the source's
// memory handle, so a derived view is exactly as owning as its source.
// Derived views must be released independently of their source.

// Checked returns a view of the same elements whose At, Get, Set and Each
// report violations to report. Views derived from it inherit the reporter.
func (v *View[T, L]) Checked(report bounds.RangeFunc) *View[T, L] {
	return &View[T, L]{core: checkedCore(&v.core, report)}
}

// Slice restricts each axis to the intersection of its bounds with ranges[i].
// Coordinates and strides are unchanged; no data is copied.
func (v *View[T, L]) Slice(ranges ...dope.Range) (*View[T, L], error) {
	c, err := sliceCore(&v.core, ranges)
	if err != nil {
		return nil, err
	}
	return &View[T, L]{core: c}, nil
}

// Transpose reorders the axes: axis i of the result is axis perm[i] of v.
func (v *View[T, L]) Transpose(perm ...int) (*View[T, L], error) {
	c, err := transposeCore(&v.core, perm)
	if err != nil {
		return nil, err
	}
	return &View[T, L]{core: c}, nil
}

// Reverse flips axis. Coordinate -c of the result is element c of v.
func (v *View[T, L]) Reverse(axis int) (*View[T, L], error) {
	c, err := reverseCore(&v.core, axis)
	if err != nil {
		return nil, err
	}
	return &View[T, L]{core: c}, nil
}

// Dynamic returns the same view with a run-time rank layout.
func (v *View[T, L]) Dynamic() *View[T, dope.Layout] {
	c := dynamicCore(&v.core)
	return &View[T, dope.Layout]{core: c}
}

// Checked returns a read-only view whose Get and Each report violations to report.
func (v *ConstView[T, L]) Checked(report bounds.RangeFunc) *ConstView[T, L] {
	return &ConstView[T, L]{core: checkedCore(&v.core, report)}
}

// Slice is View.Slice for read-only views.
func (v *ConstView[T, L]) Slice(ranges ...dope.Range) (*ConstView[T, L], error) {
	c, err := sliceCore(&v.core, ranges)
	if err != nil {
		return nil, err
	}
	return &ConstView[T, L]{core: c}, nil
}

// Transpose is View.Transpose for read-only views.
func (v *ConstView[T, L]) Transpose(perm ...int) (*ConstView[T, L], error) {
	c, err := transposeCore(&v.core, perm)
	if err != nil {
		return nil, err
	}
	return &ConstView[T, L]{core: c}, nil
}

// Reverse is View.Reverse for read-only views.
func (v *ConstView[T, L]) Reverse(axis int) (*ConstView[T, L], error) {
	c, err := reverseCore(&v.core, axis)
	if err != nil {
		return nil, err
	}
	return &ConstView[T, L]{core: c}, nil
}

// Dynamic is View.Dynamic for read-only views.
func (v *ConstView[T, L]) Dynamic() *ConstView[T, dope.Layout] {
	c := dynamicCore(&v.core)
	return &ConstView[T, dope.Layout]{core: c}
}

// Reshape returns a view of v's memory through a caller-supplied layout of any rank.
// Keeping the new layout inside the memory is the caller's responsibility.
func Reshape[T Element, L dope.Shape[L], L2 dope.Shape[L2]](v *View[T, L], layout L2) (*View[T, L2], error) {
	c, err := rebaseCore[T, L, L2](&v.core, layout)
	if err != nil {
		return nil, err
	}
	return &View[T, L2]{core: c}, nil
}

// ReshapeConst is Reshape for read-only views.
func ReshapeConst[T Element, L dope.Shape[L], L2 dope.Shape[L2]](v *ConstView[T, L], layout L2) (*ConstView[T, L2], error) {
	c, err := rebaseCore[T, L, L2](&v.core, layout)
	if err != nil {
		return nil, err
	}
	return &ConstView[T, L2]{core: c}, nil
}

// Cast converts v to a view with layout type To, which must hold v's rank.
//
// Example:
//
//	fixed, err := array.Cast[dope.Layout2](dynamicView)
func Cast[To dope.Shape[To], T Element, L dope.Shape[L]](v *View[T, L]) (*View[T, To], error) {
	var zero To
	layout, err := zero.WithDopes(v.dopes)
	if err != nil {
		return nil, err
	}
	return Reshape(v, layout)
}

// CastConst is Cast for read-only views.
func CastConst[To dope.Shape[To], T Element, L dope.Shape[L]](v *ConstView[T, L]) (*ConstView[T, To], error) {
	var zero To
	layout, err := zero.WithDopes(v.dopes)
	if err != nil {
		return nil, err
	}
	return ReshapeConst(v, layout)
}

func checkedCore[T Element, L dope.Shape[L]](c *core[T, L], report bounds.RangeFunc) core[T, L] {
	out, err := c.derive(slices.Clone(c.dopes))
	if err != nil {
		panic(err)
	}
	out.report = report
	return out
}

func sliceCore[T Element, L dope.Shape[L]](c *core[T, L], ranges []dope.Range) (core[T, L], error) {
	d, err := dope.SliceDopes(c.dopes, ranges)
	if err != nil {
		return core[T, L]{}, err
	}
	return c.derive(d)
}

func transposeCore[T Element, L dope.Shape[L]](c *core[T, L], perm []int) (core[T, L], error) {
	d, err := dope.TransposeDopes(c.dopes, perm)
	if err != nil {
		return core[T, L]{}, err
	}
	return c.derive(d)
}

func reverseCore[T Element, L dope.Shape[L]](c *core[T, L], axis int) (core[T, L], error) {
	d, err := dope.ReverseDopes(c.dopes, axis)
	if err != nil {
		return core[T, L]{}, err
	}
	return c.derive(d)
}

func dynamicCore[T Element, L dope.Shape[L]](c *core[T, L]) core[T, dope.Layout] {
	// A valid layout of any rank is always a valid dynamic layout.
	out, _ := rebaseCore[T, L, dope.Layout](c, mustDynamic(c.dopes))
	return out
}

func rebaseCore[T Element, L dope.Shape[L], L2 dope.Shape[L2]](c *core[T, L], layout L2) (core[T, L2], error) {
	out, err := newCore[T](c.block, layout, c.report)
	if err != nil {
		return core[T, L2]{}, err
	}
	out.block = c.block.Share()
	return out, nil
}

func mustDynamic(dopes []dope.Dope) dope.Layout {
	l, err := dope.Make(dopes...)
	if err != nil {
		panic(err)
	}
	return l
}
