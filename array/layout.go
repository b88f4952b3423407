// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import "github.com/born-ml/dope/internal/dope"

// Dope describes one axis: coordinates Low <= c < High and a signed element stride.
type Dope = dope.Dope

// Range restricts an axis when slicing.
type Range = dope.Range

// Shape is implemented by every layout type.
type Shape[L any] = dope.Shape[L]

// Layout is a layout with run-time rank.
type Layout = dope.Layout

// Fixed-rank layouts.
type (
	Layout1 = dope.Layout1
	Layout2 = dope.Layout2
	Layout3 = dope.Layout3
	Layout4 = dope.Layout4
)

// Layout errors.
var (
	ErrInvalidLayout      = dope.ErrInvalidLayout
	ErrRankMismatch       = dope.ErrRankMismatch
	ErrInvalidPermutation = dope.ErrInvalidPermutation
	ErrInvalidAxis        = dope.ErrInvalidAxis
)

// BuildLayout returns a layout from (low, high, stride) triples.
func BuildLayout(triples ...[3]int) (Layout, error) {
	return dope.Build(triples...)
}

// MakeLayout returns a layout holding a copy of dopes.
func MakeLayout(dopes ...Dope) (Layout, error) {
	return dope.Make(dopes...)
}

// RowMajor returns a contiguous zero-based layout, last axis fastest.
func RowMajor(extents ...int) (Layout, error) {
	return dope.RowMajor(extents...)
}

// ColMajor returns a contiguous zero-based layout, first axis fastest.
func ColMajor(extents ...int) (Layout, error) {
	return dope.ColMajor(extents...)
}

// All keeps an axis's bounds when slicing.
func All() Range {
	return dope.All()
}

// Span returns the range [low, high).
func Span(low, high int) Range {
	return dope.Span(low, high)
}

// Resolve maps coords to an element offset, reporting violations to report if it is non-nil.
func Resolve(dopes []Dope, coords []int, report RangeFunc) int {
	return dope.Resolve(dopes, coords, report)
}

// SliceLayout restricts each axis of l to its intersection with ranges[i].
func SliceLayout[L Shape[L]](l L, ranges ...Range) (L, error) {
	return dope.Slice(l, ranges...)
}

// TransposeLayout reorders the axes of l: axis i of the result is axis perm[i].
func TransposeLayout[L Shape[L]](l L, perm ...int) (L, error) {
	return dope.Transpose(l, perm...)
}

// ReverseLayout flips the direction of axis, reflecting its bounds.
func ReverseLayout[L Shape[L]](l L, axis int) (L, error) {
	return dope.Reverse(l, axis)
}

// CastLayout converts between layout types of equal rank.
func CastLayout[To Shape[To], From Shape[From]](l From) (To, error) {
	return dope.Cast[To](l)
}
