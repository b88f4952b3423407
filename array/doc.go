// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package array views blocks of typed memory through reconfigurable layouts.
//
// # Overview
//
// Three pieces combine into an array:
//   - Block: a handle over bytes, either owned (reference-counted) or
//     borrowed (someone else's memory: a Go slice, an mmap'd file, a
//     WebAssembly linear memory)
//   - Layout: one Dope per axis, each a half-open range [Low, High) and a
//     signed stride. Any base, stride, direction and axis order is a plain value.
//   - the element type T, which also decides constness: View[T, L] can write,
//     ConstView[T, L] cannot, and the compiler enforces the difference.
//
// # Basic Usage
//
//	layout, _ := array.RowMajor(2, 3)
//	v, _ := array.New[float64](layout)
//	defer v.Release()
//
//	v.Set(1.5, 1, 2)
//	col, _ := v.Slice(array.All(), array.Span(2, 3)) // shares memory
//	defer col.Release()
//
// # Ownership
//
// Every derived view (Slice, Transpose, Reverse, Reshape, Cast, Const,
// Dynamic) shares its source's block handle and keeps its ownership mode.
// Owned memory is released exactly once, when the last view is released.
// Borrowed memory is never released by this package.
//
// # Bounds Checking
//
// Accesses are unchecked by default. Pass a RangeFunc to AtChecked/GetChecked,
// or derive a checked view with Checked, to have every violation reported
// before memory is touched:
//
//	safe := v.Checked(array.PanicOnRange())
//
// Building with -tags dope_nobounds removes all checks from the library.
//
// # Rank
//
// Fixed-rank layouts (Layout1..Layout4) and the run-time rank Layout share one
// offset algorithm. Dynamic and Cast convert between them.
package array
