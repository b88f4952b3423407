// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"github.com/born-ml/dope/internal/array"
	"github.com/born-ml/dope/internal/memory"
)

// Element is a constraint for the element types a view can hold.
type Element = array.Element

// DataType is the runtime tag of an element type.
type DataType = array.DataType

// Data type constants.
const (
	Int8       DataType = array.Int8
	Int16      DataType = array.Int16
	Int32      DataType = array.Int32
	Int64      DataType = array.Int64
	Int        DataType = array.Int
	Uint8      DataType = array.Uint8
	Uint16     DataType = array.Uint16
	Uint32     DataType = array.Uint32
	Uint64     DataType = array.Uint64
	Float32    DataType = array.Float32
	Float64    DataType = array.Float64
	Complex64  DataType = array.Complex64
	Complex128 DataType = array.Complex128
	Bool       DataType = array.Bool
)

// View is a mutable array view.
//
// Example:
//
//	v, _ := array.New[int32](array.Layout2{{0, 2, 3}, {0, 3, 1}})
//	*v.At(1, 2) = 7
type View[T Element, L Shape[L]] = array.View[T, L]

// ConstView is a read-only array view. It has no method yielding *T.
type ConstView[T Element, L Shape[L]] = array.ConstView[T, L]

// ErrOutsideBlock is returned when a layout addresses elements outside its block.
var ErrOutsideBlock = array.ErrOutsideBlock

// TypeOf returns the DataType of T.
func TypeOf[T Element]() DataType {
	return array.TypeOf[T]()
}

// Compose returns a view of block through layout. The view takes over the block handle.
func Compose[T Element, L Shape[L]](block *Block, layout L) (*View[T, L], error) {
	return array.Compose[T](block, layout)
}

// ComposeConst returns a read-only view of block through layout.
func ComposeConst[T Element, L Shape[L]](block *Block, layout L) (*ConstView[T, L], error) {
	return array.ComposeConst[T](block, layout)
}

// New allocates zeroed owned memory for layout and returns a view of it.
func New[T Element, L Shape[L]](layout L) (*View[T, L], error) {
	return array.New[T](layout)
}

// FromSlice returns a view borrowing data.
func FromSlice[T Element, L Shape[L]](data []T, layout L) (*View[T, L], error) {
	return array.FromSlice(data, layout)
}

// FromSliceConst returns a read-only view borrowing data.
func FromSliceConst[T Element, L Shape[L]](data []T, layout L) (*ConstView[T, L], error) {
	return array.FromSliceConst(data, layout)
}

// Reshape returns a view of v's memory through another layout.
func Reshape[T Element, L Shape[L], L2 Shape[L2]](v *View[T, L], layout L2) (*View[T, L2], error) {
	return array.Reshape(v, layout)
}

// ReshapeConst is Reshape for read-only views.
func ReshapeConst[T Element, L Shape[L], L2 Shape[L2]](v *ConstView[T, L], layout L2) (*ConstView[T, L2], error) {
	return array.ReshapeConst(v, layout)
}

// Cast converts v to layout type To of the same rank.
func Cast[To Shape[To], T Element, L Shape[L]](v *View[T, L]) (*View[T, To], error) {
	return array.Cast[To](v)
}

// CastConst is Cast for read-only views.
func CastConst[To Shape[To], T Element, L Shape[L]](v *ConstView[T, L]) (*ConstView[T, To], error) {
	return array.CastConst[To](v)
}

// Block is a handle over owned or borrowed bytes.
type Block = memory.Block

// ConstBlock is the read-only access path of a Block.
type ConstBlock = memory.ConstBlock

// ErrAllocation is returned when owned memory cannot be allocated.
var ErrAllocation = memory.ErrAllocation

// Allocate returns an owned, zeroed block of size bytes.
func Allocate(size int) (*Block, error) {
	return memory.Allocate(size)
}

// SetMaxAllocation caps the size Allocate and New accept and returns the previous cap.
func SetMaxAllocation(n int) int {
	return memory.SetMaxAllocation(n)
}

// Adopt returns a borrowed block over data.
func Adopt(data []byte) *Block {
	return memory.Adopt(data)
}

// Own returns an owned block over data whose onRelease runs after the last handle is released.
func Own(data []byte, onRelease func()) *Block {
	return memory.Own(data, onRelease)
}
