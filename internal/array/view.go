package array

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/born-ml/dope/internal/bounds"
	"github.com/born-ml/dope/internal/dope"
	"github.com/born-ml/dope/internal/memory"
)

// ErrOutsideBlock is returned when a layout addresses elements outside a block.
var ErrOutsideBlock = errors.New("layout extends outside memory block")

// core holds what mutable and read-only views share.
type core[T Element, L dope.Shape[L]] struct {
	block  *memory.Block
	layout L
	dopes  []dope.Dope // private copy of layout.Dopes() for indexing
	report bounds.RangeFunc
}

func newCore[T Element, L dope.Shape[L]](block *memory.Block, layout L, report bounds.RangeFunc) (core[T, L], error) {
	dopes := layout.Dopes()
	if _, err := layout.WithDopes(dopes); err != nil {
		return core[T, L]{}, err
	}
	return core[T, L]{block: block, layout: layout, dopes: dopes, report: report}, nil
}

// derive builds a core over the same memory with new descriptors.
// The block handle is shared, so the ownership mode carries over.
func (c *core[T, L]) derive(dopes []dope.Dope) (core[T, L], error) {
	layout, err := c.layout.WithDopes(dopes)
	if err != nil {
		return core[T, L]{}, err
	}
	return core[T, L]{block: c.block.Share(), layout: layout, dopes: dopes, report: c.report}, nil
}

// Rank returns the number of axes.
func (c *core[T, L]) Rank() int {
	return c.layout.Rank()
}

// Layout returns the view's layout. Layouts are values; changing the result
// does not affect the view.
func (c *core[T, L]) Layout() L {
	return c.layout
}

// DataType returns the runtime tag of T.
func (c *core[T, L]) DataType() DataType {
	return TypeOf[T]()
}

// IsOwned reports whether the view's memory is reference-counted by this library.
func (c *core[T, L]) IsOwned() bool {
	return c.block.IsOwned()
}

// NumElements returns the number of valid coordinate vectors.
func (c *core[T, L]) NumElements() int {
	n := 1
	for _, d := range c.dopes {
		n *= d.Len()
	}
	return n
}

// Offset returns the element offset of coords without touching memory.
func (c *core[T, L]) Offset(coords ...int) int {
	return dope.Resolve(c.dopes, coords, nil)
}

// Validate checks that every element of the layout lies inside the memory block.
func (c *core[T, L]) Validate() error {
	size := sizeOf[T]()
	if !dope.Fits(c.layout, c.block.Size()/size) {
		lo, hi, _ := dope.Extent(c.layout)
		return fmt.Errorf("%w: elements [%d, %d] of %d-byte block with %d-byte elements",
			ErrOutsideBlock, lo, hi, c.block.Size(), size)
	}
	return nil
}

// Release gives up the view's memory handle. Owned memory is freed when its
// last view is released. Calling Release more than once is safe.
func (c *core[T, L]) Release() {
	c.block.Release()
}

// pointer resolves coords through the layout, then through the block.
// A reporter sees any element that does not lie entirely inside the block;
// the reported high bound is one past the last valid start offset.
func (c *core[T, L]) pointer(report bounds.RangeFunc, coords []int) *T {
	size := sizeOf[T]()
	offset := dope.Resolve(c.dopes, coords, report) * size
	if bounds.Enabled(report) {
		n := c.block.Size()
		if offset >= 0 && offset < n && offset+size > n {
			report(bounds.MemoryLabel, bounds.MemoryAxis, offset, 0, n-size+1)
		}
	}
	//nolint:gosec // offset validated by report when requested
	return (*T)(c.block.IndexBytes(offset, report))
}

// Get returns the element at coords, checked by the view's reporter if it has one.
// Passing a coordinate count other than Rank() is a contract violation.
func (c *core[T, L]) Get(coords ...int) T {
	return *c.pointer(c.report, coords)
}

// GetChecked returns the element at coords, reporting violations to report.
func (c *core[T, L]) GetChecked(report bounds.RangeFunc, coords ...int) T {
	return *c.pointer(report, coords)
}

// Each calls fn with every coordinate vector and its element, last axis
// varying fastest, until fn returns false. coords is reused between calls.
func (c *core[T, L]) Each(fn func(coords []int, v T) bool) {
	dope.EachDopes(c.dopes, func(coords []int) bool {
		return fn(coords, *c.pointer(c.report, coords))
	})
}

// ToSlice copies the elements out in Each order.
func (c *core[T, L]) ToSlice() []T {
	out := make([]T, 0, c.NumElements())
	c.Each(func(_ []int, v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// String returns a short description of the view.
func (c *core[T, L]) String() string {
	mode := "borrowed"
	if c.IsOwned() {
		mode = "owned"
	}
	return fmt.Sprintf("View[%s](%v) %s", TypeOf[T](), c.layout, mode)
}

// View is a mutable view of typed elements in a memory block.
type View[T Element, L dope.Shape[L]] struct {
	core[T, L]
}

// Compose returns a view of block through layout. The view takes over the
// block handle; pass block.Share() to keep using yours.
// Whether the layout stays inside the block is the caller's responsibility
// (see Validate).
func Compose[T Element, L dope.Shape[L]](block *memory.Block, layout L) (*View[T, L], error) {
	c, err := newCore[T](block, layout, nil)
	if err != nil {
		return nil, err
	}
	return &View[T, L]{core: c}, nil
}

// New allocates zeroed owned memory large enough for layout and returns a view of it.
// The layout must not address negative offsets.
//
// Example:
//
//	layout, _ := dope.RowMajor(2, 3)
//	v, _ := array.New[float64](layout)
//	v.Set(1.5, 1, 2)
func New[T Element, L dope.Shape[L]](layout L) (*View[T, L], error) {
	size := 0
	if lo, hi, ok := dope.Extent(layout); ok {
		if lo < 0 {
			return nil, fmt.Errorf("%w: layout reaches element %d", ErrOutsideBlock, lo)
		}
		size = (hi + 1) * sizeOf[T]()
	}

	block, err := memory.Allocate(size)
	if err != nil {
		return nil, err
	}
	v, err := Compose[T](block, layout)
	if err != nil {
		block.Release()
		return nil, err
	}
	return v, nil
}

// FromSlice returns a view borrowing data. Nothing is copied; data must
// outlive the view and all views derived from it.
func FromSlice[T Element, L dope.Shape[L]](data []T, layout L) (*View[T, L], error) {
	if !dope.Fits(layout, len(data)) {
		return nil, fmt.Errorf("%w: layout %v over %d elements", ErrOutsideBlock, layout, len(data))
	}
	var block *memory.Block
	if len(data) > 0 {
		block = memory.AdoptPointer(unsafe.Pointer(unsafe.SliceData(data)), len(data)*sizeOf[T]())
	} else {
		block = memory.Adopt(nil)
	}
	return Compose[T](block, layout)
}

// Block returns the view's memory handle. It is not shared; call Share on
// it to hold a reference that outlives the view.
func (v *View[T, L]) Block() *memory.Block {
	return v.block
}

// At returns a pointer to the element at coords, checked by the view's reporter if it has one.
func (v *View[T, L]) At(coords ...int) *T {
	return v.pointer(v.report, coords)
}

// AtChecked returns a pointer to the element at coords, reporting violations to report.
func (v *View[T, L]) AtChecked(report bounds.RangeFunc, coords ...int) *T {
	return v.pointer(report, coords)
}

// Set stores val at coords.
func (v *View[T, L]) Set(val T, coords ...int) {
	*v.pointer(v.report, coords) = val
}

// Const returns a read-only view of the same elements.
func (v *View[T, L]) Const() *ConstView[T, L] {
	c := v.core
	c.block = v.block.Share()
	return &ConstView[T, L]{core: c}
}
