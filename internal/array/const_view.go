package array

import (
	"github.com/born-ml/dope/internal/dope"
	"github.com/born-ml/dope/internal/memory"
)

// ConstView is a read-only view of typed elements in a memory block.
// It never hands out *T, and cannot be turned back into a View.
type ConstView[T Element, L dope.Shape[L]] struct {
	core[T, L]
}

// ComposeConst returns a read-only view of block through layout.
// The view takes over the block handle.
func ComposeConst[T Element, L dope.Shape[L]](block *memory.Block, layout L) (*ConstView[T, L], error) {
	c, err := newCore[T](block, layout, nil)
	if err != nil {
		return nil, err
	}
	return &ConstView[T, L]{core: c}, nil
}

// FromSliceConst returns a read-only view borrowing data.
func FromSliceConst[T Element, L dope.Shape[L]](data []T, layout L) (*ConstView[T, L], error) {
	v, err := FromSlice(data, layout)
	if err != nil {
		return nil, err
	}
	return &ConstView[T, L]{core: v.core}, nil
}

// Memory returns the read-only access path of the view's block.
func (v *ConstView[T, L]) Memory() memory.ConstBlock {
	return v.block.Const()
}
