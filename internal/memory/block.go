// Package memory provides Block, an ownership-polymorphic handle over a contiguous byte range.
//
// A Block is either owned or borrowed:
//   - Owned blocks share a reference-counted storage record. Every handle
//     (the original and each Share/Window) holds one reference; the storage
//     is released exactly once, when the last handle is released.
//   - Borrowed blocks reference memory owned by someone else (a Go slice, an
//     mmap'd segment, a WebAssembly linear memory). They carry no count and
//     releasing them has no side effect. The memory must outlive every handle.
//
// Handles derived from a block always keep its ownership mode.
package memory

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"

	"github.com/born-ml/dope/internal/bounds"
)

// storage is a reference-counted allocation shared by owned handles.
type storage struct {
	data      []byte
	refCount  atomic.Int32
	mu        sync.Mutex // For safe deallocation
	onRelease func()
}

// newStorage wraps data with refCount = 1.
func newStorage(data []byte, onRelease func()) *storage {
	s := &storage{
		data:      data,
		onRelease: onRelease,
	}
	s.refCount.Store(1)
	return s
}

// addRef increments the reference count.
func (s *storage) addRef() {
	s.refCount.Add(1)
}

// release decrements the reference count and drops the data if it reaches 0.
func (s *storage) release() {
	if s.refCount.Add(-1) != 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	Logger().Debug("releasing owned storage", zap.Int("bytes", len(s.data)))
	s.data = nil
	if s.onRelease != nil {
		s.onRelease()
	}
}

// Block is a handle over a contiguous byte range.
// Copying the Block struct does not create a new handle; use Share.
type Block struct {
	data     []byte   // this handle's window
	shared   *storage // nil when borrowed
	released atomic.Bool
}

// Allocate returns an owned, zeroed block of exactly size bytes.
// The storage is 8-byte aligned so any element type can be laid over it.
// It fails with ErrAllocation for a negative size or one above MaxAllocation.
// Running out of memory below that limit is fatal, as for any Go allocation.
func Allocate(size int) (*Block, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrAllocation, size)
	}
	if limit := MaxAllocation(); size > limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrAllocation, size, limit)
	}

	words := make([]uint64, (size+7)/8)
	var data []byte
	if size > 0 {
		//nolint:gosec // reinterpreting word storage as bytes for alignment
		data = unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), size)
	}

	Logger().Debug("allocated owned storage", zap.Int("bytes", size))
	return &Block{data: data, shared: newStorage(data, nil)}, nil
}

// Own takes ownership of externally obtained bytes. The block is owned:
// onRelease runs once, when the last handle is released. It may be nil.
func Own(data []byte, onRelease func()) *Block {
	return &Block{data: data, shared: newStorage(data, onRelease)}
}

// Adopt returns a borrowed block over data. Nothing is allocated or copied.
func Adopt(data []byte) *Block {
	return &Block{data: data}
}

// AdoptPointer returns a borrowed block over size bytes starting at p.
func AdoptPointer(p unsafe.Pointer, size int) *Block {
	if p == nil || size == 0 {
		return &Block{}
	}
	//nolint:gosec // caller guarantees p addresses size bytes
	return &Block{data: unsafe.Slice((*byte)(p), size)}
}

// Share returns a new handle over the same bytes with the same ownership mode.
// For owned blocks the reference count is incremented.
func (b *Block) Share() *Block {
	if b.shared != nil {
		b.shared.addRef()
	}
	return &Block{data: b.data, shared: b.shared}
}

// Window returns a new handle over bytes [offset, offset+size) of b,
// with the same ownership mode. Offsets are relative to b.
func (b *Block) Window(offset, size int) (*Block, error) {
	if offset < 0 || size < 0 || offset+size > len(b.data) {
		return nil, fmt.Errorf("%w: [%d, %d) of %d bytes", ErrWindow, offset, offset+size, len(b.data))
	}
	w := b.Share()
	w.data = b.data[offset : offset+size : offset+size]
	return w, nil
}

// Release gives up this handle. It is safe to call more than once;
// only the first call affects the reference count.
func (b *Block) Release() {
	if !b.released.CompareAndSwap(false, true) {
		return
	}
	if b.shared != nil {
		b.shared.release()
	}
	b.data = nil
}

// IsOwned reports whether the block's storage is reference-counted by this library.
func (b *Block) IsOwned() bool {
	return b.shared != nil
}

// Refs returns the number of live handles over owned storage, or 0 for borrowed blocks.
func (b *Block) Refs() int32 {
	if b.shared == nil {
		return 0
	}
	return b.shared.refCount.Load()
}

// Size returns the size of this handle's byte range.
func (b *Block) Size() int {
	return len(b.data)
}

// Base returns the address of the first byte, or nil for an empty or released block.
func (b *Block) Base() unsafe.Pointer {
	if len(b.data) == 0 {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(b.data))
}

// Bytes returns the handle's bytes. Writes through the slice modify the block.
func (b *Block) Bytes() []byte {
	return b.data
}

// IndexBytes returns the address base+offset.
//
// If report is non-nil and offset is outside [0, Size()), report is called
// with MemoryLabel before the address is formed. With a nil report no check
// is made, and an out-of-range offset is undefined behavior.
func (b *Block) IndexBytes(offset int, report bounds.RangeFunc) unsafe.Pointer {
	if bounds.Enabled(report) && (offset < 0 || offset >= len(b.data)) {
		report(bounds.MemoryLabel, bounds.MemoryAxis, offset, 0, len(b.data))
	}
	//nolint:gosec // offset validated by report when requested
	return unsafe.Add(unsafe.Pointer(unsafe.SliceData(b.data)), offset)
}

// Const returns the read-only access path over the same handle.
func (b *Block) Const() ConstBlock {
	return ConstBlock{b: b}
}

// ConstBlock is the read-only access path of a Block.
// It shares the block's bytes but exposes no way to modify them.
type ConstBlock struct {
	b *Block
}

// Size returns the size of the underlying byte range.
func (c ConstBlock) Size() int {
	return c.b.Size()
}

// IsOwned reports whether the underlying storage is owned.
func (c ConstBlock) IsOwned() bool {
	return c.b.IsOwned()
}

// ByteAt returns the byte at offset, with the same checking contract as Block.IndexBytes.
func (c ConstBlock) ByteAt(offset int, report bounds.RangeFunc) byte {
	return *(*byte)(c.b.IndexBytes(offset, report))
}

// CopyTo copies bytes starting at offset into dst and returns the count copied.
func (c ConstBlock) CopyTo(dst []byte, offset int) int {
	if offset < 0 || offset >= len(c.b.data) {
		return 0
	}
	return copy(dst, c.b.data[offset:])
}
