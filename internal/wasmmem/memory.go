// Package wasmmem exposes WebAssembly linear memory as borrowed blocks, so
// arrays can view data that lives inside a wazero module instance.
//
// Growing a linear memory may move it. Blocks taken before a grow must not be
// used afterwards, the same way any borrowed memory must outlive its views.
package wasmmem

import (
	"context"
	"errors"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/born-ml/dope/internal/memory"
)

// PageSize is the size of a WebAssembly memory page.
const PageSize = 65536

// maxPages is the page limit of a 32-bit linear memory.
const maxPages = 65536

// Common errors.
var (
	ErrNoMemory   = errors.New("module has no exported memory")
	ErrOutOfRange = errors.New("range outside linear memory")
	ErrPages      = errors.New("invalid page count")
)

// Memory is a linear memory provider.
type Memory struct {
	runtime wazero.Runtime // nil when attached to a caller's module
	mem     api.Memory
}

// New starts a runtime with a module exporting a memory of pages pages.
// Close releases both.
func New(ctx context.Context, pages uint32) (*Memory, error) {
	if pages == 0 || pages > maxPages {
		return nil, fmt.Errorf("%w: %d", ErrPages, pages)
	}

	rt := wazero.NewRuntime(ctx)
	mod, err := rt.InstantiateWithConfig(ctx, memoryModule(pages), wazero.NewModuleConfig().WithName(""))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("instantiate memory module: %w", err)
	}

	m, err := Attach(mod)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}
	m.runtime = rt
	return m, nil
}

// Attach wraps the memory of an already instantiated module.
// The caller keeps ownership of the module.
func Attach(mod api.Module) (*Memory, error) {
	mem := mod.Memory()
	if mem == nil {
		return nil, ErrNoMemory
	}
	return &Memory{mem: mem}, nil
}

// Size returns the current size of the linear memory in bytes.
func (m *Memory) Size() uint32 {
	return m.mem.Size()
}

// Block returns a borrowed block over bytes [offset, offset+size) of the linear memory.
func (m *Memory) Block(offset, size uint32) (*memory.Block, error) {
	data, ok := m.mem.Read(offset, size)
	if !ok {
		return nil, fmt.Errorf("%w: [%d, %d) of %d bytes", ErrOutOfRange, offset, uint64(offset)+uint64(size), m.mem.Size())
	}
	return memory.Adopt(data), nil
}

// Grow adds pages to the memory and returns the previous size in pages.
// Blocks obtained before Grow must be dropped.
func (m *Memory) Grow(pages uint32) (uint32, error) {
	prev, ok := m.mem.Grow(pages)
	if !ok {
		return 0, fmt.Errorf("%w: cannot grow by %d", ErrPages, pages)
	}
	return prev, nil
}

// Close closes the runtime started by New. It does nothing for attached modules.
func (m *Memory) Close(ctx context.Context) error {
	if m.runtime == nil {
		return nil
	}
	rt := m.runtime
	m.runtime = nil
	return rt.Close(ctx)
}

// memoryModule encodes a module whose only content is an exported memory.
func memoryModule(pages uint32) []byte {
	memSection := append([]byte{0x01, 0x00}, uleb128(pages)...) // one memory, min only
	exportSection := []byte{0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00}

	bin := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	bin = appendSection(bin, 0x05, memSection)
	bin = appendSection(bin, 0x07, exportSection)
	return bin
}

func appendSection(bin []byte, id byte, payload []byte) []byte {
	bin = append(bin, id)
	bin = append(bin, uleb128(uint32(len(payload)))...) //nolint:gosec // sections are a few bytes
	return append(bin, payload...)
}

func uleb128(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}
