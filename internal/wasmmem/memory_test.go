package wasmmem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"

	"github.com/born-ml/dope/internal/array"
	"github.com/born-ml/dope/internal/dope"
)

func TestUleb128(t *testing.T) {
	assert.Equal(t, []byte{0x01}, uleb128(1))
	assert.Equal(t, []byte{0x7f}, uleb128(127))
	assert.Equal(t, []byte{0x80, 0x01}, uleb128(128))
	assert.Equal(t, []byte{0x80, 0x80, 0x04}, uleb128(65536))
}

func TestViewOverLinearMemory(t *testing.T) {
	ctx := context.Background()
	m, err := New(ctx, 1)
	require.NoError(t, err)
	defer func() { require.NoError(t, m.Close(ctx)) }()

	assert.Equal(t, uint32(PageSize), m.Size())

	block, err := m.Block(64, 6*4)
	require.NoError(t, err)
	assert.False(t, block.IsOwned())

	v, err := array.Compose[int32](block, dope.Layout2{{0, 2, 3}, {0, 3, 1}})
	require.NoError(t, err)
	defer v.Release()
	v.Set(0x01020304, 1, 2)

	// The write lands in the module's memory at byte 64 + 5*4.
	got, ok := m.mem.ReadUint32Le(64 + 5*4)
	require.True(t, ok)
	assert.Equal(t, uint32(0x01020304), got)
}

func TestBlockOutOfRange(t *testing.T) {
	ctx := context.Background()
	m, err := New(ctx, 1)
	require.NoError(t, err)
	defer func() { _ = m.Close(ctx) }()

	_, err = m.Block(PageSize-4, 8)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestGrow(t *testing.T) {
	ctx := context.Background()
	m, err := New(ctx, 1)
	require.NoError(t, err)
	defer func() { _ = m.Close(ctx) }()

	prev, err := m.Grow(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), prev)
	assert.Equal(t, uint32(2*PageSize), m.Size())

	_, err = m.Block(PageSize, 16)
	assert.NoError(t, err)
}

func TestNewInvalidPages(t *testing.T) {
	_, err := New(context.Background(), 0)
	assert.ErrorIs(t, err, ErrPages)
}

func TestAttach(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	mod, err := rt.Instantiate(ctx, memoryModule(2))
	require.NoError(t, err)

	m, err := Attach(mod)
	require.NoError(t, err)
	assert.Equal(t, uint32(2*PageSize), m.Size())
	assert.NoError(t, m.Close(ctx), "attached memories leave the runtime to the caller")

	empty, err := rt.Instantiate(ctx, []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00})
	require.NoError(t, err)
	_, err = Attach(empty)
	assert.ErrorIs(t, err, ErrNoMemory)
}
