package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type celsius float64

func TestTypeOf(t *testing.T) {
	assert.Equal(t, Float64, TypeOf[float64]())
	assert.Equal(t, Float64, TypeOf[celsius](), "named types use their underlying kind")
	assert.Equal(t, Int8, TypeOf[int8]())
	assert.Equal(t, Uint64, TypeOf[uint64]())
	assert.Equal(t, Complex64, TypeOf[complex64]())
	assert.Equal(t, Bool, TypeOf[bool]())
	assert.Equal(t, Int, TypeOf[int]())
}

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Int8, 1}, {Uint8, 1}, {Bool, 1},
		{Int16, 2}, {Uint16, 2},
		{Int32, 4}, {Uint32, 4}, {Float32, 4},
		{Int64, 8}, {Uint64, 8}, {Float64, 8}, {Complex64, 8},
		{Complex128, 16},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.size, tt.dtype.Size(), tt.dtype.String())
	}
	assert.Equal(t, sizeOf[int](), Int.Size())
	assert.Panics(t, func() { DataType(99).Size() })
}

func TestDataTypeNames(t *testing.T) {
	for dt := Int8; dt <= Bool; dt++ {
		parsed, ok := ParseDataType(dt.String())
		assert.True(t, ok)
		assert.Equal(t, dt, parsed)
	}
	assert.Equal(t, "unknown", DataType(-1).String())

	_, ok := ParseDataType("float16")
	assert.False(t, ok)
}
