// Package array couples a memory block with a layout and an element type.
//
// View[T, L] is the mutable facade and ConstView[T, L] the read-only one.
// Constness is a property of the Go type, not a flag: ConstView has no method
// that returns *T or writes, and there is no conversion from ConstView back to
// View, so obtaining a mutable reference through a read-only view does not compile.
package array

import (
	"reflect"
	"unsafe"
)

// Element is a constraint for the types a view can be laid over.
// All of them are fixed-size and pointer-free, so they can live in borrowed memory.
type Element interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~complex64 | ~complex128 | ~bool
}

// DataType is the runtime tag of an element type.
type DataType int

// Supported data types.
const (
	Int8 DataType = iota
	Int16
	Int32
	Int64
	Int
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Complex64
	Complex128
	Bool
)

var dataTypeNames = [...]string{
	Int8:       "int8",
	Int16:      "int16",
	Int32:      "int32",
	Int64:      "int64",
	Int:        "int",
	Uint8:      "uint8",
	Uint16:     "uint16",
	Uint32:     "uint32",
	Uint64:     "uint64",
	Float32:    "float32",
	Float64:    "float64",
	Complex64:  "complex64",
	Complex128: "complex128",
	Bool:       "bool",
}

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Int8, Uint8, Bool:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64, Complex64:
		return 8
	case Int:
		return int(unsafe.Sizeof(int(0)))
	case Complex128:
		return 16
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	if dt < 0 || int(dt) >= len(dataTypeNames) {
		return "unknown"
	}
	return dataTypeNames[dt]
}

// ParseDataType returns the data type with the given name.
func ParseDataType(name string) (DataType, bool) {
	for i, n := range dataTypeNames {
		if n == name {
			return DataType(i), true
		}
	}
	return 0, false
}

// TypeOf returns the DataType of T's underlying type.
func TypeOf[T Element]() DataType {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int8:
		return Int8
	case reflect.Int16:
		return Int16
	case reflect.Int32:
		return Int32
	case reflect.Int64:
		return Int64
	case reflect.Int:
		return Int
	case reflect.Uint8:
		return Uint8
	case reflect.Uint16:
		return Uint16
	case reflect.Uint32:
		return Uint32
	case reflect.Uint64:
		return Uint64
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	case reflect.Complex64:
		return Complex64
	case reflect.Complex128:
		return Complex128
	case reflect.Bool:
		return Bool
	default:
		panic("unsupported element type")
	}
}

// sizeOf returns the byte size of T.
func sizeOf[T Element]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
