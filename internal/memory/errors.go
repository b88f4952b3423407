package memory

import (
	"errors"
	"sync/atomic"
)

// Common errors.
var (
	ErrAllocation = errors.New("allocation failed")
	ErrWindow     = errors.New("window outside block")
)

// DefaultMaxAllocation is the initial cap on a single owned allocation.
const DefaultMaxAllocation = 1 << 36

var maxAllocation atomic.Int64

func init() {
	maxAllocation.Store(DefaultMaxAllocation)
}

// MaxAllocation returns the largest size Allocate accepts.
func MaxAllocation() int {
	return int(maxAllocation.Load())
}

// SetMaxAllocation sets the largest size Allocate accepts and returns the
// previous limit. Requests above it fail with ErrAllocation.
// The runtime aborts the process if it cannot supply memory below the limit,
// so the limit should reflect what the host can actually provide.
func SetMaxAllocation(n int) int {
	if n < 0 {
		n = 0
	}
	return int(maxAllocation.Swap(int64(n)))
}
