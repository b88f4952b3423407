// Package bounds defines the range-error reporting contract shared by layouts and memory blocks.
//
// A RangeFunc is an optional callback. When it is nil no check is made at all;
// when it is set, every violation is reported synchronously at the violation
// site, before the offending memory is touched. What happens next is up to the
// callback: Panic aborts, Log records and continues, a Collector accumulates.
//
// Building with the dope_nobounds tag sets Checking to false, which removes
// every check from the library regardless of the callbacks passed in.
package bounds

// RangeFunc receives a single range violation.
//
// label is IndexingLabel for a coordinate outside its axis, or MemoryLabel for
// a byte offset outside a block. axis is the axis index, or MemoryAxis for
// memory violations. Valid values are low <= value < high.
type RangeFunc func(label string, axis, value, low, high int)

// Context labels passed to a RangeFunc.
const (
	IndexingLabel = "Indexing"
	MemoryLabel   = "Memory"
)

// MemoryAxis is the axis sentinel reported for memory violations.
const MemoryAxis = -1

// Enabled reports whether violations will be checked for report.
// It is false for a nil callback and always false under dope_nobounds.
func Enabled(report RangeFunc) bool {
	return Checking && report != nil
}
