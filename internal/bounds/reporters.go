package bounds

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Panic returns a RangeFunc that panics with a *RangeError.
// The panic unwinds before the out-of-range address is dereferenced,
// and the resulting stack trace points at the violating access.
func Panic() RangeFunc {
	return func(label string, axis, value, low, high int) {
		panic(NewRangeError(label, axis, value, low, high))
	}
}

// Log returns a RangeFunc that logs each violation at warn level with a stack trace
// and lets the access proceed. A nil logger falls back to zap.L().
//
// Only use Log where the caller is prepared for out-of-range accesses, for
// example when auditing layouts against a large enough block.
func Log(logger *zap.Logger) RangeFunc {
	if logger == nil {
		logger = zap.L()
	}
	return func(label string, axis, value, low, high int) {
		logger.Warn("range violation",
			zap.String("label", label),
			zap.Int("axis", axis),
			zap.Int("value", value),
			zap.Int("low", low),
			zap.Int("high", high),
			zap.Stack("stack"))
	}
}

// Collector accumulates violations. It is safe for concurrent use.
type Collector struct {
	mu   sync.Mutex
	errs []*RangeError
}

// Func returns the RangeFunc feeding this collector.
func (c *Collector) Func() RangeFunc {
	return func(label string, axis, value, low, high int) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.errs = append(c.errs, NewRangeError(label, axis, value, low, high))
	}
}

// Errors returns the collected violations in report order.
func (c *Collector) Errors() []*RangeError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*RangeError(nil), c.errs...)
}

// Err joins the collected violations, or returns nil if there were none.
func (c *Collector) Err() error {
	errs := c.Errors()
	if len(errs) == 0 {
		return nil
	}
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}

// Reset drops all collected violations.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = nil
}
