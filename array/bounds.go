// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"go.uber.org/zap"

	"github.com/born-ml/dope/internal/bounds"
)

// RangeFunc receives range violations: (label, axis, value, low, high).
// Axis is MemoryAxis for memory violations.
type RangeFunc = bounds.RangeFunc

// RangeError describes a single violation.
type RangeError = bounds.RangeError

// Collector accumulates violations.
type Collector = bounds.Collector

// Reporting constants.
const (
	IndexingLabel = bounds.IndexingLabel
	MemoryLabel   = bounds.MemoryLabel
	MemoryAxis    = bounds.MemoryAxis
)

// ErrOutOfRange is wrapped by every RangeError.
var ErrOutOfRange = bounds.ErrOutOfRange

// BoundsChecking is false when built with -tags dope_nobounds.
const BoundsChecking = bounds.Checking

// PanicOnRange returns a RangeFunc that panics with a *RangeError.
func PanicOnRange() RangeFunc {
	return bounds.Panic()
}

// LogOnRange returns a RangeFunc that logs violations and lets accesses proceed.
func LogOnRange(logger *zap.Logger) RangeFunc {
	return bounds.Log(logger)
}
