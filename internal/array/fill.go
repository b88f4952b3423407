package array

import (
	"slices"

	"github.com/born-ml/dope/internal/dope"
	"github.com/born-ml/dope/internal/parallel"
)

// Fill stores val in every element of the view.
//
// Large views whose elements do not overlap are filled in parallel, split
// along the first axis. Views with a reporter are filled sequentially so the
// reporter runs on the caller's goroutine.
func (v *View[T, L]) Fill(val T) {
	v.fill(val, parallel.DefaultConfig())
}

func (v *View[T, L]) fill(val T, cfg parallel.Config) {
	if len(v.dopes) == 0 {
		*v.pointer(v.report, nil) = val
		return
	}

	outer := v.dopes[0]
	inner := 1
	for _, d := range v.dopes[1:] {
		inner *= d.Len()
	}
	if outer.Len() <= 0 || inner == 0 {
		return
	}

	if v.report != nil || !dope.NonOverlapping(v.layout) {
		cfg.Enabled = false
	}
	// MinChunkSize counts elements; the work is split by rows of inner elements.
	cfg.MinChunkSize = max(1, cfg.MinChunkSize/inner)

	parallel.ForRange(outer.Len(), func(lo, hi int) {
		rows := slices.Clone(v.dopes)
		rows[0].Low, rows[0].High = outer.Low+lo, outer.Low+hi
		dope.EachDopes(rows, func(coords []int) bool {
			*v.pointer(v.report, coords) = val
			return true
		})
	}, cfg)
}
