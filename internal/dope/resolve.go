package dope

import "github.com/born-ml/dope/internal/bounds"

// Resolve maps coords to an element offset: the sum of coords[i]*dopes[i].Stride.
//
// If report is non-nil, every coordinate outside its axis's [Low, High) is
// reported with IndexingLabel, in descriptor order, before the caller touches
// memory. Reporting never short-circuits and never changes the result.
//
// coords must have at least len(dopes) entries; extra entries are ignored.
// This is the only offset algorithm; every rank and every view goes through it.
func Resolve(dopes []Dope, coords []int, report bounds.RangeFunc) int {
	offset := 0
	if bounds.Enabled(report) {
		for i, d := range dopes {
			c := coords[i]
			if c < d.Low || c >= d.High {
				report(bounds.IndexingLabel, i, c, d.Low, d.High)
			}
			offset += c * d.Stride
		}
		return offset
	}
	for i, d := range dopes {
		offset += coords[i] * d.Stride
	}
	return offset
}
