package dope

// Each calls fn for every valid coordinate vector of l, last axis varying
// fastest, until fn returns false. The coords slice is reused between calls.
// A rank-0 layout yields one empty coordinate vector; a layout with an empty
// axis yields none.
func Each[L Shape[L]](l L, fn func(coords []int) bool) {
	EachDopes(l.Dopes(), fn)
}

// EachDopes is Each on a raw descriptor sequence.
func EachDopes(dopes []Dope, fn func(coords []int) bool) {
	coords := make([]int, len(dopes))
	for i, d := range dopes {
		if d.Len() <= 0 {
			return
		}
		coords[i] = d.Low
	}

	for {
		if !fn(coords) {
			return
		}
		i := len(dopes) - 1
		for ; i >= 0; i-- {
			coords[i]++
			if coords[i] < dopes[i].High {
				break
			}
			coords[i] = dopes[i].Low
		}
		if i < 0 {
			return
		}
	}
}
