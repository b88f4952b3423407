package dope

import "fmt"

// Layout1 is a rank-1 layout.
type Layout1 [1]Dope

// Layout2 is a rank-2 layout.
type Layout2 [2]Dope

// Layout3 is a rank-3 layout.
type Layout3 [3]Dope

// Layout4 is a rank-4 layout.
type Layout4 [4]Dope

// Rank returns 1.
func (Layout1) Rank() int { return 1 }

// Rank returns 2.
func (Layout2) Rank() int { return 2 }

// Rank returns 3.
func (Layout3) Rank() int { return 3 }

// Rank returns 4.
func (Layout4) Rank() int { return 4 }

// Dopes returns a copy of the axes.
func (l Layout1) Dopes() []Dope { return append([]Dope(nil), l[:]...) }

// Dopes returns a copy of the axes.
func (l Layout2) Dopes() []Dope { return append([]Dope(nil), l[:]...) }

// Dopes returns a copy of the axes.
func (l Layout3) Dopes() []Dope { return append([]Dope(nil), l[:]...) }

// Dopes returns a copy of the axes.
func (l Layout4) Dopes() []Dope { return append([]Dope(nil), l[:]...) }

// WithDopes returns a Layout1 holding dopes, which must hold exactly one valid axis.
func (Layout1) WithDopes(dopes []Dope) (Layout1, error) {
	var l Layout1
	err := fill(l[:], dopes)
	return l, err
}

// WithDopes returns a Layout2 holding dopes, which must hold exactly 2 valid axes.
func (Layout2) WithDopes(dopes []Dope) (Layout2, error) {
	var l Layout2
	err := fill(l[:], dopes)
	return l, err
}

// WithDopes returns a Layout3 holding dopes, which must hold exactly 3 valid axes.
func (Layout3) WithDopes(dopes []Dope) (Layout3, error) {
	var l Layout3
	err := fill(l[:], dopes)
	return l, err
}

// WithDopes returns a Layout4 holding dopes, which must hold exactly 4 valid axes.
func (Layout4) WithDopes(dopes []Dope) (Layout4, error) {
	var l Layout4
	err := fill(l[:], dopes)
	return l, err
}

// String returns the axes as low:high:stride triples.
func (l Layout1) String() string { return format(l[:]) }

// String returns the axes as low:high:stride triples.
func (l Layout2) String() string { return format(l[:]) }

// String returns the axes as low:high:stride triples.
func (l Layout3) String() string { return format(l[:]) }

// String returns the axes as low:high:stride triples.
func (l Layout4) String() string { return format(l[:]) }

// fill copies src into the fixed-size dst after checking rank and bounds.
func fill(dst, src []Dope) error {
	if len(src) != len(dst) {
		return fmt.Errorf("%w: %d axes for a rank-%d layout", ErrRankMismatch, len(src), len(dst))
	}
	if err := validate(src); err != nil {
		return err
	}
	copy(dst, src)
	return nil
}
