package dope

import "errors"

// Common errors.
var (
	ErrInvalidLayout      = errors.New("invalid layout")
	ErrRankMismatch       = errors.New("rank mismatch")
	ErrInvalidPermutation = errors.New("invalid axis permutation")
	ErrInvalidAxis        = errors.New("axis out of range")
)
