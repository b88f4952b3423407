package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/dope/internal/dope"
)

// parseLayout reads comma-separated low:high:stride triples, e.g. "0:2:3,0:3:1".
func parseLayout(s string) (dope.Layout, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return dope.Layout{}, nil
	}

	fields := strings.Split(s, ",")
	triples := make([][3]int, len(fields))
	for i, f := range fields {
		parts := strings.Split(strings.TrimSpace(f), ":")
		if len(parts) != 3 {
			return dope.Layout{}, fmt.Errorf("axis %d: want low:high:stride, got %q", i, f)
		}
		for j, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil {
				return dope.Layout{}, fmt.Errorf("axis %d: %w", i, err)
			}
			triples[i][j] = n
		}
	}
	return dope.Build(triples...)
}

// parseExtents reads a row-major shape such as "2,3".
func parseExtents(s string) (dope.Layout, error) {
	fields := strings.Split(s, ",")
	extents := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return dope.Layout{}, fmt.Errorf("extent %d: %w", i, err)
		}
		extents[i] = n
	}
	return dope.RowMajor(extents...)
}

// layoutFlags resolves -layout and -shape; exactly one must be set.
func layoutFlags(layout, shape string) (dope.Layout, error) {
	switch {
	case layout != "" && shape != "":
		return dope.Layout{}, fmt.Errorf("-layout and -shape are mutually exclusive")
	case layout != "":
		return parseLayout(layout)
	case shape != "":
		return parseExtents(shape)
	default:
		return dope.Layout{}, fmt.Errorf("one of -layout or -shape is required")
	}
}
