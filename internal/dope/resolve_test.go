package dope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dope/internal/bounds"
)

func mustBuild(t *testing.T, triples ...[3]int) Layout {
	t.Helper()
	l, err := Build(triples...)
	require.NoError(t, err)
	return l
}

func TestResolveRowMajorScenario(t *testing.T) {
	l := mustBuild(t, [3]int{0, 2, 3}, [3]int{0, 3, 1})

	var c bounds.Collector
	assert.Equal(t, 5, Resolve(l.dopes, []int{1, 2}, c.Func()))
	assert.Empty(t, c.Errors())

	if !bounds.Checking {
		return
	}
	Resolve(l.dopes, []int{2, 0}, c.Func())
	errs := c.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, bounds.IndexingLabel, errs[0].Label)
	assert.Equal(t, 0, errs[0].Axis)
	assert.Equal(t, 2, errs[0].Value)
	assert.Equal(t, 0, errs[0].Low)
	assert.Equal(t, 2, errs[0].High)
}

func TestResolveInBoundsNeverReports(t *testing.T) {
	layouts := []Layout{
		mustBuild(t, [3]int{0, 2, 3}, [3]int{0, 3, 1}),
		mustBuild(t, [3]int{1, 4, 1}, [3]int{-2, 2, 5}),
		mustBuild(t, [3]int{0, 3, -4}, [3]int{0, 2, 2}, [3]int{3, 5, 0}),
		mustBuild(t, [3]int{-5, -1, 7}),
	}

	for _, l := range layouts {
		t.Run(l.String(), func(t *testing.T) {
			var c bounds.Collector
			visited := 0
			Each(l, func(coords []int) bool {
				want := 0
				for i, d := range l.dopes {
					want += coords[i] * d.Stride
				}
				assert.Equal(t, want, Resolve(l.dopes, coords, c.Func()))
				visited++
				return true
			})
			assert.Equal(t, NumElements(l), visited)
			assert.Empty(t, c.Errors())
		})
	}
}

func TestResolveReportsEachEdgeOnce(t *testing.T) {
	if !bounds.Checking {
		t.Skip("bounds checking disabled")
	}
	l := mustBuild(t, [3]int{1, 4, 6}, [3]int{-2, 3, 1}, [3]int{0, 2, -12})

	for axis, d := range l.dopes {
		for _, bad := range []int{d.Low - 1, d.High} {
			coords := []int{1, -2, 0}
			coords[axis] = bad

			var c bounds.Collector
			got := Resolve(l.dopes, coords, c.Func())

			errs := c.Errors()
			require.Len(t, errs, 1, "axis %d value %d", axis, bad)
			assert.Equal(t, axis, errs[0].Axis)
			assert.Equal(t, bad, errs[0].Value)
			assert.Equal(t, d.Low, errs[0].Low)
			assert.Equal(t, d.High, errs[0].High)

			// Reporting does not change the arithmetic.
			assert.Equal(t, Resolve(l.dopes, coords, nil), got)
		}
	}
}

func TestResolveReportsAxesInOrder(t *testing.T) {
	if !bounds.Checking {
		t.Skip("bounds checking disabled")
	}
	l := mustBuild(t, [3]int{0, 2, 3}, [3]int{0, 3, 1})

	var c bounds.Collector
	got := Resolve(l.dopes, []int{5, -1}, c.Func())
	assert.Equal(t, 14, got)

	errs := c.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, 0, errs[0].Axis)
	assert.Equal(t, 1, errs[1].Axis)
}

func TestResolvePanicsBeforeReturning(t *testing.T) {
	if !bounds.Checking {
		t.Skip("bounds checking disabled")
	}
	l := mustBuild(t, [3]int{0, 2, 3}, [3]int{0, 3, 1})
	assert.PanicsWithError(t, "Indexing: index 3 out of range [0, 3) on axis 1", func() {
		Resolve(l.dopes, []int{0, 3}, bounds.Panic())
	})
}

func TestResolveRankZero(t *testing.T) {
	assert.Equal(t, 0, Resolve(nil, nil, bounds.Panic()))
	assert.Equal(t, 0, Layout{}.Resolve(nil))
}

func TestResolveReversedAxis(t *testing.T) {
	l := mustBuild(t, [3]int{0, 4, 5}, [3]int{2, 7, 1})

	for axis := range l.Rank() {
		r, err := Reverse(l, axis)
		require.NoError(t, err)

		Each(l, func(coords []int) bool {
			reflected := append([]int(nil), coords...)
			reflected[axis] = -coords[axis]

			var c bounds.Collector
			assert.Equal(t, l.Resolve(coords), Resolve(r.dopes, reflected, c.Func()))
			assert.Empty(t, c.Errors(), "reflected coordinate must be in bounds")
			return true
		})
	}
}
