package logicm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/waybelow-lang/waybelow/logicm"
)

func TestMPlusInterleavesRoundRobin(t *testing.T) {
	a := logicm.MPlusAll(logicm.Unit(1), logicm.Unit(3))
	b := logicm.MPlusAll(logicm.Unit(2), logicm.Unit(4))

	got := logicm.All(logicm.MPlus[int](a, b))
	assert.Equal(t, []int{1, 2, 3, 4}, got)
}

func naturalsFrom(n int) logicm.Stream[int] {
	return func(yield func(int) bool) {
		for i := n; ; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// TestFairnessFiniteAnswerSurvivesInfiniteSibling is invariant 7 from
// spec.md §8: a finite branch's answer must appear at a finite position in
// the stream even when interleaved with an infinite sibling.
func TestFairnessFiniteAnswerSurvivesInfiniteSibling(t *testing.T) {
	finite := logicm.Unit(-1)
	infinite := naturalsFrom(0)

	merged := logicm.MPlus(infinite, finite)
	got := logicm.Take(merged, 2)

	assert.Contains(t, got, -1, "the finite branch's only answer must appear within a bounded prefix")
}

func TestBindFairlyInterleavesPerAnswerExpansions(t *testing.T) {
	s := logicm.MPlusAll(logicm.Unit(0), logicm.Unit(1))
	expand := func(n int) logicm.Stream[int] {
		if n == 0 {
			return naturalsFrom(100)
		}
		return logicm.Unit(-1)
	}

	merged := logicm.Bind(s, expand)
	got := logicm.Take(merged, 3)

	assert.Contains(t, got, -1, "the finite expansion for n=1 must not be starved by the infinite expansion for n=0")
}

func TestTakeStopsEarly(t *testing.T) {
	calls := 0
	s := logicm.Stream[int](func(yield func(int) bool) {
		for i := 0; ; i++ {
			calls++
			if !yield(i) {
				return
			}
		}
	})

	got := logicm.Take(s, 3)
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, 3, calls, "Take must not pull beyond what it needs")
}
