package shrink

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protest-go/protest/internal/proptest"
)

func TestReductionsCensus(t *testing.T) {
	// n singles, 2 halves (n >= 2), 3 thirds (n >= 3), the empty
	// sequence, and n-1 adjacent pairs.
	tests := []struct {
		length int
		want   int
	}{
		{length: 1, want: 2},
		{length: 2, want: 6},
		{length: 3, want: 11},
		{length: 4, want: 13},
		{length: 10, want: 25},
		{length: 100, want: 205},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("length_%d", tt.length), func(t *testing.T) {
			xs := make([]int, tt.length)
			for i := range xs {
				xs[i] = i
			}
			assert.Len(t, reductions(xs), tt.want)
		})
	}
}

func TestReductionsEmptyInput(t *testing.T) {
	assert.Nil(t, reductions([]int{}))
}

func TestReductionsIncludesEmptySequence(t *testing.T) {
	found := false
	for _, candidate := range reductions([]int{1, 2, 3}) {
		if len(candidate) == 0 {
			found = true
		}
	}
	assert.True(t, found, "empty sequence must be among the candidates")
}

func TestReductionsDeterministic(t *testing.T) {
	xs := []int{5, 4, 3, 2, 1}

	first := reductions(xs)
	second := reductions(xs)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i], "candidate %d differs between calls", i)
	}
}

func TestReductionsProperties(t *testing.T) {
	properties := gopter.NewProperties(proptest.TestParameters())

	properties.Property("every candidate is strictly smaller", prop.ForAll(
		func(xs []int) bool {
			for _, candidate := range reductions(xs) {
				if len(candidate) >= len(xs) {
					return false
				}
			}
			return true
		},
		proptest.NonEmptyIntSlice(-100, 100),
	))

	properties.Property("candidates preserve relative element order", prop.ForAll(
		func(xs []int) bool {
			for _, candidate := range reductions(xs) {
				if !isSubsequence(candidate, xs) {
					return false
				}
			}
			return true
		},
		proptest.NonEmptyIntSlice(-100, 100),
	))

	properties.TestingRun(t)
}

// isSubsequence reports whether sub can be obtained from xs by deleting
// elements without reordering. Matches by position, so duplicates are
// handled correctly.
func isSubsequence(sub, xs []int) bool {
	j := 0
	for _, x := range xs {
		if j < len(sub) && sub[j] == x {
			j++
		}
	}
	return j == len(sub)
}
