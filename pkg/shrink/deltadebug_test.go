package shrink

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protest-go/protest/internal/proptest"
)

func contains(xs []int, n int) bool {
	for _, x := range xs {
		if x == n {
			return true
		}
	}
	return false
}

func TestDeltaDebugFindsNonContiguousSubset(t *testing.T) {
	original := []int{1, 2, 3, 4, 5, 6, 7, 8}
	stillFails := func(xs []int) bool {
		return contains(xs, 3) && contains(xs, 7)
	}

	shrinker := NewDeltaDebugShrinker(original)
	minimal, tests := shrinker.MinimizeWithStats(stillFails)

	require.Equal(t, []int{3, 7}, minimal, "ddmin isolates the co-dependent pair in original order")
	assert.Positive(t, tests)
}

func TestDeltaDebugSingleElement(t *testing.T) {
	shrinker := NewDeltaDebugShrinker([]int{42})
	minimal, tests := shrinker.MinimizeWithStats(func(xs []int) bool {
		return contains(xs, 42)
	})

	assert.Equal(t, []int{42}, minimal)
	assert.Zero(t, tests, "nothing to partition below two elements")
}

func TestDeltaDebugOracleRejectsOriginal(t *testing.T) {
	original := []int{1, 2, 3}
	shrinker := NewDeltaDebugShrinker(original)
	minimal, tests := shrinker.MinimizeWithStats(func([]int) bool { return false })

	assert.Equal(t, original, minimal)
	assert.Equal(t, 1, tests, "only the initial check runs")
}

func TestDeltaDebugTestCountStaysPolynomial(t *testing.T) {
	n := 24
	original := make([]int, n)
	for i := range original {
		original[i] = i
	}
	stillFails := func(xs []int) bool {
		return contains(xs, 5) && contains(xs, 13) && contains(xs, 21)
	}

	minimal, tests := NewDeltaDebugShrinker(original).MinimizeWithStats(stillFails)

	require.Equal(t, []int{5, 13, 21}, minimal)
	// Brute force would need up to 2^24 oracle calls.
	assert.Less(t, tests, 2000)
}

func TestDeltaDebugOneMinimal(t *testing.T) {
	properties := gopter.NewProperties(proptest.FastTestParameters())

	properties.Property("removing any element of the result breaks the oracle", prop.ForAll(
		func(xs []int) bool {
			stillFails := func(ys []int) bool { return sumOf(ys) > 20 }
			if !stillFails(xs) {
				return true
			}
			minimal := NewDeltaDebugShrinker(xs).FindMinimal(stillFails)
			if !stillFails(minimal) {
				return false
			}
			for i := range minimal {
				if stillFails(removeRange(minimal, i, i+1)) {
					return false
				}
			}
			return true
		},
		proptest.NonEmptyIntSlice(0, 15),
	))

	properties.TestingRun(t)
}
