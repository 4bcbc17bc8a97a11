// Package proptest provides property-based testing infrastructure and
// generators shared by the shrinking test suites.
package proptest

import (
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// TestParameters returns the standard test parameters for property tests.
// Default: 1000 iterations for a good balance between coverage and speed.
func TestParameters() *gopter.TestParameters {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 1000
	return params
}

// FastTestParameters returns reduced-iteration parameters for property
// tests whose bodies are themselves expensive (each run may replay a
// full shrink search).
func FastTestParameters() *gopter.TestParameters {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 100
	return params
}

// IntRange generates integers in a range.
func IntRange(min, max int) gopter.Gen {
	return gen.IntRange(min, max)
}

// IntSlice generates slices of integers in the given range.
func IntSlice(min, max int) gopter.Gen {
	return gen.SliceOf(gen.IntRange(min, max))
}

// NonEmptyIntSlice generates non-empty slices of integers in the given
// range.
func NonEmptyIntSlice(min, max int) gopter.Gen {
	return gen.SliceOf(gen.IntRange(min, max)).SuchThat(func(xs []int) bool {
		return len(xs) > 0
	})
}
