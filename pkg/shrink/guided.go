package shrink

import "slices"

// GuidedShrinker minimizes a failing sequence by greedy iterative
// descent: it enumerates the move vocabulary for the current value,
// adopts the first candidate that is strictly smaller and still
// satisfies the oracle, and restarts from there. It terminates when a
// full pass over the vocabulary produces no acceptable candidate.
//
// The result is locally greedy-minimal. Co-dependent multi-element
// failures (say, a failure that needs elements 3 and 7 jointly while
// either alone also fails) are not discoverable by single-step removal;
// use DeltaDebugShrinker for that class of problem.
type GuidedShrinker[E any] struct {
	original []E
}

// NewGuidedShrinker creates a shrinker over the given failing value.
func NewGuidedShrinker[E any](original []E) *GuidedShrinker[E] {
	return &GuidedShrinker[E]{original: original}
}

// FindMinimal returns the smallest still-failing value reachable by
// greedy descent.
func (s *GuidedShrinker[E]) FindMinimal(oracle Oracle[E]) []E {
	minimal, _ := s.FindMinimalWithStats(oracle)
	return minimal
}

// FindMinimalWithStats returns the minimized value and the number of
// oracle calls made. The strictly-smaller guard is what guarantees
// termination: a same-size "successful" candidate would loop forever.
func (s *GuidedShrinker[E]) FindMinimalWithStats(oracle Oracle[E]) ([]E, int) {
	current := slices.Clone(s.original)
	iterations := 0

	for {
		improved := false
		for _, candidate := range reductions(current) {
			if len(candidate) >= len(current) {
				continue
			}
			iterations++
			if oracle(candidate) {
				current = candidate
				improved = true
				break
			}
		}
		if !improved {
			return current, iterations
		}
	}
}
