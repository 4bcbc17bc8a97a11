package shrink

import (
	"reflect"
	"slices"
)

// ShrinkStrategy selects the traversal order used by a
// ConfigurableShrinker.
type ShrinkStrategy int

const (
	// DepthFirst commits to the first passing reduction at each step
	// and recurses from there. Fast and order-dependent; not guaranteed
	// minimal.
	DepthFirst ShrinkStrategy = iota
	// BreadthFirst expands every frontier member with the full move
	// vocabulary at each level. Exhaustive within the depth bound at
	// the cost of more oracle calls.
	BreadthFirst
)

// String returns the strategy name.
func (s ShrinkStrategy) String() string {
	switch s {
	case BreadthFirst:
		return "breadth-first"
	default:
		return "depth-first"
	}
}

// DefaultMaxDepth bounds the number of search levels. Breadth-first
// search can branch widely, so the bound is mandatory and kept small.
const DefaultMaxDepth = 20

// ConfigurableShrinker runs one generalized search over the move
// vocabulary, dispatching on the configured strategy.
type ConfigurableShrinker[E any] struct {
	original []E
	strategy ShrinkStrategy
	maxDepth int
}

// NewConfigurableShrinker creates a shrinker over the given failing
// value using the given traversal strategy.
func NewConfigurableShrinker[E any](original []E, strategy ShrinkStrategy) *ConfigurableShrinker[E] {
	return &ConfigurableShrinker[E]{
		original: original,
		strategy: strategy,
		maxDepth: DefaultMaxDepth,
	}
}

// WithMaxDepth overrides the search depth bound.
func (s *ConfigurableShrinker[E]) WithMaxDepth(depth int) *ConfigurableShrinker[E] {
	s.maxDepth = depth
	return s
}

// FindMinimal returns the smallest still-failing value found within the
// depth bound.
func (s *ConfigurableShrinker[E]) FindMinimal(oracle Oracle[E]) []E {
	minimal, _, _ := s.FindMinimalWithStats(oracle)
	return minimal
}

// FindMinimalWithStats returns the smallest still-failing value found,
// the number of oracle calls made, and whether the search converged.
// Converged is false when the depth bound cut the search off with
// reductions still being accepted, in which case a smaller
// counterexample may still exist.
func (s *ConfigurableShrinker[E]) FindMinimalWithStats(oracle Oracle[E]) ([]E, int, bool) {
	switch s.strategy {
	case BreadthFirst:
		return s.findMinimalBFS(oracle)
	default:
		return s.findMinimalDFS(oracle)
	}
}

// findMinimalDFS commits to the first passing strictly smaller
// reduction at each level, up to maxDepth commits.
func (s *ConfigurableShrinker[E]) findMinimalDFS(oracle Oracle[E]) ([]E, int, bool) {
	current := slices.Clone(s.original)
	tests := 0

	for depth := 0; depth < s.maxDepth; depth++ {
		committed := false
		for _, candidate := range reductions(current) {
			if len(candidate) >= len(current) {
				continue
			}
			tests++
			if oracle(candidate) {
				current = candidate
				committed = true
				break
			}
		}
		if !committed {
			return current, tests, true
		}
	}

	// The depth bound stopped the descent while reductions were still
	// being accepted.
	return current, tests, false
}

// findMinimalBFS maintains a frontier of best-known candidates and
// expands every member with the full move vocabulary at each level,
// keeping the oracle-passing children that are strictly smaller than
// their parent. The frontier is a set: a candidate reachable along
// several reduction paths is tested and expanded once per level, so the
// oracle-call count is bounded by the number of distinct candidates
// rather than the number of paths. Ties between equally small results
// go to the leftmost-enumerated candidate, so the result is stable
// across runs.
func (s *ConfigurableShrinker[E]) findMinimalBFS(oracle Oracle[E]) ([]E, int, bool) {
	frontier := [][]E{slices.Clone(s.original)}
	best := frontier[0]
	tests := 0

	for depth := 0; depth < s.maxDepth; depth++ {
		var tested [][]E
		var next [][]E
		for _, member := range frontier {
			for _, candidate := range reductions(member) {
				if len(candidate) >= len(member) {
					continue
				}
				if containsCandidate(tested, candidate) {
					continue
				}
				tested = append(tested, candidate)
				tests++
				if oracle(candidate) {
					next = append(next, candidate)
				}
			}
		}
		if len(next) == 0 {
			return best, tests, true
		}
		frontier = next
		for _, candidate := range frontier {
			if len(candidate) < len(best) {
				best = candidate
			}
		}
	}

	return best, tests, false
}

// containsCandidate reports whether candidate is already among seen.
// Element types are unconstrained, so equality goes through reflect.
func containsCandidate[E any](seen [][]E, candidate []E) bool {
	for _, other := range seen {
		if len(other) == len(candidate) && reflect.DeepEqual(other, candidate) {
			return true
		}
	}
	return false
}
