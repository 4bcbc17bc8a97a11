package shrink

import "slices"

// DeltaDebugShrinker isolates a minimal failure-inducing subset of a
// sequence using the ddmin algorithm: partition the current sequence
// into contiguous chunks, test each chunk's complement and each chunk
// alone, adopt any strictly smaller still-failing candidate, and refine
// the granularity when nothing succeeds. Because granularity eventually
// reaches single elements, the search reaches arbitrary non-contiguous
// subsets (for example {3, 7} out of 1..8) while preserving the
// original relative order.
//
// Cost is O(n log n) oracle calls against 2^n for brute force. The
// result is 1-minimal: removing any single remaining element makes the
// oracle reject it.
type DeltaDebugShrinker[E any] struct {
	items []E
}

// NewDeltaDebugShrinker creates a shrinker over the given failing
// sequence.
func NewDeltaDebugShrinker[E any](items []E) *DeltaDebugShrinker[E] {
	return &DeltaDebugShrinker[E]{items: items}
}

// FindMinimal returns a 1-minimal subsequence that still satisfies the
// oracle.
func (s *DeltaDebugShrinker[E]) FindMinimal(oracle Oracle[E]) []E {
	minimal, _ := s.MinimizeWithStats(oracle)
	return minimal
}

// MinimizeWithStats returns the 1-minimal subsequence and the number of
// oracle calls made. If the original sequence does not satisfy the
// oracle it is returned unchanged.
func (s *DeltaDebugShrinker[E]) MinimizeWithStats(oracle Oracle[E]) ([]E, int) {
	current := slices.Clone(s.items)
	tests := 0

	if len(current) <= 1 {
		return current, tests
	}

	tests++
	if !oracle(current) {
		return current, tests
	}

	granularity := 2
	for len(current) >= 2 {
		chunks := partition(current, granularity)

		reduced := false

		// Complements first: removing a chunk is the biggest win.
		for i := range chunks {
			complement := complementOf(chunks, i)
			if len(complement) == 0 || len(complement) >= len(current) {
				continue
			}
			tests++
			if oracle(complement) {
				current = complement
				reduced = true
				break
			}
		}

		// Then each chunk alone.
		if !reduced {
			for i := range chunks {
				chunk := chunks[i]
				if len(chunk) == 0 || len(chunk) >= len(current) {
					continue
				}
				tests++
				if oracle(chunk) {
					current = slices.Clone(chunk)
					reduced = true
					break
				}
			}
		}

		if reduced {
			granularity = 2
			continue
		}
		if granularity < len(current) {
			granularity = min(granularity*2, len(current))
			continue
		}
		// Granularity is at single elements and no removal succeeded:
		// the current sequence is 1-minimal.
		break
	}

	return current, tests
}

// partition splits xs into n contiguous chunks of near-equal size.
func partition[E any](xs []E, n int) [][]E {
	if n > len(xs) {
		n = len(xs)
	}
	chunks := make([][]E, 0, n)
	size := len(xs) / n
	rem := len(xs) % n
	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < rem {
			end++
		}
		chunks = append(chunks, xs[start:end])
		start = end
	}
	return chunks
}

// complementOf concatenates every chunk except chunks[skip].
func complementOf[E any](chunks [][]E, skip int) []E {
	var out []E
	for i, chunk := range chunks {
		if i == skip {
			continue
		}
		out = append(out, chunk...)
	}
	return out
}
