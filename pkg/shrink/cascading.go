package shrink

// CascadingShrinker enumerates every structural reduction of a sequence
// with no oracle feedback. Callers filter the candidates themselves,
// typically keeping the smallest one that still fails. Useful when the
// shape of the minimal counterexample is unknown and the full candidate
// set is cheap to scan.
type CascadingShrinker[E any] struct {
	original []E
}

// NewCascadingShrinker creates a shrinker over the given failing value.
func NewCascadingShrinker[E any](original []E) *CascadingShrinker[E] {
	return &CascadingShrinker[E]{original: original}
}

// Shrink materializes the full move-vocabulary candidate set for the
// original value: for length n, the n single-element removals, the
// chunk removals (halves and thirds), the empty sequence, and the n-1
// adjacent-pair removals, in that order. The enumeration is
// deterministic and restartable: every call returns the same candidates
// in the same order.
func (s *CascadingShrinker[E]) Shrink() [][]E {
	return reductions(s.original)
}
