// Package shrink provides search strategies for minimizing failing
// property-test inputs. Given a value that makes a property fail and an
// oracle that answers "does this candidate still fail?", each shrinker
// searches for a smaller value the oracle still accepts, so the
// reported counterexample is as informative as possible.
//
// All strategies share one structural move vocabulary over sequences
// (single-element removals, chunk removals, the empty sequence,
// adjacent-pair removals) and differ only in search order, acceptance
// criteria, and termination guarantees. They are single-threaded and
// hold no state after returning; construct one per shrink.
//
// Oracles are assumed deterministic. A non-deterministic oracle voids
// the minimality guarantees, and a panic inside an oracle propagates to
// the caller.
package shrink

// Oracle reports whether a candidate still exhibits the condition being
// minimized for (typically: still fails the property). Oracles may be
// expensive; every strategy exposes an iteration or depth bound as its
// throttle.
type Oracle[E any] func([]E) bool

// reductions enumerates the structural move vocabulary for xs in a
// fixed, deterministic order: every single-element removal, chunk
// removals (both halves, then all thirds), the empty sequence, and
// every adjacent-pair removal. Every candidate is strictly smaller than
// xs. For length n this yields 2n+O(1) candidates, fewer at n <= 1.
func reductions[E any](xs []E) [][]E {
	n := len(xs)
	if n == 0 {
		return nil
	}

	out := make([][]E, 0, 2*n+6)

	for i := 0; i < n; i++ {
		out = append(out, removeRange(xs, i, i+1))
	}

	if half := n / 2; half >= 1 && n >= 2 {
		out = append(out, removeRange(xs, 0, half))
		out = append(out, removeRange(xs, half, n))
	}
	if third := n / 3; third >= 1 && n >= 3 {
		out = append(out, removeRange(xs, 0, third))
		out = append(out, removeRange(xs, third, 2*third))
		out = append(out, removeRange(xs, 2*third, n))
	}

	out = append(out, []E{})

	for i := 0; i+1 < n; i++ {
		out = append(out, removeRange(xs, i, i+2))
	}

	return out
}

// removeRange returns a copy of xs without the half-open range [lo, hi).
func removeRange[E any](xs []E, lo, hi int) []E {
	out := make([]E, 0, len(xs)-(hi-lo))
	out = append(out, xs[:lo]...)
	out = append(out, xs[hi:]...)
	return out
}
