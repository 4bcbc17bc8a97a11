package stateful

import (
	"github.com/protest-go/protest/pkg/shrink"
)

// DeltaDebugSequenceShrinker isolates a minimal failing subsequence of
// operations using ddmin. It shares the search implementation with
// shrink.DeltaDebugShrinker; only the candidate packaging differs.
type DeltaDebugSequenceShrinker[S any] struct {
	seq *Sequence[S]
}

// NewDeltaDebugSequenceShrinker creates a shrinker over the given
// failing sequence.
func NewDeltaDebugSequenceShrinker[S any](seq *Sequence[S]) *DeltaDebugSequenceShrinker[S] {
	return &DeltaDebugSequenceShrinker[S]{seq: seq}
}

// Minimize returns a 1-minimal subsequence for which test still returns
// true.
func (s *DeltaDebugSequenceShrinker[S]) Minimize(test func(*Sequence[S]) bool) *Sequence[S] {
	minimal, _ := s.MinimizeWithStats(test)
	return minimal
}

// MinimizeWithStats returns the minimal subsequence and the number of
// times test was called.
func (s *DeltaDebugSequenceShrinker[S]) MinimizeWithStats(test func(*Sequence[S]) bool) (*Sequence[S], int) {
	dd := shrink.NewDeltaDebugShrinker(s.seq.Operations())
	ops, tests := dd.MinimizeWithStats(func(ops []Operation[S]) bool {
		return test(SequenceOf(ops...))
	})
	return SequenceOf(ops...), tests
}

// SmartShrink shrinks operation sequences using the structural
// reduction primitive while optionally rejecting any candidate whose
// replay from the initial state would execute an operation with a
// failing precondition. A candidate is accepted only when it passes
// both the precondition replay (if enabled) and the caller's test —
// failing either rejects it outright.
type SmartShrink[S Cloneable[S]] struct {
	preservePreconditions bool
	maxAttempts           int
}

// NewSmartShrink creates a shrinker with precondition preservation
// enabled and a budget of 1000 attempts.
func NewSmartShrink[S Cloneable[S]]() *SmartShrink[S] {
	return &SmartShrink[S]{
		preservePreconditions: true,
		maxAttempts:           1000,
	}
}

// PreservePreconditions toggles precondition replay gating.
func (c *SmartShrink[S]) PreservePreconditions(preserve bool) *SmartShrink[S] {
	c.preservePreconditions = preserve
	return c
}

// MaxAttempts bounds the number of candidates tested.
func (c *SmartShrink[S]) MaxAttempts(n int) *SmartShrink[S] {
	c.maxAttempts = n
	return c
}

// Shrink returns the smallest accepted sequence found within the
// attempt budget.
func (c *SmartShrink[S]) Shrink(seq *Sequence[S], initial S, test func(*Sequence[S]) bool) *Sequence[S] {
	minimal, _ := c.ShrinkWithStats(seq, initial, test)
	return minimal
}

// ShrinkWithStats returns the smallest accepted sequence and the number
// of candidates tested. On budget exhaustion it returns the best
// candidate accepted so far; exhaustion is not an error.
func (c *SmartShrink[S]) ShrinkWithStats(seq *Sequence[S], initial S, test func(*Sequence[S]) bool) (*Sequence[S], int) {
	current := seq
	attempts := 0

	for attempts < c.maxAttempts {
		found := false
		for _, candidate := range current.Shrink() {
			if attempts >= c.maxAttempts {
				break
			}
			attempts++
			if c.preservePreconditions && !replayValid(candidate, initial) {
				continue
			}
			if test(candidate) {
				current = candidate
				found = true
				break
			}
		}
		if !found {
			break
		}
	}

	return current, attempts
}

// replayValid replays the sequence on a clone of initial, verifying
// each operation's precondition immediately before it executes.
func replayValid[S Cloneable[S]](seq *Sequence[S], initial S) bool {
	state := initial.Clone()
	for _, op := range seq.Operations() {
		if !op.Precondition(&state) {
			return false
		}
		op.Execute(&state)
	}
	return true
}
