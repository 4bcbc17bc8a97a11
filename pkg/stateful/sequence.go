package stateful

import (
	"fmt"
	"slices"
)

// Sequence is an ordered list of operations over a state of type S.
type Sequence[S any] struct {
	ops []Operation[S]
}

// NewSequence creates an empty sequence.
func NewSequence[S any]() *Sequence[S] {
	return &Sequence[S]{}
}

// SequenceOf creates a sequence from the given operations.
func SequenceOf[S any](ops ...Operation[S]) *Sequence[S] {
	return &Sequence[S]{ops: slices.Clone(ops)}
}

// Push appends an operation to the sequence.
func (s *Sequence[S]) Push(op Operation[S]) {
	s.ops = append(s.ops, op)
}

// Operations returns the operations in order.
func (s *Sequence[S]) Operations() []Operation[S] {
	return s.ops
}

// Len returns the number of operations.
func (s *Sequence[S]) Len() int {
	return len(s.ops)
}

// IsEmpty reports whether the sequence has no operations.
func (s *Sequence[S]) IsEmpty() bool {
	return len(s.ops) == 0
}

// ExecuteAll applies every operation to state in order, without
// checking preconditions.
func (s *Sequence[S]) ExecuteAll(state *S) {
	for _, op := range s.ops {
		op.Execute(state)
	}
}

// ExecuteWithPreconditions applies every operation to state in order,
// returning a *PreconditionError naming the first operation whose
// precondition does not hold at the moment it would execute.
func (s *Sequence[S]) ExecuteWithPreconditions(state *S) error {
	for idx, op := range s.ops {
		if !op.Precondition(state) {
			return &PreconditionError{Index: idx, Op: op.Description()}
		}
		op.Execute(state)
	}
	return nil
}

// Shrink enumerates the structural reductions of the sequence: every
// single-operation removal, both halves, and the sequence without its
// first or last operation. Every result is non-empty and strictly
// smaller than the original. This is the reduction primitive the
// stateful shrinkers build on.
func (s *Sequence[S]) Shrink() []*Sequence[S] {
	n := len(s.ops)
	var shrunk []*Sequence[S]

	for i := 0; i < n; i++ {
		if n <= 1 {
			break
		}
		ops := make([]Operation[S], 0, n-1)
		ops = append(ops, s.ops[:i]...)
		ops = append(ops, s.ops[i+1:]...)
		shrunk = append(shrunk, &Sequence[S]{ops: ops})
	}

	if n > 2 {
		half := n / 2
		shrunk = append(shrunk, SequenceOf(s.ops[:half]...))
		shrunk = append(shrunk, SequenceOf(s.ops[half:]...))
	}

	if n > 1 {
		shrunk = append(shrunk, SequenceOf(s.ops[1:]...))
		shrunk = append(shrunk, SequenceOf(s.ops[:n-1]...))
	}

	return shrunk
}

// PreconditionError reports an operation whose precondition did not
// hold when it was about to execute.
type PreconditionError struct {
	// Index is the position of the operation in the sequence.
	Index int
	// Op is the operation's description.
	Op string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed for operation %q at index %d", e.Op, e.Index)
}
