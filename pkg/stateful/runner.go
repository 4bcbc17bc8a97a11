package stateful

import "fmt"

// Runner replays operation sequences from an initial state, checking
// each operation's precondition before it executes and every invariant
// after. The initial state is cloned per run, so a Runner can replay
// many candidate sequences without cross-contamination.
type Runner[S Cloneable[S]] struct {
	initial    S
	invariants *InvariantSet[S]
}

// NewRunner creates a runner with the given initial state.
func NewRunner[S Cloneable[S]](initial S) *Runner[S] {
	return &Runner[S]{
		initial:    initial,
		invariants: NewInvariantSet[S](),
	}
}

// Invariant adds a named invariant checked after every operation, and
// once against the initial state. Returns the runner for chaining.
func (r *Runner[S]) Invariant(name string, check func(*S) bool) *Runner[S] {
	r.invariants.AddFunc(name, check)
	return r
}

// Run replays the sequence on a clone of the initial state. It returns
// the final state, or a *Failure naming the operation at which a
// precondition or invariant first broke.
func (r *Runner[S]) Run(seq *Sequence[S]) (S, error) {
	state := r.initial.Clone()

	if err := r.invariants.CheckAll(&state); err != nil {
		return state, &Failure{OpIndex: -1, Err: err}
	}

	for idx, op := range seq.Operations() {
		if !op.Precondition(&state) {
			return state, &Failure{
				OpIndex: idx,
				Op:      op.Description(),
				Err:     &PreconditionError{Index: idx, Op: op.Description()},
			}
		}
		op.Execute(&state)
		if err := r.invariants.CheckAll(&state); err != nil {
			return state, &Failure{OpIndex: idx, Op: op.Description(), Err: err}
		}
	}

	return state, nil
}

// RunWithTrace replays the sequence like Run while recording the state
// after each operation.
func (r *Runner[S]) RunWithTrace(seq *Sequence[S]) (*Trace[S], error) {
	state := r.initial.Clone()
	trace := &Trace[S]{initial: r.initial.Clone()}

	if err := r.invariants.CheckAll(&state); err != nil {
		return trace, &Failure{OpIndex: -1, Err: err}
	}

	for idx, op := range seq.Operations() {
		if !op.Precondition(&state) {
			return trace, &Failure{
				OpIndex: idx,
				Op:      op.Description(),
				Err:     &PreconditionError{Index: idx, Op: op.Description()},
			}
		}
		op.Execute(&state)
		trace.steps = append(trace.steps, TraceStep[S]{Op: op.Description(), State: state.Clone()})
		if err := r.invariants.CheckAll(&state); err != nil {
			return trace, &Failure{OpIndex: idx, Op: op.Description(), Err: err}
		}
	}

	return trace, nil
}

// Failure describes where a sequence replay broke.
type Failure struct {
	// OpIndex is the index of the operation that broke the run, or -1
	// when the initial state already violated an invariant.
	OpIndex int
	// Op is the description of the offending operation, if any.
	Op string
	// Err is the underlying *PreconditionError or *ViolationError.
	Err error
}

func (f *Failure) Error() string {
	if f.OpIndex < 0 {
		return fmt.Sprintf("stateful run failed on initial state: %v", f.Err)
	}
	return fmt.Sprintf("stateful run failed at operation %d (%s): %v", f.OpIndex, f.Op, f.Err)
}

// Unwrap returns the underlying error.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Trace records the state after each executed operation.
type Trace[S any] struct {
	initial S
	steps   []TraceStep[S]
}

// TraceStep pairs an operation description with the state it produced.
type TraceStep[S any] struct {
	Op    string
	State S
}

// Initial returns the state the trace started from.
func (t *Trace[S]) Initial() S {
	return t.initial
}

// Steps returns the recorded steps in execution order.
func (t *Trace[S]) Steps() []TraceStep[S] {
	return t.steps
}

// Final returns the state after the last executed operation, and false
// when nothing executed.
func (t *Trace[S]) Final() (S, bool) {
	if len(t.steps) == 0 {
		var zero S
		return zero, false
	}
	return t.steps[len(t.steps)-1].State, true
}
