// Package stateful shrinks failing operation sequences against mutable
// state. Operations carry runtime-checked preconditions, and the
// shrinkers can be configured to reject any candidate sequence whose
// replay would execute an operation whose precondition does not hold.
//
// All replay happens on clones of the caller's initial state; nothing
// in this package mutates caller-owned state.
package stateful

// Cloneable is implemented by state types that can produce an
// independent copy of themselves.
type Cloneable[S any] interface {
	Clone() S
}

// Operation is a single step that can be applied to a state of type S.
type Operation[S any] interface {
	// Execute applies the operation to the state.
	Execute(state *S)
	// Precondition reports whether the operation is legally applicable
	// in the given state.
	Precondition(state *S) bool
	// Description returns a human-readable label for reports.
	Description() string
}

// Base provides default Operation behavior for operations that are
// always legal. Embed it and implement Execute and Description.
type Base[S any] struct{}

// Precondition always holds for Base operations.
func (Base[S]) Precondition(*S) bool { return true }
