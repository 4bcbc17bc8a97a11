package stateful

import "fmt"

// Invariant is a named predicate that must hold for a state.
type Invariant[S any] interface {
	// Check reports whether the invariant holds.
	Check(state *S) bool
	// Description returns the invariant's name.
	Description() string
}

// FnInvariant adapts a plain function into an Invariant.
type FnInvariant[S any] struct {
	name  string
	check func(*S) bool
}

// NewFnInvariant creates a function-based invariant.
func NewFnInvariant[S any](name string, check func(*S) bool) *FnInvariant[S] {
	return &FnInvariant[S]{name: name, check: check}
}

// Check reports whether the invariant holds.
func (i *FnInvariant[S]) Check(state *S) bool {
	return i.check(state)
}

// Description returns the invariant's name.
func (i *FnInvariant[S]) Description() string {
	return i.name
}

// InvariantSet is an ordered collection of invariants. Checking
// short-circuits on the first violation and reports which invariant
// failed.
type InvariantSet[S any] struct {
	invariants []Invariant[S]
}

// NewInvariantSet creates an empty invariant set.
func NewInvariantSet[S any]() *InvariantSet[S] {
	return &InvariantSet[S]{}
}

// Add appends an invariant.
func (s *InvariantSet[S]) Add(inv Invariant[S]) {
	s.invariants = append(s.invariants, inv)
}

// AddFunc appends a function-based invariant.
func (s *InvariantSet[S]) AddFunc(name string, check func(*S) bool) {
	s.Add(NewFnInvariant(name, check))
}

// CheckAll checks every invariant in order, returning a
// *ViolationError for the first one that does not hold.
func (s *InvariantSet[S]) CheckAll(state *S) error {
	for _, inv := range s.invariants {
		if !inv.Check(state) {
			return &ViolationError{Invariant: inv.Description()}
		}
	}
	return nil
}

// Len returns the number of invariants.
func (s *InvariantSet[S]) Len() int {
	return len(s.invariants)
}

// IsEmpty reports whether the set has no invariants.
func (s *InvariantSet[S]) IsEmpty() bool {
	return len(s.invariants) == 0
}

// ViolationError reports an invariant that did not hold.
type ViolationError struct {
	// Invariant is the name of the violated invariant.
	Invariant string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("invariant violated: %s", e.Invariant)
}
