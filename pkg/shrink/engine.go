package shrink

import (
	"context"
	"time"
)

// Config bounds a shrink run. The oracle call dominates cost, so both
// bounds are counted and checked at oracle-call boundaries.
type Config struct {
	// MaxIterations caps the number of accepted reductions.
	MaxIterations int
	// Timeout caps wall-clock time. Zero disables the deadline.
	Timeout time.Duration
}

// DefaultConfig returns the standard shrink budget.
func DefaultConfig() Config {
	return Config{
		MaxIterations: 1000,
		Timeout:       10 * time.Second,
	}
}

// Result describes the outcome of a shrink run.
type Result[T any] struct {
	// Original is the failing value the run started from.
	Original T
	// Minimal is the smallest still-failing value found. It always
	// satisfies the oracle, given the oracle held for Original.
	Minimal T
	// Steps counts the accepted reductions.
	Steps int
	// Duration is the wall-clock time spent shrinking.
	Duration time.Duration
	// Converged is true when no further reduction was possible, and
	// false when the run stopped on budget, timeout, or cancellation —
	// in which case a smaller counterexample may still exist.
	Converged bool
}

// Moves enumerates the candidate reductions of a value. Every candidate
// must be smaller than its input or the engine will not terminate
// before its budget.
type Moves[T any] func(T) []T

// SliceMoves returns the shared structural move vocabulary as a Moves
// function over slices of E.
func SliceMoves[E any]() Moves[[]E] {
	return func(xs []E) [][]E {
		return reductions(xs)
	}
}

// Engine runs a bounded, cancelable greedy shrink loop over a pluggable
// move enumerator. It is the boundary handed to the test-execution
// layer: the caller packages the Result into a failure report.
type Engine[T any] struct {
	cfg Config
}

// NewEngine creates an engine with the default budget.
func NewEngine[T any]() *Engine[T] {
	return &Engine[T]{cfg: DefaultConfig()}
}

// NewEngineWithConfig creates an engine with an explicit budget.
func NewEngineWithConfig[T any](cfg Config) *Engine[T] {
	return &Engine[T]{cfg: cfg}
}

// Shrink greedily minimizes value: at each step it adopts the first
// move candidate the oracle accepts and restarts from it. Cancellation
// and the deadline are checked once per oracle-call boundary, never
// mid-call; on cancellation the best candidate so far is returned with
// Converged=false, never an error. A value the oracle already rejects
// is returned unchanged after zero iterations.
func (e *Engine[T]) Shrink(ctx context.Context, value T, oracle func(T) bool, moves Moves[T]) Result[T] {
	start := time.Now()

	if !oracle(value) {
		return Result[T]{
			Original:  value,
			Minimal:   value,
			Duration:  time.Since(start),
			Converged: true,
		}
	}

	var deadline time.Time
	if e.cfg.Timeout > 0 {
		deadline = start.Add(e.cfg.Timeout)
	}
	interrupted := func() bool {
		if ctx.Err() != nil {
			return true
		}
		return !deadline.IsZero() && time.Now().After(deadline)
	}

	current := value
	steps := 0

	for steps < e.cfg.MaxIterations {
		improved := false
		for _, candidate := range moves(current) {
			if interrupted() {
				return Result[T]{
					Original:  value,
					Minimal:   current,
					Steps:     steps,
					Duration:  time.Since(start),
					Converged: false,
				}
			}
			if oracle(candidate) {
				current = candidate
				steps++
				improved = true
				break
			}
		}
		if !improved {
			return Result[T]{
				Original:  value,
				Minimal:   current,
				Steps:     steps,
				Duration:  time.Since(start),
				Converged: true,
			}
		}
	}

	// Iteration budget exhausted with reductions still being accepted.
	return Result[T]{
		Original:  value,
		Minimal:   current,
		Steps:     steps,
		Duration:  time.Since(start),
		Converged: false,
	}
}
