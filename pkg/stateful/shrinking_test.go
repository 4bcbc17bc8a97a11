package stateful

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protest-go/protest/internal/proptest"
)

// breaksLimit reports whether replaying the sequence from zero drives
// the counter to the limit. This is the shrinking oracle: the failure
// being minimized is "the counter reaches 10".
func breaksLimit(seq *Sequence[Counter]) bool {
	state := Counter{}
	seq.ExecuteAll(&state)
	return state.Value >= 10
}

func TestDeltaDebugSequenceShrinkerMinimizesIncrements(t *testing.T) {
	seq := SequenceOf(increments(15)...)
	require.True(t, breaksLimit(seq))

	shrinker := NewDeltaDebugSequenceShrinker(seq)
	minimal, tests := shrinker.MinimizeWithStats(breaksLimit)

	assert.Equal(t, 10, minimal.Len(), "exactly ten increments reach the limit")
	assert.True(t, breaksLimit(minimal))
	assert.Positive(t, tests)
}

func TestDeltaDebugSequenceShrinkerPreservesOrder(t *testing.T) {
	// The failure needs the add(7) and the add(3) jointly; ddmin must
	// isolate them without reordering.
	seq := SequenceOf[Counter](
		incOp{}, addOp{n: 7}, incOp{}, incOp{}, addOp{n: 3}, incOp{},
	)
	needsBoth := func(s *Sequence[Counter]) bool {
		state := Counter{}
		s.ExecuteAll(&state)
		return state.Value >= 10
	}
	require.True(t, needsBoth(seq))

	minimal := NewDeltaDebugSequenceShrinker(seq).Minimize(needsBoth)

	require.Equal(t, 2, minimal.Len())
	assert.Equal(t, "add(7)", minimal.Operations()[0].Description())
	assert.Equal(t, "add(3)", minimal.Operations()[1].Description())
}

func TestDeltaDebugSequenceShrinkerProperty(t *testing.T) {
	properties := gopter.NewProperties(proptest.FastTestParameters())

	properties.Property("n increments always minimize to exactly ten", prop.ForAll(
		func(n int) bool {
			seq := SequenceOf(increments(n)...)
			minimal := NewDeltaDebugSequenceShrinker(seq).Minimize(breaksLimit)
			return minimal.Len() == 10 && breaksLimit(minimal)
		},
		proptest.IntRange(10, 40),
	))

	properties.TestingRun(t)
}

func TestSmartShrinkPreconditionGating(t *testing.T) {
	// The failure lives in the decrement operation, but a decrement is
	// only legal on a positive counter. With precondition preservation
	// the shrinker must keep an increment in front of it.
	seq := SequenceOf[Counter](incOp{}, decOp{}, incOp{}, decOp{})
	initial := Counter{}

	t.Run("preserving preconditions", func(t *testing.T) {
		minimal := NewSmartShrink[Counter]().Shrink(seq, initial, containsDecrement)

		require.Equal(t, 2, minimal.Len())
		assert.Equal(t, "increment", minimal.Operations()[0].Description())
		assert.Equal(t, "decrement", minimal.Operations()[1].Description())
		assert.NoError(t, minimal.ExecuteWithPreconditions(&Counter{}))
	})

	t.Run("without preservation", func(t *testing.T) {
		minimal := NewSmartShrink[Counter]().
			PreservePreconditions(false).
			Shrink(seq, initial, containsDecrement)

		require.Equal(t, 1, minimal.Len())
		assert.Equal(t, "decrement", minimal.Operations()[0].Description())
	})
}

func TestSmartShrinkEveryAcceptedCandidateReplays(t *testing.T) {
	seq := SequenceOf[Counter](
		incOp{}, incOp{}, decOp{}, incOp{}, decOp{}, decOp{}, incOp{},
	)
	initial := Counter{}
	require.NoError(t, seq.ExecuteWithPreconditions(&Counter{}))

	minimal := NewSmartShrink[Counter]().Shrink(seq, initial, containsDecrement)

	assert.True(t, containsDecrement(minimal))
	assert.NoError(t, minimal.ExecuteWithPreconditions(&Counter{}),
		"the accepted result must replay without precondition failures")
}

func TestSmartShrinkAttemptBudget(t *testing.T) {
	seq := SequenceOf(increments(5)...)

	minimal, attempts := NewSmartShrink[Counter]().
		MaxAttempts(1).
		ShrinkWithStats(seq, Counter{}, func(s *Sequence[Counter]) bool {
			return s.Len() >= 5
		})

	assert.Equal(t, 1, attempts)
	assert.Equal(t, 5, minimal.Len(), "budget exhaustion returns the best sequence so far")
}

func TestSmartShrinkAlreadyMinimal(t *testing.T) {
	seq := SequenceOf[Counter](incOp{})

	minimal, attempts := NewSmartShrink[Counter]().ShrinkWithStats(seq, Counter{}, func(s *Sequence[Counter]) bool {
		return s.Len() > 0
	})

	assert.Equal(t, 1, minimal.Len())
	assert.Zero(t, attempts, "a single operation has no reduction candidates")
}
