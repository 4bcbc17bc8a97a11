package stateful

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerRunsCleanSequence(t *testing.T) {
	runner := NewRunner(Counter{}).
		Invariant("value is never negative", func(c *Counter) bool { return c.Value >= 0 })

	final, err := runner.Run(SequenceOf[Counter](incOp{}, incOp{}, decOp{}))

	require.NoError(t, err)
	assert.Equal(t, 1, final.Value)
}

func TestRunnerDoesNotMutateInitialState(t *testing.T) {
	initial := Counter{Value: 5}
	runner := NewRunner(initial)

	_, err := runner.Run(SequenceOf[Counter](incOp{}, incOp{}))
	require.NoError(t, err)

	_, err = runner.Run(SequenceOf[Counter](incOp{}))
	require.NoError(t, err)

	final, err := runner.Run(NewSequence[Counter]())
	require.NoError(t, err)
	assert.Equal(t, 5, final.Value, "each run must start from a fresh clone")
}

func TestRunnerReportsInvariantViolation(t *testing.T) {
	runner := NewRunner(Counter{}).
		Invariant("value stays below 3", func(c *Counter) bool { return c.Value < 3 })

	_, err := runner.Run(SequenceOf(increments(5)...))

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, 2, failure.OpIndex, "the third increment pushes the value to 3")
	assert.Equal(t, "increment", failure.Op)

	var violation *ViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "value stays below 3", violation.Invariant)
}

func TestRunnerReportsPreconditionFailure(t *testing.T) {
	runner := NewRunner(Counter{})

	_, err := runner.Run(SequenceOf[Counter](decOp{}))

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, 0, failure.OpIndex)

	var precondErr *PreconditionError
	assert.ErrorAs(t, err, &precondErr)
}

func TestRunnerChecksInitialState(t *testing.T) {
	runner := NewRunner(Counter{Value: -1}).
		Invariant("value is never negative", func(c *Counter) bool { return c.Value >= 0 })

	_, err := runner.Run(NewSequence[Counter]())

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, -1, failure.OpIndex)
}

func TestRunnerTrace(t *testing.T) {
	runner := NewRunner(Counter{})

	trace, err := runner.RunWithTrace(SequenceOf[Counter](incOp{}, incOp{}, addOp{n: 3}))

	require.NoError(t, err)
	assert.Zero(t, trace.Initial().Value)

	steps := trace.Steps()
	require.Len(t, steps, 3)
	assert.Equal(t, "increment", steps[0].Op)
	assert.Equal(t, 1, steps[0].State.Value)
	assert.Equal(t, "add(3)", steps[2].Op)

	final, ok := trace.Final()
	require.True(t, ok)
	assert.Equal(t, 5, final.Value)
}

func TestRunnerTraceEmptySequence(t *testing.T) {
	trace, err := NewRunner(Counter{}).RunWithTrace(NewSequence[Counter]())

	require.NoError(t, err)
	_, ok := trace.Final()
	assert.False(t, ok)
}

func TestInvariantSet(t *testing.T) {
	set := NewInvariantSet[Counter]()
	assert.True(t, set.IsEmpty())

	set.AddFunc("non-negative", func(c *Counter) bool { return c.Value >= 0 })
	set.AddFunc("below ten", func(c *Counter) bool { return c.Value < 10 })
	assert.Equal(t, 2, set.Len())

	require.NoError(t, set.CheckAll(&Counter{Value: 5}))

	err := set.CheckAll(&Counter{Value: -1})
	var violation *ViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "non-negative", violation.Invariant, "checking stops at the first violation")
}
