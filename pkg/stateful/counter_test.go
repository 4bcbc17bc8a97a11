package stateful

import "fmt"

// Counter is the shared test state: an integer register with clone
// semantics.
type Counter struct {
	Value int
}

// Clone returns an independent copy.
func (c Counter) Clone() Counter {
	return Counter{Value: c.Value}
}

type incOp struct {
	Base[Counter]
}

func (incOp) Execute(c *Counter)  { c.Value++ }
func (incOp) Description() string { return "increment" }

type decOp struct{}

func (decOp) Execute(c *Counter)           { c.Value-- }
func (decOp) Precondition(c *Counter) bool { return c.Value > 0 }
func (decOp) Description() string          { return "decrement" }

type addOp struct {
	Base[Counter]
	n int
}

func (op addOp) Execute(c *Counter)  { c.Value += op.n }
func (op addOp) Description() string { return fmt.Sprintf("add(%d)", op.n) }

func increments(n int) []Operation[Counter] {
	ops := make([]Operation[Counter], n)
	for i := range ops {
		ops[i] = incOp{}
	}
	return ops
}

func containsDecrement(seq *Sequence[Counter]) bool {
	for _, op := range seq.Operations() {
		if op.Description() == "decrement" {
			return true
		}
	}
	return false
}
