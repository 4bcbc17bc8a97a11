// Package oracle compiles predicate expressions into shrinking oracles
// over integer sequences. An oracle answers whether a candidate still
// exhibits the failure being minimized, so expressions describe the
// failing condition, not the property itself.
package oracle

import (
	"fmt"

	"github.com/vulcand/predicate"
)

// Oracle reports whether a candidate integer sequence still exhibits
// the condition being minimized for.
type Oracle func([]int) bool

// Compiler parses predicate expressions into Oracles. The expression
// language supports:
//   - Contains(n): the sequence contains n
//   - Len(n): the sequence has exactly n elements
//   - LenAtLeast(n): the sequence has at least n elements
//   - SumGreaterThan(n): element sum exceeds n
//   - SumOfSquaresGreaterThan(n): sum of squared elements exceeds n
//   - NotEmpty(): the sequence has at least one element
//   - logical operators: && (and), || (or), ! (not), parentheses
type Compiler struct {
	parser predicate.Parser
}

// NewCompiler creates an expression compiler.
func NewCompiler() (*Compiler, error) {
	parser, err := predicate.NewParser(predicate.Def{
		Functions: map[string]any{
			"Contains":                containsOracle,
			"Len":                     lenOracle,
			"LenAtLeast":              lenAtLeastOracle,
			"SumGreaterThan":          sumGreaterThanOracle,
			"SumOfSquaresGreaterThan": sumOfSquaresGreaterThanOracle,
			"NotEmpty":                notEmptyOracle,
		},
		Operators: predicate.Operators{
			AND: andOracles,
			OR:  orOracles,
			NOT: notOracle,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create predicate parser: %w", err)
	}
	return &Compiler{parser: parser}, nil
}

// Compile parses an expression into an Oracle.
func (c *Compiler) Compile(expr string) (Oracle, error) {
	parsed, err := c.parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid oracle expression: %w", err)
	}
	oracle, ok := parsed.(Oracle)
	if !ok {
		return nil, fmt.Errorf("oracle expression must evaluate to a boolean predicate, got %T", parsed)
	}
	return oracle, nil
}

func containsOracle(n int) Oracle {
	return func(xs []int) bool {
		for _, x := range xs {
			if x == n {
				return true
			}
		}
		return false
	}
}

func lenOracle(n int) Oracle {
	return func(xs []int) bool {
		return len(xs) == n
	}
}

func lenAtLeastOracle(n int) Oracle {
	return func(xs []int) bool {
		return len(xs) >= n
	}
}

func sumGreaterThanOracle(n int) Oracle {
	return func(xs []int) bool {
		sum := 0
		for _, x := range xs {
			sum += x
		}
		return sum > n
	}
}

func sumOfSquaresGreaterThanOracle(n int) Oracle {
	return func(xs []int) bool {
		sum := 0
		for _, x := range xs {
			sum += x * x
		}
		return sum > n
	}
}

func notEmptyOracle() Oracle {
	return func(xs []int) bool {
		return len(xs) > 0
	}
}

func andOracles(a, b Oracle) Oracle {
	return func(xs []int) bool {
		return a(xs) && b(xs)
	}
}

func orOracles(a, b Oracle) Oracle {
	return func(xs []int) bool {
		return a(xs) || b(xs)
	}
}

func notOracle(a Oracle) Oracle {
	return func(xs []int) bool {
		return !a(xs)
	}
}
