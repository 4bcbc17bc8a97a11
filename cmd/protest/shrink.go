package main

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/protest-go/protest/pkg/oracle"
	"github.com/protest-go/protest/pkg/persist"
	"github.com/protest-go/protest/pkg/report"
	"github.com/protest-go/protest/pkg/shrink"
)

type shrinkOptions struct {
	input         string
	oracleExpr    string
	strategy      string
	testName      string
	seed          uint64
	maxDepth      int
	maxIterations int
	timeout       time.Duration
	save          bool
}

func newShrinkCommand(dbPath *string) *cobra.Command {
	opts := &shrinkOptions{}

	cmd := &cobra.Command{
		Use:   "shrink",
		Short: "Minimize a failing integer sequence against an oracle expression",
		Long: `Shrink a failing input to a minimal counterexample.

The oracle expression describes the failing condition; a candidate is
kept only while the expression stays true. Supported functions:
Contains(n), Len(n), LenAtLeast(n), SumGreaterThan(n),
SumOfSquaresGreaterThan(n), NotEmpty(), combined with && || ! and
parentheses.

Strategies:
  guided  greedy descent with iteration/timeout budget (default)
  delta   delta debugging (ddmin), finds non-contiguous minimal subsets
  dfs     depth-first search, commits to the first passing reduction
  bfs     breadth-first search, exhaustive within the depth bound`,
		Example: `  protest shrink --input 1,2,3,4,5,6,7,8 --oracle 'Contains(3) && Contains(7)' --strategy delta
  protest shrink --input 10,20,30,40,50,60,70,80,90,100 --oracle 'SumGreaterThan(200)'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShrink(cmd.Context(), opts, *dbPath)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "comma-separated failing input, e.g. 1,2,3")
	cmd.Flags().StringVar(&opts.oracleExpr, "oracle", "", "oracle expression describing the failing condition")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "guided", "shrinking strategy: guided, delta, dfs, bfs")
	cmd.Flags().StringVar(&opts.testName, "test-name", "cli", "test name used in the report and failure database")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "RNG seed to record alongside the failure")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", shrink.DefaultMaxDepth, "search depth bound for dfs/bfs")
	cmd.Flags().IntVar(&opts.maxIterations, "max-iterations", 1000, "iteration budget for the guided strategy")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "wall-clock budget for the guided strategy")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the shrunk failure to the database")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("oracle")

	return cmd
}

func runShrink(parent context.Context, opts *shrinkOptions, dbPath string) error {
	input, err := parseIntList(opts.input)
	if err != nil {
		return err
	}

	compiler, err := oracle.NewCompiler()
	if err != nil {
		return err
	}
	test, err := compiler.Compile(opts.oracleExpr)
	if err != nil {
		return err
	}

	// Ctrl-C cancels cooperatively: the run stops at the next oracle
	// call and reports its best candidate so far.
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := dispatchStrategy(ctx, opts, input, test)
	if err != nil {
		return err
	}

	rep := report.FromResult(opts.testName, opts.seed, result)
	renderer := report.NewRenderer(stdoutIsTerminal())
	fmt.Print(renderer.Render(rep))

	if opts.save {
		if err := saveShrunkFailure(dbPath, opts, rep); err != nil {
			return err
		}
		fmt.Printf("Saved to %s\n", dbPath)
	}

	return nil
}

func dispatchStrategy(ctx context.Context, opts *shrinkOptions, input []int, test oracle.Oracle) (shrink.Result[[]int], error) {
	switch opts.strategy {
	case "guided":
		engine := shrink.NewEngineWithConfig[[]int](shrink.Config{
			MaxIterations: opts.maxIterations,
			Timeout:       opts.timeout,
		})
		return engine.Shrink(ctx, input, test, shrink.SliceMoves[int]()), nil

	case "delta":
		start := time.Now()
		shrinker := shrink.NewDeltaDebugShrinker(input)
		minimal, tests := shrinker.MinimizeWithStats(shrink.Oracle[int](test))
		return shrink.Result[[]int]{
			Original:  input,
			Minimal:   minimal,
			Steps:     tests,
			Duration:  time.Since(start),
			Converged: true,
		}, nil

	case "dfs", "bfs":
		strategy := shrink.DepthFirst
		if opts.strategy == "bfs" {
			strategy = shrink.BreadthFirst
		}
		if !test(input) {
			return shrink.Result[[]int]{
				Original:  input,
				Minimal:   input,
				Converged: true,
			}, nil
		}
		start := time.Now()
		shrinker := shrink.NewConfigurableShrinker(input, strategy).WithMaxDepth(opts.maxDepth)
		minimal, tests, converged := shrinker.FindMinimalWithStats(shrink.Oracle[int](test))
		return shrink.Result[[]int]{
			Original:  input,
			Minimal:   minimal,
			Steps:     tests,
			Duration:  time.Since(start),
			Converged: converged,
		}, nil

	default:
		return shrink.Result[[]int]{}, fmt.Errorf("unknown strategy %q (expected guided, delta, dfs, or bfs)", opts.strategy)
	}
}

func saveShrunkFailure(dbPath string, opts *shrinkOptions, rep *report.Report) error {
	store, err := persist.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return store.SaveFailure(&persist.FailureCase{
		TestName:     opts.testName,
		Seed:         opts.seed,
		Input:        rep.Shrunk,
		ErrorMessage: opts.oracleExpr,
		ShrinkSteps:  rep.Steps,
	})
}

// parseIntList parses a comma-separated list of integers.
func parseIntList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q in --input: %w", part, err)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("--input is empty")
	}
	return out, nil
}
