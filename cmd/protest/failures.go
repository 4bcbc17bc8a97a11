package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/protest-go/protest/pkg/persist"
)

func newFailuresCommand(dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "failures",
		Short: "Inspect and clean up saved failure cases",
	}

	cmd.AddCommand(newFailuresListCommand(dbPath))
	cmd.AddCommand(newFailuresShowCommand(dbPath))
	cmd.AddCommand(newFailuresCleanCommand(dbPath))

	return cmd
}

func newFailuresListCommand(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tests with saved failures",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := persist.NewStore(*dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			tests, err := store.ListTests()
			if err != nil {
				return err
			}
			if len(tests) == 0 {
				fmt.Println("No saved failures.")
				return nil
			}
			for _, name := range tests {
				failures, err := store.LoadFailures(name)
				if err != nil {
					return err
				}
				fmt.Printf("%s (%d failure(s))\n", name, len(failures))
			}
			return nil
		},
	}
}

func newFailuresShowCommand(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <test-name>",
		Short: "Show saved failures for a test",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := persist.NewStore(*dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			failures, err := store.LoadFailures(args[0])
			if err != nil {
				return err
			}
			if len(failures) == 0 {
				fmt.Printf("No saved failures for %s.\n", args[0])
				return nil
			}
			for _, f := range failures {
				fmt.Printf("seed=%d  steps=%d  saved=%s\n", f.Seed, f.ShrinkSteps, f.CreatedAt.Format("2006-01-02 15:04:05"))
				fmt.Printf("  input: %s\n", f.Input)
				fmt.Printf("  error: %s\n", f.ErrorMessage)
			}
			return nil
		},
	}
}

func newFailuresCleanCommand(dbPath *string) *cobra.Command {
	var seed uint64
	var all bool

	cmd := &cobra.Command{
		Use:   "clean <test-name>",
		Short: "Delete saved failures for a test",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := persist.NewStore(*dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if all {
				if err := store.ClearTest(args[0]); err != nil {
					return err
				}
				fmt.Printf("Cleared all failures for %s.\n", args[0])
				return nil
			}
			if !cmd.Flags().Changed("seed") {
				return fmt.Errorf("specify --seed to delete one failure, or --all to clear the test")
			}
			if err := store.DeleteFailure(args[0], seed); err != nil {
				return err
			}
			fmt.Printf("Deleted failure for %s (seed %d).\n", args[0], seed)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed of the failure to delete")
	cmd.Flags().BoolVar(&all, "all", false, "delete every failure for the test")

	return cmd
}
