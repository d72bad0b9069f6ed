package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/stripsolve/pddl/parser"
	"github.com/c360studio/stripsolve/planner"
	"github.com/c360studio/stripsolve/watch"
)

func benchCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "bench <domain.pddl> <problem-glob>...",
		Short: "Solve a batch of problems and report timings",
		Long: `Bench solves every problem matching the given globs against one
domain and prints per-problem plan lengths and timings. Globs support
doublestar patterns such as "problems/**/*.pddl".`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, args[0], args[1:], timeout)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Maximum search time per problem (0 = unlimited)")

	return cmd
}

func runBench(cmd *cobra.Command, domainPath string, problemGlobs []string, timeout time.Duration) error {
	p := parser.New()

	d, err := parseDomainFile(p, domainPath)
	if err != nil {
		return err
	}

	problems, err := watch.ExpandFiles(problemGlobs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failures := 0
	for _, path := range problems {
		pr, err := parseProblemFile(p, d, path)
		if err != nil {
			fmt.Fprintf(out, "%-40s parse error: %v\n", path, err)
			failures++
			continue
		}

		ctx := context.Background()
		var cancel context.CancelFunc
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, timeout)
		}

		start := time.Now()
		res, err := planner.Solve(ctx, d, pr)
		elapsed := time.Since(start)
		if cancel != nil {
			cancel()
		}

		switch {
		case err != nil:
			fmt.Fprintf(out, "%-40s error after %s: %v\n", path, elapsed.Round(time.Millisecond), err)
			failures++
		case !res.Solvable:
			fmt.Fprintf(out, "%-40s unsolvable  %8d expanded  %s\n",
				path, res.StatesExpanded, elapsed.Round(time.Microsecond))
		default:
			fmt.Fprintf(out, "%-40s plan=%-4d   %8d expanded  %s\n",
				path, len(res.Plan), res.StatesExpanded, elapsed.Round(time.Microsecond))
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d problems failed", failures, len(problems))
	}
	return nil
}
