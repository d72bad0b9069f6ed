package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/stripsolve/pddl/parser"
	"github.com/c360studio/stripsolve/planner"
	"github.com/c360studio/stripsolve/watch"
)

func solveCmd() *cobra.Command {
	var (
		timeout   time.Duration
		watchLoop bool
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "solve <domain.pddl> <problem.pddl>",
		Short: "Find a shortest plan for a PDDL task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			domainPath, problemPath := args[0], args[1]

			if !watchLoop {
				return runSolve(cmd, domainPath, problemPath, timeout, verbose)
			}
			return runSolveWatch(cmd, domainPath, problemPath, timeout, verbose)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Maximum search time (0 = unlimited)")
	cmd.Flags().BoolVarP(&watchLoop, "watch", "w", false, "Re-solve whenever the input files change")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print search statistics")

	return cmd
}

func runSolve(cmd *cobra.Command, domainPath, problemPath string, timeout time.Duration, verbose bool) error {
	p := parser.New()

	d, err := parseDomainFile(p, domainPath)
	if err != nil {
		return err
	}
	pr, err := parseProblemFile(p, d, problemPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := planner.Solve(ctx, d, pr)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	out := cmd.OutOrStdout()
	if !res.Solvable {
		fmt.Fprintln(out, "unsolvable")
	} else if len(res.Plan) == 0 {
		fmt.Fprintln(out, "goal already satisfied")
	} else {
		for i, act := range res.Plan {
			fmt.Fprintf(out, "%d. %s\n", i+1, act.Signature())
		}
	}

	if verbose {
		fmt.Fprintf(out, "; %d states expanded, %d states visited, %s\n",
			res.StatesExpanded, res.StatesVisited, elapsed.Round(time.Microsecond))
	}

	if !res.Solvable {
		return fmt.Errorf("no plan exists")
	}
	return nil
}

func runSolveWatch(cmd *cobra.Command, domainPath, problemPath string, timeout time.Duration, verbose bool) error {
	out := cmd.OutOrStdout()

	solveOnce := func() {
		if err := runSolve(cmd, domainPath, problemPath, timeout, verbose); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	solveOnce()

	// Watch the directories containing the input files.
	root := filepath.Dir(domainPath)
	patterns := []string{
		filepath.Base(domainPath),
		filepath.Base(problemPath),
	}
	if filepath.Dir(problemPath) != root {
		rel, err := filepath.Rel(root, problemPath)
		if err != nil {
			return fmt.Errorf("watch paths must share a root: %w", err)
		}
		patterns[1] = filepath.ToSlash(rel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(root, patterns, 500*time.Millisecond, slog.Default())
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Stop()

	fmt.Fprintln(out, "watching for changes (Ctrl-C to stop)")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if ev.Operation == watch.OpDelete {
				continue
			}
			fmt.Fprintf(out, "\n%s changed, re-solving\n", ev.Path)
			solveOnce()
		}
	}
}
