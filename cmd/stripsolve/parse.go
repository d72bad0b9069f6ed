package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/stripsolve/pddl"
	"github.com/c360studio/stripsolve/pddl/parser"
)

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <domain.pddl> [problem.pddl]",
		Short: "Parse PDDL files and print their structure",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := parser.New()

			d, err := parseDomainFile(p, args[0])
			if err != nil {
				return err
			}
			printDomain(cmd, d)

			if len(args) == 2 {
				pr, err := parseProblemFile(p, d, args[1])
				if err != nil {
					return err
				}
				printProblem(cmd, pr)
			}
			return nil
		},
	}
}

func parseDomainFile(p *parser.Parser, path string) (*pddl.Domain, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read domain file: %w", err)
	}
	d, err := p.ParseDomain(path, string(text))
	if err != nil {
		return nil, fmt.Errorf("parse domain: %w", err)
	}
	return d, nil
}

func parseProblemFile(p *parser.Parser, d *pddl.Domain, path string) (*pddl.Problem, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read problem file: %w", err)
	}
	pr, err := p.ParseProblem(d, path, string(text))
	if err != nil {
		return nil, fmt.Errorf("parse problem: %w", err)
	}
	return pr, nil
}

func printDomain(cmd *cobra.Command, d *pddl.Domain) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "domain %s\n", d.Name)
	if len(d.Requirements) > 0 {
		fmt.Fprintf(out, "  requirements: %s\n", strings.Join(d.Requirements, " "))
	}
	if types := d.Types.Types(); len(types) > 0 {
		fmt.Fprintf(out, "  types: %s\n", strings.Join(types, " "))
	}
	fmt.Fprintf(out, "  predicates:\n")
	for _, pred := range d.Predicates {
		params := make([]string, len(pred.Params))
		for i, p := range pred.Params {
			params[i] = p.String()
		}
		fmt.Fprintf(out, "    (%s %s)\n", pred.Name, strings.Join(params, " "))
	}
	fmt.Fprintf(out, "  actions:\n")
	for _, act := range d.Actions {
		fmt.Fprintf(out, "    %s\n", act.Signature())
	}
}

func printProblem(cmd *cobra.Command, pr *pddl.Problem) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "problem %s (domain %s)\n", pr.Name, pr.DomainName)
	if objs := pr.Objects.AllObjects(); len(objs) > 0 {
		fmt.Fprintf(out, "  objects: %s\n", strings.Join(objs, " "))
	}
	fmt.Fprintf(out, "  init: %d atoms\n", pr.Init.Len())
	for _, atom := range pr.Init.Atoms() {
		fmt.Fprintf(out, "    %s\n", atom)
	}
	fmt.Fprintf(out, "  goal:\n")
	for _, g := range pr.PositiveGoals {
		fmt.Fprintf(out, "    %s\n", g)
	}
	for _, g := range pr.NegativeGoals {
		fmt.Fprintf(out, "    (not %s)\n", g)
	}
}
