package parser

import (
	"github.com/c360studio/stripsolve/pddl"
	"github.com/c360studio/stripsolve/pddl/sexpr"
)

func parseProblemName(ctx *ProblemContext, group []*sexpr.Node) error {
	if len(group) != 1 || !group[0].IsAtom() {
		return parseErrf(ctx.File, "problem", nodeLine(group), "expected exactly one problem name")
	}
	ctx.Problem.Name = group[0].Atom
	return nil
}

func parseDomainRef(ctx *ProblemContext, group []*sexpr.Node) error {
	if len(group) != 1 || !group[0].IsAtom() {
		return parseErrf(ctx.File, ":domain", nodeLine(group), "expected exactly one domain name")
	}
	if group[0].Atom != ctx.Domain.Name {
		return parseErrf(ctx.File, ":domain", group[0].Line,
			"problem references domain %s, but %s was parsed", group[0].Atom, ctx.Domain.Name)
	}
	ctx.Problem.DomainName = group[0].Atom
	return nil
}

// parseProblemRequirements ignores problem-file requirement tokens;
// requirements are parsed from the domain.
func parseProblemRequirements(_ *ProblemContext, _ []*sexpr.Node) error {
	return nil
}

func parseObjects(ctx *ProblemContext, group []*sexpr.Node) error {
	pairs, err := typedList(ctx.File, ":objects", group)
	if err != nil {
		return err
	}
	for _, pair := range pairs {
		if pair.Type != pddl.UniversalType && !ctx.Domain.Types.HasType(pair.Type) {
			return parseErrf(ctx.File, ":objects", nodeLine(group), "object %s: type %s not declared", pair.Name, pair.Type)
		}
		ctx.Problem.Objects.AddObject(pair.Name, pair.Type)
	}
	return nil
}

// parseInit reads the initial state: a list of ground positive atoms.
// Negative atoms are forbidden in :init under the closed-world
// convention, where absence already means false.
func parseInit(ctx *ProblemContext, group []*sexpr.Node) error {
	atoms := make([]pddl.Literal, 0, len(group))
	for _, n := range group {
		if !n.IsAtom() && len(n.List) > 0 && n.List[0].IsAtom() && n.List[0].Atom == "not" {
			return parseErrf(ctx.File, ":init", n.Line, "negative atoms are not permitted in :init")
		}
		l, err := literalFromNode(ctx.File, ":init", n)
		if err != nil {
			return err
		}
		if err := checkGroundAtom(ctx, ":init", n.Line, l); err != nil {
			return err
		}
		atoms = append(atoms, l)
	}
	ctx.Problem.Init = pddl.NewState(atoms...)
	return nil
}

func parseGoal(ctx *ProblemContext, group []*sexpr.Node) error {
	if len(group) != 1 {
		return parseErrf(ctx.File, ":goal", nodeLine(group), "expected exactly one goal formula")
	}
	pos, neg, err := splitFormula(ctx.File, ":goal", group[0])
	if err != nil {
		return err
	}
	for _, l := range pos {
		if err := checkGroundAtom(ctx, ":goal", group[0].Line, l); err != nil {
			return err
		}
	}
	for _, l := range neg {
		if err := checkGroundAtom(ctx, ":goal", group[0].Line, l); err != nil {
			return err
		}
	}
	ctx.Problem.PositiveGoals = pos
	ctx.Problem.NegativeGoals = neg
	return nil
}

// checkGroundAtom validates an :init or :goal atom: declared predicate,
// matching arity, no variables.
func checkGroundAtom(ctx *ProblemContext, section string, line int, l pddl.Literal) error {
	decl, ok := ctx.Domain.Predicate(l.Predicate)
	if !ok {
		return parseErrf(ctx.File, section, line, "predicate %s not declared", l.Predicate)
	}
	if len(l.Terms) != decl.Arity() {
		return parseErrf(ctx.File, section, line, "predicate %s expects %d terms, got %d", l.Predicate, decl.Arity(), len(l.Terms))
	}
	if !l.IsGround() {
		return parseErrf(ctx.File, section, line, "%s contains variables; %s atoms must be ground", l, section)
	}
	return nil
}
