package parser

import (
	"github.com/c360studio/stripsolve/pddl"
	"github.com/c360studio/stripsolve/pddl/sexpr"
)

func parseDomainName(ctx *DomainContext, group []*sexpr.Node) error {
	if len(group) != 1 || !group[0].IsAtom() {
		return parseErrf(ctx.File, "domain", nodeLine(group), "expected exactly one domain name")
	}
	ctx.Domain.Name = group[0].Atom
	return nil
}

func parseRequirements(ctx *DomainContext, group []*sexpr.Node) error {
	for _, n := range group {
		if !n.IsAtom() {
			return parseErrf(ctx.File, ":requirements", n.Line, "expected a requirement token, got %s", n.String())
		}
		if _, ok := ctx.Parser.requirements[n.Atom]; !ok {
			return parseErrf(ctx.File, ":requirements", n.Line, "requirement %s not supported", n.Atom)
		}
		ctx.Domain.Requirements = append(ctx.Domain.Requirements, n.Atom)
	}
	return nil
}

// parseTypes reads the flat typed list of :types. Names before a
// "- super" marker become subtypes of super; trailing names default to
// the universal type. The resulting graph is cycle-checked in
// validateDomain.
func parseTypes(ctx *DomainContext, group []*sexpr.Node) error {
	pairs, err := typedList(ctx.File, ":types", group)
	if err != nil {
		return err
	}
	for _, pair := range pairs {
		if _, dup := ctx.DeclaredTypes[pair.Name]; dup {
			return parseErrf(ctx.File, ":types", nodeLine(group), "type %s redeclared", pair.Name)
		}
		ctx.DeclaredTypes[pair.Name] = struct{}{}
		ctx.Domain.Types.DeclareSubtype(pair.Name, pair.Type)
	}
	return nil
}

func parseConstants(ctx *DomainContext, group []*sexpr.Node) error {
	pairs, err := typedList(ctx.File, ":constants", group)
	if err != nil {
		return err
	}
	for _, pair := range pairs {
		ctx.Constants = append(ctx.Constants, pair)
		ctx.Domain.Types.AddObject(pair.Name, pair.Type)
	}
	return nil
}

func parsePredicates(ctx *DomainContext, group []*sexpr.Node) error {
	for _, n := range group {
		if n.IsAtom() || len(n.List) == 0 || !n.List[0].IsAtom() {
			return parseErrf(ctx.File, ":predicates", n.Line, "expected (name ?arg ...), got %s", n.String())
		}
		name := n.List[0].Atom
		if name == pddl.EqualityPredicate {
			return parseErrf(ctx.File, ":predicates", n.Line, "%s is a built-in predicate", name)
		}
		if _, exists := ctx.Domain.Predicate(name); exists {
			return parseErrf(ctx.File, ":predicates", n.Line, "predicate %s redefined", name)
		}
		params, err := typedList(ctx.File, ":predicates", n.List[1:])
		if err != nil {
			return err
		}
		ctx.Domain.Predicates = append(ctx.Domain.Predicates, pddl.Predicate{Name: name, Params: params})
	}
	return nil
}

// parseAction reads one :action group: a name followed by
// :parameters / :precondition / :effect pairs. Preconditions and
// effects are normalized into positive/negative and add/del sets, with
// the "not" wrappers stripped.
func parseAction(ctx *DomainContext, group []*sexpr.Node) error {
	if len(group) == 0 || !group[0].IsAtom() {
		return parseErrf(ctx.File, ":action", nodeLine(group), "action without name")
	}
	name := group[0].Atom
	if _, exists := ctx.Domain.Action(name); exists {
		return parseErrf(ctx.File, ":action", group[0].Line, "action %s redefined", name)
	}

	action := &pddl.Action{Name: name}
	section := ":action " + name
	rest := group[1:]
	for len(rest) > 0 {
		key := rest[0]
		if !key.IsAtom() {
			return parseErrf(ctx.File, section, key.Line, "expected an action keyword, got %s", key.String())
		}
		if len(rest) < 2 {
			return parseErrf(ctx.File, section, key.Line, "%s missing a value", key.Atom)
		}
		value := rest[1]
		rest = rest[2:]

		switch key.Atom {
		case ":parameters":
			if value.IsAtom() {
				return parseErrf(ctx.File, section, value.Line, ":parameters expects a list")
			}
			params, err := typedList(ctx.File, section, value.List)
			if err != nil {
				return err
			}
			for _, p := range params {
				if !pddl.IsVariable(p.Name) {
					return parseErrf(ctx.File, section, value.Line, "parameter %s is not a variable", p.Name)
				}
			}
			action.Parameters = params
		case ":precondition":
			pos, neg, err := splitFormula(ctx.File, section, value)
			if err != nil {
				return err
			}
			action.PositivePreconditions = pos
			action.NegativePreconditions = neg
		case ":effect":
			add, del, err := splitFormula(ctx.File, section, value)
			if err != nil {
				return err
			}
			action.AddEffects = add
			action.DelEffects = del
		default:
			return parseErrf(ctx.File, section, key.Line, "unknown action keyword %s", key.Atom)
		}
	}

	ctx.Domain.Actions = append(ctx.Domain.Actions, action)
	return nil
}

// validateDomain runs the checks that need the whole domain: type
// references, the subtype cycle check, predicate references, and
// variable scoping. Deferred so that section order in the file does
// not matter.
func validateDomain(ctx *DomainContext) error {
	d := ctx.Domain
	if err := d.Types.CheckAcyclic(); err != nil {
		return parseErrf(ctx.File, ":types", 0, "%v", err)
	}

	typeDeclared := func(typ string) bool {
		if typ == pddl.UniversalType {
			return true
		}
		_, ok := ctx.DeclaredTypes[typ]
		return ok
	}

	for _, p := range d.Predicates {
		for _, arg := range p.Params {
			if !typeDeclared(arg.Type) {
				return parseErrf(ctx.File, ":predicates", 0, "predicate %s: type %s not declared", p.Name, arg.Type)
			}
		}
	}
	for _, c := range ctx.Constants {
		if !typeDeclared(c.Type) {
			return parseErrf(ctx.File, ":constants", 0, "constant %s: type %s not declared", c.Name, c.Type)
		}
	}

	for _, a := range d.Actions {
		section := ":action " + a.Name
		params := make(map[string]struct{}, len(a.Parameters))
		for _, p := range a.Parameters {
			if !typeDeclared(p.Type) {
				return parseErrf(ctx.File, section, 0, "parameter %s: type %s not declared", p.Name, p.Type)
			}
			params[p.Name] = struct{}{}
		}
		for _, group := range [][]pddl.Literal{a.PositivePreconditions, a.NegativePreconditions} {
			for _, l := range group {
				if err := checkLiteral(ctx, section, l, params, true); err != nil {
					return err
				}
			}
		}
		for _, group := range [][]pddl.Literal{a.AddEffects, a.DelEffects} {
			for _, l := range group {
				if err := checkLiteral(ctx, section, l, params, false); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// checkLiteral validates one action literal: known predicate, matching
// arity, and variables bound by the parameter list. Equality is a
// built-in of arity 2 permitted only in preconditions.
func checkLiteral(ctx *DomainContext, section string, l pddl.Literal, params map[string]struct{}, precondition bool) error {
	if l.Predicate == pddl.EqualityPredicate {
		if !precondition {
			return parseErrf(ctx.File, section, 0, "equality cannot appear in effects")
		}
		if len(l.Terms) != 2 {
			return parseErrf(ctx.File, section, 0, "%s expects 2 terms, got %d", l, len(l.Terms))
		}
	} else {
		decl, ok := ctx.Domain.Predicate(l.Predicate)
		if !ok {
			return parseErrf(ctx.File, section, 0, "predicate %s not declared", l.Predicate)
		}
		if len(l.Terms) != decl.Arity() {
			return parseErrf(ctx.File, section, 0, "predicate %s expects %d terms, got %d", l.Predicate, decl.Arity(), len(l.Terms))
		}
	}
	for _, t := range l.Terms {
		if pddl.IsVariable(t) {
			if _, ok := params[t]; !ok {
				return parseErrf(ctx.File, section, 0, "variable %s is not a parameter", t)
			}
		}
	}
	return nil
}

func nodeLine(group []*sexpr.Node) int {
	if len(group) > 0 {
		return group[0].Line
	}
	return 0
}
