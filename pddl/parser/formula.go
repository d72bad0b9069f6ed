package parser

import (
	"github.com/c360studio/stripsolve/pddl"
	"github.com/c360studio/stripsolve/pddl/sexpr"
)

// typedList parses the flat "name ... - type name ... - type" PDDL
// convention. Names without a trailing type marker get the universal
// type.
func typedList(file, section string, group []*sexpr.Node) ([]pddl.TypedName, error) {
	var out []pddl.TypedName
	var pending []string
	i := 0
	for i < len(group) {
		n := group[i]
		if !n.IsAtom() {
			return nil, parseErrf(file, section, n.Line, "expected a name, got %s", n.String())
		}
		if n.Atom == "-" {
			if len(pending) == 0 {
				return nil, parseErrf(file, section, n.Line, "unexpected hyphen")
			}
			if i+1 >= len(group) || !group[i+1].IsAtom() {
				return nil, parseErrf(file, section, n.Line, "hyphen without a type name")
			}
			typ := group[i+1].Atom
			for _, name := range pending {
				out = append(out, pddl.TypedName{Name: name, Type: typ})
			}
			pending = pending[:0]
			i += 2
			continue
		}
		pending = append(pending, n.Atom)
		i++
	}
	for _, name := range pending {
		out = append(out, pddl.TypedName{Name: name, Type: pddl.UniversalType})
	}
	return out, nil
}

// splitFormula normalizes a precondition, effect, or goal formula into
// positive and negative literal sets. The formula is a single literal
// or an (and ...) of literals, each optionally wrapped in (not ...);
// the wrapper is stripped and the inner literal routed to the negative
// set.
func splitFormula(file, section string, node *sexpr.Node) (pos, neg []pddl.Literal, err error) {
	if node.IsAtom() {
		return nil, nil, parseErrf(file, section, node.Line, "expected a formula, got %s", node.Atom)
	}
	literals := []*sexpr.Node{node}
	if len(node.List) > 0 && node.List[0].IsAtom() && node.List[0].Atom == "and" {
		literals = node.List[1:]
	} else if len(node.List) == 0 {
		// () is the empty conjunction.
		return nil, nil, nil
	}

	for _, ln := range literals {
		if ln.IsAtom() || len(ln.List) == 0 {
			return nil, nil, parseErrf(file, section, ln.Line, "expected a literal, got %s", ln.String())
		}
		if ln.List[0].IsAtom() && ln.List[0].Atom == "not" {
			if len(ln.List) != 2 {
				return nil, nil, parseErrf(file, section, ln.Line, "not expects exactly one literal")
			}
			l, lerr := literalFromNode(file, section, ln.List[1])
			if lerr != nil {
				return nil, nil, lerr
			}
			neg = append(neg, l)
			continue
		}
		l, lerr := literalFromNode(file, section, ln)
		if lerr != nil {
			return nil, nil, lerr
		}
		pos = append(pos, l)
	}
	return pos, neg, nil
}

// literalFromNode reads a flat (predicate term ...) list.
func literalFromNode(file, section string, node *sexpr.Node) (pddl.Literal, error) {
	if node.IsAtom() || len(node.List) == 0 || !node.List[0].IsAtom() {
		return pddl.Literal{}, parseErrf(file, section, node.Line, "expected (predicate term ...), got %s", node.String())
	}
	terms := make([]string, 0, len(node.List)-1)
	for _, t := range node.List[1:] {
		if !t.IsAtom() {
			return pddl.Literal{}, parseErrf(file, section, t.Line, "expected a term, got %s", t.String())
		}
		terms = append(terms, t.Atom)
	}
	return pddl.NewLiteral(node.List[0].Atom, terms...), nil
}
