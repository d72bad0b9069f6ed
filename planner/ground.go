// Package planner grounds action schemas and searches the resulting
// finite state space breadth-first for a shortest plan.
package planner

import "github.com/c360studio/stripsolve/pddl"

// Groundify instantiates one action schema with every well-typed
// parameter substitution. Candidate objects come from the hierarchy's
// transitively-closed member sets; the cartesian product is walked in
// parameter-declaration order with the rightmost parameter varying
// fastest, so output order is deterministic and duplicate-free.
//
// Equality literals are resolved here, never kept as runtime
// preconditions: a substitution violating an equality constraint is
// discarded, and constraints that ground identically true are dropped.
//
// A parameter type with no objects yields zero ground actions; that is
// a valid (empty) result, not an error.
func Groundify(schema *pddl.Action, objects *pddl.Hierarchy) []*pddl.Action {
	if len(schema.Parameters) == 0 {
		// Constant equality preconditions still need resolving.
		g, ok := instantiate(schema, nil, nil)
		if !ok {
			return nil
		}
		return []*pddl.Action{g}
	}

	candidates := make([][]string, len(schema.Parameters))
	for i, p := range schema.Parameters {
		candidates[i] = objects.Objects(p.Type)
		if len(candidates[i]) == 0 {
			return nil
		}
	}

	var out []*pddl.Action
	sub := make(map[string]string, len(schema.Parameters))
	odometer := make([]int, len(schema.Parameters))
	for {
		args := make([]string, len(schema.Parameters))
		for i, p := range schema.Parameters {
			args[i] = candidates[i][odometer[i]]
			sub[p.Name] = args[i]
		}
		if g, ok := instantiate(schema, args, sub); ok {
			out = append(out, g)
		}

		// Advance the odometer, rightmost digit fastest.
		i := len(odometer) - 1
		for i >= 0 {
			odometer[i]++
			if odometer[i] < len(candidates[i]) {
				break
			}
			odometer[i] = 0
			i--
		}
		if i < 0 {
			return out
		}
	}
}

// instantiate binds one substitution, resolving equality literals. The
// second result is false when the substitution violates an equality
// constraint.
func instantiate(schema *pddl.Action, args []string, sub map[string]string) (*pddl.Action, bool) {
	pos, ok := bindPreconditions(schema.PositivePreconditions, sub, true)
	if !ok {
		return nil, false
	}
	neg, ok := bindPreconditions(schema.NegativePreconditions, sub, false)
	if !ok {
		return nil, false
	}
	return &pddl.Action{
		Name:                  schema.Name,
		Parameters:            schema.Parameters,
		Args:                  args,
		PositivePreconditions: pos,
		NegativePreconditions: neg,
		AddEffects:            bindAll(schema.AddEffects, sub),
		DelEffects:            bindAll(schema.DelEffects, sub),
	}, true
}

// bindPreconditions grounds a precondition set. Equality literals are
// evaluated against the substitution: a positive (= a b) requires the
// bound objects to match, a negative one requires them to differ.
// Satisfied constraints are dropped; violated ones reject the whole
// substitution.
func bindPreconditions(literals []pddl.Literal, sub map[string]string, positive bool) ([]pddl.Literal, bool) {
	var out []pddl.Literal
	for _, l := range literals {
		bound := l.Bind(sub)
		if bound.Predicate == pddl.EqualityPredicate {
			equal := bound.Terms[0] == bound.Terms[1]
			if equal != positive {
				return nil, false
			}
			continue
		}
		out = append(out, bound)
	}
	return out, true
}

func bindAll(literals []pddl.Literal, sub map[string]string) []pddl.Literal {
	if literals == nil {
		return nil
	}
	out := make([]pddl.Literal, len(literals))
	for i, l := range literals {
		out[i] = l.Bind(sub)
	}
	return out
}

// GroundAll grounds every schema in the domain against the problem's
// object hierarchy, preserving schema declaration order.
func GroundAll(d *pddl.Domain, pr *pddl.Problem) []*pddl.Action {
	var out []*pddl.Action
	for _, schema := range d.Actions {
		out = append(out, Groundify(schema, pr.Objects)...)
	}
	return out
}
