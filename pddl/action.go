package pddl

import "strings"

// Action is an action schema or, once every parameter is bound to an
// object, a ground action. Schemas are owned by their Domain; ground
// actions are produced by the grounder and reused across a whole
// search.
type Action struct {
	Name string

	// Parameters is the ordered typed parameter list. Empty for
	// parameterless schemas.
	Parameters []TypedName

	// Args holds the objects bound to the parameters, in parameter
	// order. Nil for schemas.
	Args []string

	PositivePreconditions []Literal
	NegativePreconditions []Literal
	AddEffects            []Literal
	DelEffects            []Literal
}

// IsGround reports whether the action has been instantiated.
func (a *Action) IsGround() bool {
	return len(a.Parameters) == 0 || len(a.Args) == len(a.Parameters)
}

// Signature renders the action name decorated with its bound objects,
// e.g. "stack(a, b)". Schemas render with their variable names.
func (a *Action) Signature() string {
	if len(a.Parameters) == 0 {
		return a.Name
	}
	terms := a.Args
	if terms == nil {
		terms = make([]string, len(a.Parameters))
		for i, p := range a.Parameters {
			terms[i] = p.Name
		}
	}
	return a.Name + "(" + strings.Join(terms, ", ") + ")"
}

// Equal reports whether two ground actions are the same instantiation:
// equal signature and equal precondition and effect sets.
func (a *Action) Equal(b *Action) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Signature() == b.Signature() &&
		LiteralsEqual(a.PositivePreconditions, b.PositivePreconditions) &&
		LiteralsEqual(a.NegativePreconditions, b.NegativePreconditions) &&
		LiteralsEqual(a.AddEffects, b.AddEffects) &&
		LiteralsEqual(a.DelEffects, b.DelEffects)
}

// Applicable reports whether the ground action can fire in the state:
// positive preconditions all hold and negative ones all fail.
func (a *Action) Applicable(s State) bool {
	return s.ContainsAll(a.PositivePreconditions) && s.DisjointFrom(a.NegativePreconditions)
}

// Apply returns the successor state of firing the action. Callers must
// check Applicable first; Apply itself only performs the set update.
func (a *Action) Apply(s State) State {
	return s.Apply(a.AddEffects, a.DelEffects)
}

func (a *Action) String() string { return a.Signature() }
