package pddl

// Domain is a parsed PDDL planning domain: its type hierarchy (with
// any :constants already merged), predicate signatures, and action
// schemas. Immutable once parsing completes.
type Domain struct {
	Name         string
	Requirements []string
	Types        *Hierarchy
	Predicates   []Predicate
	Actions      []*Action
}

// Predicate looks up a declared predicate signature by name.
func (d *Domain) Predicate(name string) (Predicate, bool) {
	for _, p := range d.Predicates {
		if p.Name == name {
			return p, true
		}
	}
	return Predicate{}, false
}

// Action looks up an action schema by name.
func (d *Domain) Action(name string) (*Action, bool) {
	for _, a := range d.Actions {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// HasRequirement reports whether the domain declared the requirement.
func (d *Domain) HasRequirement(req string) bool {
	for _, r := range d.Requirements {
		if r == req {
			return true
		}
	}
	return false
}

// Problem is a parsed PDDL problem instance. Objects holds the domain
// hierarchy with the problem's :objects merged in; the Domain value
// itself is never mutated.
type Problem struct {
	Name       string
	DomainName string
	Objects    *Hierarchy
	Init       State

	PositiveGoals []Literal
	NegativeGoals []Literal
}

// GoalSatisfied reports whether the state meets the goal: every
// positive goal atom holds and no negative goal atom does.
func (p *Problem) GoalSatisfied(s State) bool {
	return s.ContainsAll(p.PositiveGoals) && s.DisjointFrom(p.NegativeGoals)
}
