package pddl

import (
	"sort"
	"strings"
)

// State is a set of ground positive atoms under the closed-world
// assumption: any atom not present is false. Negative atoms are never
// stored.
type State struct {
	atoms map[string]Literal
}

// NewState builds a state from ground atoms. Duplicates collapse.
func NewState(atoms ...Literal) State {
	s := State{atoms: make(map[string]Literal, len(atoms))}
	for _, a := range atoms {
		s.atoms[a.Key()] = a
	}
	return s
}

// Len returns the number of atoms in the state.
func (s State) Len() int { return len(s.atoms) }

// Contains reports whether the atom holds in the state.
func (s State) Contains(a Literal) bool {
	_, ok := s.atoms[a.Key()]
	return ok
}

// ContainsAll reports whether every atom holds in the state.
func (s State) ContainsAll(atoms []Literal) bool {
	for _, a := range atoms {
		if !s.Contains(a) {
			return false
		}
	}
	return true
}

// DisjointFrom reports whether none of the atoms hold in the state.
func (s State) DisjointFrom(atoms []Literal) bool {
	for _, a := range atoms {
		if s.Contains(a) {
			return false
		}
	}
	return true
}

// Apply returns the successor state (s - del) ∪ add. The receiver is
// not modified.
func (s State) Apply(add, del []Literal) State {
	next := State{atoms: make(map[string]Literal, len(s.atoms)+len(add))}
	deleted := make(map[string]struct{}, len(del))
	for _, a := range del {
		deleted[a.Key()] = struct{}{}
	}
	for k, a := range s.atoms {
		if _, ok := deleted[k]; !ok {
			next.atoms[k] = a
		}
	}
	for _, a := range add {
		next.atoms[a.Key()] = a
	}
	return next
}

// Atoms returns the atoms in canonical (sorted) order.
func (s State) Atoms() []Literal {
	keys := make([]string, 0, len(s.atoms))
	for k := range s.atoms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Literal, len(keys))
	for i, k := range keys {
		out[i] = s.atoms[k]
	}
	return out
}

// Key returns a canonical representation of the atom set. Two states
// are equal iff their keys are equal, which makes states usable in a
// visited set.
func (s State) Key() string {
	keys := make([]string, 0, len(s.atoms))
	for k := range s.atoms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, "\n")
}

// Equal reports set equality.
func (s State) Equal(o State) bool {
	if len(s.atoms) != len(o.atoms) {
		return false
	}
	for k := range s.atoms {
		if _, ok := o.atoms[k]; !ok {
			return false
		}
	}
	return true
}

func (s State) String() string {
	atoms := s.Atoms()
	parts := make([]string, len(atoms))
	for i, a := range atoms {
		parts[i] = a.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}
