// Package pddl defines the structured data model produced by parsing
// PDDL domain and problem files: literals, predicate signatures, the
// type hierarchy, action schemas, and states.
//
// Values in this package are treated as immutable once parsed. Polarity
// is never represented with a "not" wrapper; negative literals live in
// separate collections on actions, problems, and goals.
package pddl

import (
	"sort"
	"strings"
)

// EqualityPredicate is the built-in equality predicate name. Equality
// literals are parameter-identity constraints, not state predicates,
// and are resolved away during grounding.
const EqualityPredicate = "="

// Literal is a predicate applied to an ordered list of terms. A term is
// either a variable (leading "?") or an object/constant name.
type Literal struct {
	Predicate string
	Terms     []string
}

// NewLiteral builds a literal from a predicate name and terms.
func NewLiteral(predicate string, terms ...string) Literal {
	return Literal{Predicate: predicate, Terms: terms}
}

// IsVariable reports whether a term is a variable.
func IsVariable(term string) bool { return strings.HasPrefix(term, "?") }

// IsGround reports whether every term is an object name.
func (l Literal) IsGround() bool {
	for _, t := range l.Terms {
		if IsVariable(t) {
			return false
		}
	}
	return true
}

// Key returns a canonical representation usable as a set or map key.
func (l Literal) Key() string {
	if len(l.Terms) == 0 {
		return l.Predicate
	}
	return l.Predicate + " " + strings.Join(l.Terms, " ")
}

// String renders the literal in PDDL syntax.
func (l Literal) String() string {
	return "(" + l.Key() + ")"
}

// Equal reports structural equality.
func (l Literal) Equal(o Literal) bool {
	if l.Predicate != o.Predicate || len(l.Terms) != len(o.Terms) {
		return false
	}
	for i, t := range l.Terms {
		if t != o.Terms[i] {
			return false
		}
	}
	return true
}

// Bind returns a copy with every variable term replaced through the
// substitution. Terms without a binding are kept as-is.
func (l Literal) Bind(sub map[string]string) Literal {
	terms := make([]string, len(l.Terms))
	for i, t := range l.Terms {
		if v, ok := sub[t]; ok {
			terms[i] = v
		} else {
			terms[i] = t
		}
	}
	return Literal{Predicate: l.Predicate, Terms: terms}
}

// LiteralsEqual compares two literal collections as sets.
func LiteralsEqual(a, b []Literal) bool {
	if len(a) != len(b) {
		return false
	}
	keys := make(map[string]struct{}, len(a))
	for _, l := range a {
		keys[l.Key()] = struct{}{}
	}
	for _, l := range b {
		if _, ok := keys[l.Key()]; !ok {
			return false
		}
	}
	return true
}

// SortLiterals orders literals by canonical key, in place. Used to keep
// rendered output and test expectations deterministic.
func SortLiterals(ls []Literal) {
	sort.Slice(ls, func(i, j int) bool { return ls[i].Key() < ls[j].Key() })
}
