package pddl

import "strings"

// TypedName is a name paired with a type: an action parameter, a
// predicate argument, or an object declaration. Type defaults to the
// universal type when the source omits it.
type TypedName struct {
	Name string
	Type string
}

func (t TypedName) String() string {
	if t.Type == "" || t.Type == UniversalType {
		return t.Name
	}
	return t.Name + " - " + t.Type
}

// Predicate is a declared predicate signature: a name plus its ordered,
// typed argument list.
type Predicate struct {
	Name   string
	Params []TypedName
}

// Arity returns the declared argument count.
func (p Predicate) Arity() int { return len(p.Params) }

func (p Predicate) String() string {
	if len(p.Params) == 0 {
		return "(" + p.Name + ")"
	}
	parts := make([]string, len(p.Params))
	for i, a := range p.Params {
		parts[i] = a.String()
	}
	return "(" + p.Name + " " + strings.Join(parts, " ") + ")"
}
