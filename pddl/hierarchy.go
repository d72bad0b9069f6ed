package pddl

import "fmt"

// UniversalType is the implicit root type every object belongs to.
const UniversalType = "object"

// Hierarchy is the type hierarchy: a directed graph of subtype
// declarations plus the objects declared under each type. Member
// lookups are transitively closed, so an object declared under a
// subtype belongs to all of its ancestor types.
//
// Declaration order is preserved everywhere so that grounding and
// search stay deterministic.
type Hierarchy struct {
	subtypes map[string][]string // supertype -> declared subtypes
	members  map[string][]string // type -> directly declared objects
	types    []string            // every type name, in first-seen order
	seen     map[string]struct{}
}

// NewHierarchy creates an empty hierarchy containing only the
// universal type.
func NewHierarchy() *Hierarchy {
	h := &Hierarchy{
		subtypes: make(map[string][]string),
		members:  make(map[string][]string),
		seen:     make(map[string]struct{}),
	}
	h.noteType(UniversalType)
	return h
}

// noteType records a type name the first time it appears, preserving
// first-seen order for Types, AllObjects, and CheckAcyclic.
func (h *Hierarchy) noteType(t string) {
	if _, ok := h.seen[t]; ok {
		return
	}
	h.seen[t] = struct{}{}
	h.types = append(h.types, t)
}

// Clone returns a deep copy. Problems clone the domain hierarchy before
// merging their object declarations so the domain stays immutable.
func (h *Hierarchy) Clone() *Hierarchy {
	c := NewHierarchy()
	for _, t := range h.types {
		c.noteType(t)
	}
	for t, subs := range h.subtypes {
		c.subtypes[t] = append([]string(nil), subs...)
	}
	for t, objs := range h.members {
		c.members[t] = append([]string(nil), objs...)
	}
	return c
}

// DeclareSubtype records sub as a subtype of super.
func (h *Hierarchy) DeclareSubtype(sub, super string) {
	h.noteType(sub)
	h.noteType(super)
	h.subtypes[super] = append(h.subtypes[super], sub)
}

// AddObject declares an object under the given type. An empty type
// means the universal type.
func (h *Hierarchy) AddObject(obj, typ string) {
	if typ == "" {
		typ = UniversalType
	}
	h.noteType(typ)
	for _, existing := range h.members[typ] {
		if existing == obj {
			return
		}
	}
	h.members[typ] = append(h.members[typ], obj)
}

// HasType reports whether the type has been declared, either as a
// subtype, a supertype, or via an object declaration.
func (h *Hierarchy) HasType(typ string) bool {
	_, ok := h.seen[typ]
	return ok
}

// Types returns every declared type in first-seen order.
func (h *Hierarchy) Types() []string {
	return append([]string(nil), h.types...)
}

// Objects returns the member set of a type, transitively closed over
// its subtypes, in declaration order without duplicates.
func (h *Hierarchy) Objects(typ string) []string {
	var out []string
	seen := make(map[string]struct{})
	stack := []string{typ}
	visited := make(map[string]struct{})
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[t]; ok {
			continue
		}
		visited[t] = struct{}{}
		for _, obj := range h.members[t] {
			if _, ok := seen[obj]; !ok {
				seen[obj] = struct{}{}
				out = append(out, obj)
			}
		}
		// Push subtypes in reverse so declaration order is preserved.
		subs := h.subtypes[t]
		for i := len(subs) - 1; i >= 0; i-- {
			stack = append(stack, subs[i])
		}
	}
	return out
}

// AllObjects returns every declared object. Everything belongs to the
// universal type, but objects may also be declared under types never
// linked to it, so all member lists are walked.
func (h *Hierarchy) AllObjects() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, t := range h.types {
		for _, obj := range h.members[t] {
			if _, ok := seen[obj]; !ok {
				seen[obj] = struct{}{}
				out = append(out, obj)
			}
		}
	}
	return out
}

// CheckAcyclic verifies the subtype graph has no cycles. Performed once
// at hierarchy construction; a cycle would make member resolution
// undefined.
func (h *Hierarchy) CheckAcyclic() error {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int, len(h.types))
	var visit func(t string) error
	visit = func(t string) error {
		switch state[t] {
		case inStack:
			return fmt.Errorf("type %q is its own ancestor", t)
		case done:
			return nil
		}
		state[t] = inStack
		for _, sub := range h.subtypes[t] {
			if err := visit(sub); err != nil {
				return err
			}
		}
		state[t] = done
		return nil
	}
	for _, t := range h.types {
		if err := visit(t); err != nil {
			return err
		}
	}
	return nil
}
