package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/stripsolve/pddl"
)

// moveSchema is the classic move action: an agent moves between
// positions.
func moveSchema() *pddl.Action {
	return &pddl.Action{
		Name: "move",
		Parameters: []pddl.TypedName{
			{Name: "?ag", Type: "agent"},
			{Name: "?from", Type: "pos"},
			{Name: "?to", Type: "pos"},
		},
		PositivePreconditions: []pddl.Literal{
			pddl.NewLiteral("at", "?ag", "?from"),
			pddl.NewLiteral("adjacent", "?from", "?to"),
		},
		AddEffects: []pddl.Literal{pddl.NewLiteral("at", "?ag", "?to")},
		DelEffects: []pddl.Literal{pddl.NewLiteral("at", "?ag", "?from")},
	}
}

func moveHierarchy() *pddl.Hierarchy {
	h := pddl.NewHierarchy()
	h.DeclareSubtype("agent", pddl.UniversalType)
	h.DeclareSubtype("pos", pddl.UniversalType)
	h.AddObject("ana", "agent")
	h.AddObject("bob", "agent")
	h.AddObject("p1", "pos")
	h.AddObject("p2", "pos")
	return h
}

func signatures(actions []*pddl.Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Signature()
	}
	return out
}

func TestGroundify_CartesianProduct(t *testing.T) {
	ground := Groundify(moveSchema(), moveHierarchy())
	assert.Equal(t, []string{
		"move(ana, p1, p1)",
		"move(ana, p1, p2)",
		"move(ana, p2, p1)",
		"move(ana, p2, p2)",
		"move(bob, p1, p1)",
		"move(bob, p1, p2)",
		"move(bob, p2, p1)",
		"move(bob, p2, p2)",
	}, signatures(ground))

	// Substitution reaches every literal term.
	bound := ground[1]
	assert.True(t, pddl.LiteralsEqual(bound.PositivePreconditions, []pddl.Literal{
		pddl.NewLiteral("at", "ana", "p1"),
		pddl.NewLiteral("adjacent", "p1", "p2"),
	}))
	assert.Equal(t, []pddl.Literal{pddl.NewLiteral("at", "ana", "p2")}, bound.AddEffects)
	assert.Equal(t, []pddl.Literal{pddl.NewLiteral("at", "ana", "p1")}, bound.DelEffects)
}

func TestGroundify_NoDuplicates(t *testing.T) {
	ground := Groundify(moveSchema(), moveHierarchy())
	seen := make(map[string]struct{})
	for _, sig := range signatures(ground) {
		_, dup := seen[sig]
		require.False(t, dup, "duplicate ground action %s", sig)
		seen[sig] = struct{}{}
	}
}

func TestGroundify_InequalityConstraint(t *testing.T) {
	schema := moveSchema()
	schema.NegativePreconditions = append(schema.NegativePreconditions,
		pddl.NewLiteral(pddl.EqualityPredicate, "?from", "?to"))

	ground := Groundify(schema, moveHierarchy())
	assert.Equal(t, []string{
		"move(ana, p1, p2)",
		"move(ana, p2, p1)",
		"move(bob, p1, p2)",
		"move(bob, p2, p1)",
	}, signatures(ground))

	// The resolved constraint never survives as a runtime precondition.
	for _, g := range ground {
		for _, l := range g.NegativePreconditions {
			assert.NotEqual(t, pddl.EqualityPredicate, l.Predicate)
		}
	}
}

func TestGroundify_PositiveEqualityConstraint(t *testing.T) {
	schema := moveSchema()
	schema.PositivePreconditions = append(schema.PositivePreconditions,
		pddl.NewLiteral(pddl.EqualityPredicate, "?from", "?to"))

	ground := Groundify(schema, moveHierarchy())
	assert.Equal(t, []string{
		"move(ana, p1, p1)",
		"move(ana, p2, p2)",
		"move(bob, p1, p1)",
		"move(bob, p2, p2)",
	}, signatures(ground))
	for _, g := range ground {
		for _, l := range g.PositivePreconditions {
			assert.NotEqual(t, pddl.EqualityPredicate, l.Predicate)
		}
	}
}

func TestGroundify_SubtypeMembersIncluded(t *testing.T) {
	h := pddl.NewHierarchy()
	h.DeclareSubtype("vehicle", pddl.UniversalType)
	h.DeclareSubtype("truck", "vehicle")
	h.AddObject("t1", "truck")
	h.AddObject("v1", "vehicle")

	schema := &pddl.Action{
		Name:       "park",
		Parameters: []pddl.TypedName{{Name: "?v", Type: "vehicle"}},
		AddEffects: []pddl.Literal{pddl.NewLiteral("parked", "?v")},
	}
	ground := Groundify(schema, h)
	assert.Equal(t, []string{"park(v1)", "park(t1)"}, signatures(ground))
}

func TestGroundify_EmptyTypeYieldsNothing(t *testing.T) {
	h := pddl.NewHierarchy()
	h.DeclareSubtype("ghost", pddl.UniversalType)
	schema := &pddl.Action{
		Name:       "haunt",
		Parameters: []pddl.TypedName{{Name: "?g", Type: "ghost"}},
	}
	assert.Empty(t, Groundify(schema, h))
}

func TestGroundify_ParameterlessEqualityResolved(t *testing.T) {
	schema := &pddl.Action{
		Name: "noop-check",
		PositivePreconditions: []pddl.Literal{
			pddl.NewLiteral(pddl.EqualityPredicate, "a", "a"),
		},
		AddEffects: []pddl.Literal{pddl.NewLiteral("checked")},
	}
	ground := Groundify(schema, pddl.NewHierarchy())
	require.Len(t, ground, 1)
	assert.Empty(t, ground[0].PositivePreconditions)
	assert.True(t, ground[0].Applicable(pddl.NewState()))

	// An identically-false equality removes the action entirely.
	schema.PositivePreconditions = []pddl.Literal{
		pddl.NewLiteral(pddl.EqualityPredicate, "a", "b"),
	}
	assert.Empty(t, Groundify(schema, pddl.NewHierarchy()))
}

func TestGroundify_ParameterlessSchema(t *testing.T) {
	schema := &pddl.Action{
		Name:                  "cook",
		PositivePreconditions: []pddl.Literal{pddl.NewLiteral("clean")},
		AddEffects:            []pddl.Literal{pddl.NewLiteral("dinner")},
	}
	ground := Groundify(schema, pddl.NewHierarchy())
	require.Len(t, ground, 1)
	assert.Equal(t, "cook", ground[0].Signature())
	assert.True(t, ground[0].Equal(schema))
}
