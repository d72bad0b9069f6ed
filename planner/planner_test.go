package planner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/stripsolve/pddl"
	"github.com/c360studio/stripsolve/pddl/parser"
)

func loadScenario(t *testing.T, domainFile, problemFile string) (*pddl.Domain, *pddl.Problem) {
	t.Helper()
	p := parser.New()

	dPath := filepath.Join("testdata", domainFile)
	dText, err := os.ReadFile(dPath)
	require.NoError(t, err)
	d, err := p.ParseDomain(dPath, string(dText))
	require.NoError(t, err)

	prPath := filepath.Join("testdata", problemFile)
	prText, err := os.ReadFile(prPath)
	require.NoError(t, err)
	pr, err := p.ParseProblem(d, prPath, string(prText))
	require.NoError(t, err)
	return d, pr
}

func planSignatures(plan []*pddl.Action) []string {
	out := make([]string, len(plan))
	for i, a := range plan {
		out[i] = a.Signature()
	}
	return out
}

func TestSolve_Dinner(t *testing.T) {
	d, pr := loadScenario(t, "dinner.pddl", "dinner_pb1.pddl")

	res, err := Solve(context.Background(), d, pr)
	require.NoError(t, err)
	require.True(t, res.Solvable)
	assert.Equal(t, []string{"cook", "wrap", "carry"}, planSignatures(res.Plan))
	assert.Greater(t, res.StatesExpanded, 0)

	final, err := Validate(pr, res.Plan)
	require.NoError(t, err)
	assert.True(t, pr.GoalSatisfied(final))
}

func TestSolve_Blocksworld(t *testing.T) {
	d, pr := loadScenario(t, "blocksworld.pddl", "blocksworld_pb1.pddl")

	res, err := Solve(context.Background(), d, pr)
	require.NoError(t, err)
	require.True(t, res.Solvable)
	assert.Equal(t, []string{"pickup(a)", "stack(a, b)"}, planSignatures(res.Plan))

	final, err := Validate(pr, res.Plan)
	require.NoError(t, err)
	assert.True(t, final.Contains(pddl.NewLiteral("on", "a", "b")))
	assert.True(t, final.Contains(pddl.NewLiteral("clear", "a")))
	assert.False(t, final.Contains(pddl.NewLiteral("clear", "b")))
	assert.False(t, final.Contains(pddl.NewLiteral("holding", "a")))
}

func TestSolve_GoalAlreadySatisfied(t *testing.T) {
	d, pr := loadScenario(t, "dinner.pddl", "dinner_pb1.pddl")
	pr.PositiveGoals = []pddl.Literal{pddl.NewLiteral("clean")}
	pr.NegativeGoals = nil

	res, err := Solve(context.Background(), d, pr)
	require.NoError(t, err)
	require.True(t, res.Solvable)
	assert.NotNil(t, res.Plan)
	assert.Empty(t, res.Plan)
}

func TestSolve_Unsolvable(t *testing.T) {
	d, pr := loadScenario(t, "dinner.pddl", "dinner_pb1.pddl")
	// Both garbage removals consume the only garbage, so at most one of
	// clean and quiet can ever be deleted.
	pr.PositiveGoals = nil
	pr.NegativeGoals = []pddl.Literal{
		pddl.NewLiteral("clean"),
		pddl.NewLiteral("quiet"),
	}

	res, err := Solve(context.Background(), d, pr)
	require.NoError(t, err)
	assert.False(t, res.Solvable)
	assert.Nil(t, res.Plan)
	assert.Greater(t, res.StatesVisited, 0)
}

func TestSolve_ShortestPlan(t *testing.T) {
	// carry and dolly both remove the garbage; breadth-first search must
	// not pay for the quiet-preserving detour when a one-step removal
	// exists either way.
	d, pr := loadScenario(t, "dinner.pddl", "dinner_pb1.pddl")
	pr.PositiveGoals = nil
	pr.NegativeGoals = []pddl.Literal{pddl.NewLiteral("garbage")}

	res, err := Solve(context.Background(), d, pr)
	require.NoError(t, err)
	require.True(t, res.Solvable)
	assert.Len(t, res.Plan, 1)
}

func TestSolve_Cancellation(t *testing.T) {
	d, pr := loadScenario(t, "blocksworld.pddl", "blocksworld_pb1.pddl")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Solve(ctx, d, pr)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearch_EffectInvariants(t *testing.T) {
	d, pr := loadScenario(t, "blocksworld.pddl", "blocksworld_pb1.pddl")

	state := pr.Init
	for _, g := range GroundAll(d, pr) {
		if !g.Applicable(state) {
			continue
		}
		next := g.Apply(state)
		assert.True(t, next.ContainsAll(g.AddEffects), "%s: add effects must hold", g)
		assert.True(t, next.DisjointFrom(g.DelEffects), "%s: delete effects must be gone", g)
		// The predecessor is untouched.
		assert.True(t, state.Contains(pddl.NewLiteral("handempty")))
	}
}

func TestValidate_RejectsInapplicableStep(t *testing.T) {
	d, pr := loadScenario(t, "blocksworld.pddl", "blocksworld_pb1.pddl")

	var stack *pddl.Action
	for _, g := range GroundAll(d, pr) {
		if g.Signature() == "stack(a, b)" {
			stack = g
			break
		}
	}
	require.NotNil(t, stack)

	// stack(a, b) needs holding(a), which the initial state lacks.
	_, err := Validate(pr, []*pddl.Action{stack})
	var perr *PlanError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "stack(a, b)", perr.Step)
}
