package planner

import (
	"context"

	"github.com/c360studio/stripsolve/pddl"
)

// Solve grounds the domain's action schemas against the problem and
// searches for a shortest plan. See Search for the result contract.
func Solve(ctx context.Context, d *pddl.Domain, pr *pddl.Problem) (*Result, error) {
	ground := GroundAll(d, pr)
	return Search(ctx, ground, pr.Init, pr.PositiveGoals, pr.NegativeGoals)
}

// Validate replays a plan against the problem's initial state and
// reports the final state. It fails if any step is inapplicable or if
// the final state does not satisfy the goal. Used by callers that want
// to double-check a plan before acting on it.
func Validate(pr *pddl.Problem, plan []*pddl.Action) (pddl.State, error) {
	state := pr.Init
	for _, act := range plan {
		if !act.Applicable(state) {
			return state, &PlanError{Step: act.Signature(), Msg: "not applicable"}
		}
		state = act.Apply(state)
	}
	if !pr.GoalSatisfied(state) {
		return state, &PlanError{Msg: "final state does not satisfy the goal"}
	}
	return state, nil
}

// PlanError reports a plan that does not execute against its problem.
type PlanError struct {
	Step string
	Msg  string
}

func (e *PlanError) Error() string {
	if e.Step != "" {
		return "plan step " + e.Step + ": " + e.Msg
	}
	return "plan: " + e.Msg
}
