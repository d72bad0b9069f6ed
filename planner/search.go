package planner

import (
	"context"

	"github.com/c360studio/stripsolve/pddl"
)

// cancelCheckInterval is how many expansions pass between context
// checks during search.
const cancelCheckInterval = 1024

// Result is the outcome of a solve. Unsolvable is a first-class
// outcome, not an error: Solvable is false and Plan is nil when the
// frontier was exhausted without reaching the goal.
type Result struct {
	// Solvable reports whether a plan exists.
	Solvable bool

	// Plan is the shortest sequence of ground actions transforming the
	// initial state into a goal state. Empty (non-nil) when the
	// initial state already satisfies the goal.
	Plan []*pddl.Action

	// StatesExpanded counts the states popped from the frontier.
	StatesExpanded int

	// StatesVisited counts the distinct states discovered.
	StatesVisited int
}

// node is one entry in the search arena: a reached state, the ground
// action that produced it, and the arena index of its predecessor.
// Back-links are walked to reconstruct the winning plan.
type node struct {
	state  pddl.State
	action *pddl.Action
	parent int
}

// Search runs breadth-first search over the implicit state graph
// induced by the ground actions. Because every action has unit cost
// and states are expanded in strictly non-decreasing path length, the
// first goal state found yields a minimum-length plan. The reachable
// state space is finite, so the search always terminates.
//
// The context is polled periodically; cancellation aborts the search
// with ctx.Err(), distinct from an unsolvable result.
func Search(ctx context.Context, ground []*pddl.Action, init pddl.State, goalPos, goalNeg []pddl.Literal) (*Result, error) {
	satisfied := func(s pddl.State) bool {
		return s.ContainsAll(goalPos) && s.DisjointFrom(goalNeg)
	}

	if satisfied(init) {
		return &Result{Solvable: true, Plan: []*pddl.Action{}, StatesVisited: 1}, nil
	}

	arena := []node{{state: init, parent: -1}}
	visited := map[string]struct{}{init.Key(): {}}
	frontier := []int{0}
	expanded := 0

	for len(frontier) > 0 {
		if expanded%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		idx := frontier[0]
		frontier = frontier[1:]
		current := arena[idx]
		expanded++

		for _, act := range ground {
			if !act.Applicable(current.state) {
				continue
			}
			next := act.Apply(current.state)
			key := next.Key()
			if _, seen := visited[key]; seen {
				continue
			}
			visited[key] = struct{}{}
			arena = append(arena, node{state: next, action: act, parent: idx})
			if satisfied(next) {
				return &Result{
					Solvable:       true,
					Plan:           extractPlan(arena, len(arena)-1),
					StatesExpanded: expanded,
					StatesVisited:  len(visited),
				}, nil
			}
			frontier = append(frontier, len(arena)-1)
		}
	}

	return &Result{Solvable: false, StatesExpanded: expanded, StatesVisited: len(visited)}, nil
}

// extractPlan walks parent links from the goal node back to the root
// and reverses the action sequence.
func extractPlan(arena []node, idx int) []*pddl.Action {
	var reversed []*pddl.Action
	for idx > 0 {
		reversed = append(reversed, arena[idx].action)
		idx = arena[idx].parent
	}
	plan := make([]*pddl.Action, len(reversed))
	for i, a := range reversed {
		plan[len(reversed)-1-i] = a
	}
	return plan
}
