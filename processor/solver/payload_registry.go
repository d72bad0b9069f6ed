package solver

import "github.com/c360studio/semstreams/component"

func init() {
	if err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "planning",
		Category:    "solve-request",
		Version:     "v1",
		Description: "STRIPS solve request carrying PDDL domain and problem text",
		Factory:     func() any { return &Request{} },
	}); err != nil {
		panic("failed to register solve request payload: " + err.Error())
	}
	if err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "planning",
		Category:    "solve-result",
		Version:     "v1",
		Description: "STRIPS solve result with plan and search statistics",
		Factory:     func() any { return &Result{} },
	}); err != nil {
		panic("failed to register solve result payload: " + err.Error())
	}
}
