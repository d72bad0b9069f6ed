package solver

import (
	"encoding/json"
	"fmt"

	"github.com/c360studio/semstreams/message"
)

// SolveRequestType is the message type for solve requests.
var SolveRequestType = message.Type{Domain: "planning", Category: "solve-request", Version: "v1"}

// SolveResultType is the message type for solve results.
var SolveResultType = message.Type{Domain: "planning", Category: "solve-result", Version: "v1"}

// Request is a solve request payload carrying PDDL source text.
type Request struct {
	// RequestID correlates the result with the request. Assigned by
	// the solver if the requester leaves it empty.
	RequestID string `json:"request_id,omitempty"`

	// Domain is the PDDL domain definition.
	Domain string `json:"domain"`

	// Problem is the PDDL problem definition.
	Problem string `json:"problem"`
}

// Schema implements message.Payload.
func (r *Request) Schema() message.Type {
	return SolveRequestType
}

// Validate implements message.Payload.
func (r *Request) Validate() error {
	if r.Domain == "" {
		return fmt.Errorf("domain is required")
	}
	if r.Problem == "" {
		return fmt.Errorf("problem is required")
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r *Request) MarshalJSON() ([]byte, error) {
	type Alias Request
	return json.Marshal((*Alias)(r))
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Request) UnmarshalJSON(data []byte) error {
	type Alias Request
	return json.Unmarshal(data, (*Alias)(r))
}

// Result is the outcome of a solve request.
type Result struct {
	RequestID string `json:"request_id"`

	// Status is "completed", "failed", or "timeout".
	Status string `json:"status"`

	// Solvable reports whether a plan exists. Only meaningful when
	// Status is "completed".
	Solvable bool `json:"solvable"`

	// Plan holds the ground action signatures in execution order.
	Plan []string `json:"plan,omitempty"`

	StatesExpanded int `json:"states_expanded"`
	StatesVisited  int `json:"states_visited"`

	// ElapsedMS is the solve wall time in milliseconds.
	ElapsedMS int64 `json:"elapsed_ms"`

	// Error describes the failure when Status is not "completed".
	Error string `json:"error,omitempty"`
}

// Schema implements message.Payload.
func (r *Result) Schema() message.Type {
	return SolveResultType
}

// Validate implements message.Payload.
func (r *Result) Validate() error {
	if r.RequestID == "" {
		return fmt.Errorf("request_id is required")
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r *Result) MarshalJSON() ([]byte, error) {
	type Alias Result
	return json.Marshal((*Alias)(r))
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result) UnmarshalJSON(data []byte) error {
	type Alias Result
	return json.Unmarshal(data, (*Alias)(r))
}
