package solver

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/c360studio/semstreams/component"
)

const dinnerDomain = `
(define (domain dinner)
  (:requirements :strips)
  (:predicates (clean) (dinner) (quiet) (present) (garbage))
  (:action cook
    :precondition (clean)
    :effect (dinner))
  (:action wrap
    :precondition (quiet)
    :effect (present))
  (:action carry
    :precondition (garbage)
    :effect (and (not (garbage)) (not (clean))))
  (:action dolly
    :precondition (garbage)
    :effect (and (not (garbage)) (not (quiet)))))
`

const dinnerProblem = `
(define (problem pb1)
  (:domain dinner)
  (:init (garbage) (clean) (quiet))
  (:goal (and (dinner) (present) (not (garbage)))))
`

func TestNewComponent_ConfigDefaults(t *testing.T) {
	deps := component.Dependencies{
		Logger: slog.Default(),
	}

	comp, err := NewComponent(json.RawMessage(`{}`), deps)
	if err != nil {
		t.Fatalf("NewComponent() error = %v", err)
	}

	c, ok := comp.(*Component)
	if !ok {
		t.Fatal("expected *Component")
	}
	if c.config.StreamName != "PLANNING" {
		t.Errorf("expected default stream PLANNING, got %s", c.config.StreamName)
	}
	if c.config.ConsumerName != "solver" {
		t.Errorf("expected default consumer solver, got %s", c.config.ConsumerName)
	}
	if c.config.GetSolveTimeout() != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", c.config.GetSolveTimeout())
	}
}

func TestNewComponent_InvalidConfig(t *testing.T) {
	deps := component.Dependencies{
		Logger: slog.Default(),
	}

	tests := []struct {
		name      string
		rawConfig json.RawMessage
		wantErr   bool
	}{
		{
			name:      "invalid json",
			rawConfig: json.RawMessage(`{not json`),
			wantErr:   true,
		},
		{
			name:      "invalid timeout",
			rawConfig: json.RawMessage(`{"solve_timeout": "not-a-duration"}`),
			wantErr:   true,
		},
		{
			name:      "valid override",
			rawConfig: json.RawMessage(`{"stream_name": "CUSTOM", "solve_timeout": "5s"}`),
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewComponent(tt.rawConfig, deps)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewComponent() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "default config valid",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing stream",
			modify:  func(c *Config) { c.StreamName = "" },
			wantErr: true,
		},
		{
			name:    "missing consumer",
			modify:  func(c *Config) { c.ConsumerName = "" },
			wantErr: true,
		},
		{
			name:    "missing request subject",
			modify:  func(c *Config) { c.RequestSubject = "" },
			wantErr: true,
		},
		{
			name:    "missing result prefix",
			modify:  func(c *Config) { c.ResultSubjectPrefix = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func newTestComponent(t *testing.T) *Component {
	t.Helper()
	deps := component.Dependencies{
		Logger: slog.Default(),
	}
	comp, err := NewComponent(json.RawMessage(`{}`), deps)
	if err != nil {
		t.Fatalf("NewComponent() error = %v", err)
	}
	return comp.(*Component)
}

func TestSolve_Completed(t *testing.T) {
	c := newTestComponent(t)

	result := c.solve(context.Background(), &Request{
		RequestID: "req-1",
		Domain:    dinnerDomain,
		Problem:   dinnerProblem,
	})

	if result.Status != "completed" {
		t.Fatalf("expected status completed, got %s (%s)", result.Status, result.Error)
	}
	if !result.Solvable {
		t.Fatal("expected solvable result")
	}
	want := []string{"cook", "wrap", "carry"}
	if len(result.Plan) != len(want) {
		t.Fatalf("expected plan %v, got %v", want, result.Plan)
	}
	for i, sig := range want {
		if result.Plan[i] != sig {
			t.Errorf("plan step %d: expected %s, got %s", i, sig, result.Plan[i])
		}
	}
	if result.StatesExpanded <= 0 {
		t.Error("expected positive states expanded")
	}
}

func TestSolve_Unsolvable(t *testing.T) {
	c := newTestComponent(t)

	problem := strings.Replace(dinnerProblem,
		"(:goal (and (dinner) (present) (not (garbage))))",
		"(:goal (and (not (clean)) (not (quiet))))", 1)

	result := c.solve(context.Background(), &Request{
		RequestID: "req-2",
		Domain:    dinnerDomain,
		Problem:   problem,
	})

	if result.Status != "completed" {
		t.Fatalf("expected status completed, got %s (%s)", result.Status, result.Error)
	}
	if result.Solvable {
		t.Error("expected unsolvable result")
	}
	if len(result.Plan) != 0 {
		t.Errorf("expected empty plan, got %v", result.Plan)
	}
}

func TestSolve_ParseFailure(t *testing.T) {
	c := newTestComponent(t)

	result := c.solve(context.Background(), &Request{
		RequestID: "req-3",
		Domain:    "(define (domain broken)",
		Problem:   dinnerProblem,
	})

	if result.Status != "failed" {
		t.Fatalf("expected status failed, got %s", result.Status)
	}
	if result.Error == "" {
		t.Error("expected error message")
	}
}

func TestSolve_TimeoutStatus(t *testing.T) {
	deps := component.Dependencies{
		Logger: slog.Default(),
	}
	comp, err := NewComponent(json.RawMessage(`{"solve_timeout": "1ns"}`), deps)
	if err != nil {
		t.Fatalf("NewComponent() error = %v", err)
	}
	c := comp.(*Component)

	result := c.solve(context.Background(), &Request{
		RequestID: "req-timeout",
		Domain:    dinnerDomain,
		Problem:   dinnerProblem,
	})

	if result.Status != "timeout" {
		t.Fatalf("expected status timeout, got %s (%s)", result.Status, result.Error)
	}
	if result.Error == "" {
		t.Error("expected error message")
	}
}

func TestSolve_MissingFields(t *testing.T) {
	c := newTestComponent(t)

	result := c.solve(context.Background(), &Request{RequestID: "req-4"})
	if result.Status != "failed" {
		t.Fatalf("expected status failed, got %s", result.Status)
	}
}

func TestRequestValidate(t *testing.T) {
	req := &Request{Domain: dinnerDomain, Problem: dinnerProblem}
	if err := req.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	if err := (&Request{Problem: dinnerProblem}).Validate(); err == nil {
		t.Error("expected error for missing domain")
	}
	if err := (&Request{Domain: dinnerDomain}).Validate(); err == nil {
		t.Error("expected error for missing problem")
	}
}

func TestComponent_StartWithoutNATS(t *testing.T) {
	c := newTestComponent(t)

	err := c.Start(context.Background())
	if err == nil {
		t.Fatal("expected error starting without NATS client")
	}
}

func TestComponent_StopWhenNotRunning(t *testing.T) {
	c := newTestComponent(t)

	if err := c.Stop(time.Second); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestComponent_Meta(t *testing.T) {
	c := newTestComponent(t)

	meta := c.Meta()
	if meta.Name != "solver" {
		t.Errorf("expected name solver, got %s", meta.Name)
	}
	if meta.Type != "processor" {
		t.Errorf("expected type processor, got %s", meta.Type)
	}
}

func TestComponent_Ports(t *testing.T) {
	c := newTestComponent(t)

	inputs := c.InputPorts()
	if len(inputs) != 1 {
		t.Fatalf("expected 1 input port, got %d", len(inputs))
	}
	if inputs[0].Direction != component.DirectionInput {
		t.Error("expected input direction")
	}

	outputs := c.OutputPorts()
	if len(outputs) != 1 {
		t.Fatalf("expected 1 output port, got %d", len(outputs))
	}
	if outputs[0].Direction != component.DirectionOutput {
		t.Error("expected output direction")
	}
}
