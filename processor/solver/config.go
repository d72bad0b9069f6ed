package solver

import (
	"fmt"
	"reflect"
	"time"

	"github.com/c360studio/semstreams/component"
)

// solverSchema defines the configuration schema.
var solverSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the solver processor component.
type Config struct {
	// StreamName is the JetStream stream for consuming solve requests.
	StreamName string `json:"stream_name" schema:"type:string,description:JetStream stream for solve requests,category:basic,default:PLANNING"`

	// ConsumerName is the durable consumer name for request consumption.
	ConsumerName string `json:"consumer_name" schema:"type:string,description:Durable consumer name for request consumption,category:basic,default:solver"`

	// RequestSubject is the subject pattern for solve requests.
	RequestSubject string `json:"request_subject" schema:"type:string,description:Subject pattern for solve requests,category:basic,default:planning.solve.request"`

	// ResultSubjectPrefix is the subject prefix for solve results.
	// The request ID is appended to form the full subject.
	ResultSubjectPrefix string `json:"result_subject_prefix" schema:"type:string,description:Subject prefix for solve results,category:basic,default:planning.solve.result"`

	// SolveTimeout bounds a single solve (e.g. "30s").
	SolveTimeout string `json:"solve_timeout" schema:"type:string,description:Maximum time for a single solve,category:advanced,default:30s"`

	// Ports contains input/output port definitions.
	Ports *component.PortConfig `json:"ports,omitempty" schema:"type:ports,description:Input/output port definitions,category:basic"`
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		StreamName:          "PLANNING",
		ConsumerName:        "solver",
		RequestSubject:      "planning.solve.request",
		ResultSubjectPrefix: "planning.solve.result",
		SolveTimeout:        "30s",
		Ports: &component.PortConfig{
			Inputs: []component.PortDefinition{
				{
					Name:        "solve-requests",
					Type:        "jetstream",
					Subject:     "planning.solve.request",
					StreamName:  "PLANNING",
					Description: "Receive solve requests",
					Required:    true,
				},
			},
			Outputs: []component.PortDefinition{
				{
					Name:        "solve-results",
					Type:        "jetstream",
					Subject:     "planning.solve.result.>",
					Description: "Publish solve results",
					Required:    false,
				},
			},
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.StreamName == "" {
		return fmt.Errorf("stream_name is required")
	}
	if c.ConsumerName == "" {
		return fmt.Errorf("consumer_name is required")
	}
	if c.RequestSubject == "" {
		return fmt.Errorf("request_subject is required")
	}
	if c.ResultSubjectPrefix == "" {
		return fmt.Errorf("result_subject_prefix is required")
	}
	if c.SolveTimeout != "" {
		if _, err := time.ParseDuration(c.SolveTimeout); err != nil {
			return fmt.Errorf("invalid solve_timeout: %w", err)
		}
	}
	return nil
}

// GetSolveTimeout returns the solve timeout as a duration.
func (c *Config) GetSolveTimeout() time.Duration {
	if c.SolveTimeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(c.SolveTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
