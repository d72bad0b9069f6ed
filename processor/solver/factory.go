package solver

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// RegistryInterface defines the minimal interface needed for registration.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register registers the solver component with the given registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        "solver",
		Factory:     NewComponent,
		Schema:      solverSchema,
		Type:        "processor",
		Protocol:    "planning",
		Domain:      "stripsolve",
		Description: "Solves STRIPS planning problems with breadth-first search",
		Version:     "0.1.0",
	})
}
