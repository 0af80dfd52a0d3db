// Package finitestate provides the finite state machine tracking a
// compilation run's pipeline stages.
//
// Pipeline:
//  1. Start - configuration and input spec are built
//  2. InputsRead - all source units resolved
//  3. Parsed - modules parsed by the compiler core
//  4. Compiled - code and externs produced
//  5. OutputsWritten - artifacts routed to their destinations
//
// Error is the terminal failure state reachable from every non-terminal
// state.
package finitestate

import (
	"log/slog"

	"github.com/robbyt/go-fsm"
)

// State constants for the run lifecycle
const (
	StateStart          = "start"
	StateInputsRead     = "inputs_read"
	StateParsed         = "parsed"
	StateCompiled       = "compiled"
	StateOutputsWritten = "outputs_written"
	StateError          = "error"
)

// PipelineTransitions defines the valid state transitions for a single
// compilation run. The pipeline is strictly linear; failure at any stage
// short-circuits to the terminal error state.
var PipelineTransitions = map[string][]string{
	StateStart:          {StateInputsRead, StateError},
	StateInputsRead:     {StateParsed, StateError},
	StateParsed:         {StateCompiled, StateError},
	StateCompiled:       {StateOutputsWritten, StateError},
	StateOutputsWritten: {}, // terminal success state
	StateError:          {}, // terminal failure state
}

// Machine defines the interface for the state machine that tracks a
// compilation run's pipeline stages.
type Machine interface {
	// Transition attempts to transition the state machine to the specified state.
	Transition(state string) error

	// TransitionBool attempts to transition the state machine to the specified state.
	TransitionBool(state string) bool

	// GetState returns the current state of the state machine.
	GetState() string
}

// New creates a new pipeline state machine starting at StateStart.
func New(handler slog.Handler) (Machine, error) {
	return fsm.New(handler, StateStart, PipelineTransitions)
}
