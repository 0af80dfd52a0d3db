package finitestate

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMachine(t *testing.T) Machine {
	t.Helper()
	handler := slog.NewTextHandler(&bytes.Buffer{}, nil)
	m, err := New(handler)
	require.NoError(t, err)
	return m
}

func TestNewStartsAtStart(t *testing.T) {
	m := newMachine(t)
	assert.Equal(t, StateStart, m.GetState())
}

func TestLinearPipeline(t *testing.T) {
	m := newMachine(t)

	for _, state := range []string{StateInputsRead, StateParsed, StateCompiled, StateOutputsWritten} {
		require.NoError(t, m.Transition(state))
		assert.Equal(t, state, m.GetState())
	}
}

func TestStageSkippingIsRejected(t *testing.T) {
	m := newMachine(t)

	err := m.Transition(StateCompiled)
	require.Error(t, err, "cannot compile before reading inputs")
	assert.Equal(t, StateStart, m.GetState())
}

func TestErrorReachableFromEveryNonTerminalState(t *testing.T) {
	pipeline := []string{StateStart, StateInputsRead, StateParsed, StateCompiled}

	for i, from := range pipeline {
		m := newMachine(t)
		for _, state := range pipeline[1 : i+1] {
			require.NoError(t, m.Transition(state))
		}
		assert.True(t, m.TransitionBool(StateError), "error must be reachable from %s", from)
		assert.Equal(t, StateError, m.GetState())
	}
}

func TestTerminalStates(t *testing.T) {
	m := newMachine(t)
	require.True(t, m.TransitionBool(StateError))

	assert.False(t, m.TransitionBool(StateStart), "error state is terminal")
	assert.False(t, m.TransitionBool(StateInputsRead))
}
