package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type phase string

const (
	closed     phase = "closed"
	open       phase = "open"
	submitting phase = "submitting"
)

func newTestMachine() *Machine[phase] {
	return New(closed,
		From(closed).To(open),
		From(open).To(closed, submitting),
		From(submitting).To(open, closed),
	)
}

func TestMachine_CanTransition(t *testing.T) {
	m := newTestMachine()

	assert.NoError(t, m.CanTransition(open))
	assert.ErrorIs(t, m.CanTransition(submitting), ErrInvalidTransition)
	assert.ErrorIs(t, m.CanTransition(closed), ErrInvalidTransition)
}

func TestMachine_Transition(t *testing.T) {
	m := newTestMachine()
	assert.Equal(t, closed, m.Current())

	require.NoError(t, m.Transition(open))
	assert.Equal(t, open, m.Current())

	require.NoError(t, m.Transition(submitting))
	assert.Equal(t, submitting, m.Current())

	// a second submission is not a legal move
	err := m.Transition(submitting)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, submitting, m.Current())

	require.NoError(t, m.Transition(closed))
	assert.Equal(t, closed, m.Current())
}
