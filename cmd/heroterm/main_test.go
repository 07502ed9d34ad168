package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knightofkalki/portfolio/internal/typewriter"
)

func TestModel_TicksAdvanceText(t *testing.T) {
	cfg := typewriter.DefaultConfig("Go")
	cfg.Loop = false
	m, err := newModel("Test", cfg)
	require.NoError(t, err)

	assert.NotNil(t, m.Init())

	next, cmd := m.Update(tickMsg{})
	m = next.(model)
	assert.Equal(t, "G", m.machine.Text())
	assert.NotNil(t, cmd)

	next, cmd = m.Update(tickMsg{})
	m = next.(model)
	assert.Equal(t, "Go", m.machine.Text())
	assert.Nil(t, cmd, "finished machine schedules nothing")
	assert.Contains(t, m.View(), "Go")
	assert.Contains(t, m.View(), "Test")
}

func TestModel_Blink(t *testing.T) {
	m, err := newModel("Test", typewriter.DefaultConfig("x"))
	require.NoError(t, err)

	next, cmd := m.Update(blinkMsg{})
	assert.False(t, next.(model).caretOn)
	assert.NotNil(t, cmd)
}

func TestModel_Quit(t *testing.T) {
	m, err := newModel("Test", typewriter.DefaultConfig("x"))
	require.NoError(t, err)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestNewModel_RejectsBadConfig(t *testing.T) {
	cfg := typewriter.DefaultConfig("x")
	cfg.TypingSpeed = -time.Second
	_, err := newModel("Test", cfg)
	assert.ErrorIs(t, err, typewriter.ErrNonPositiveDelay)
}
