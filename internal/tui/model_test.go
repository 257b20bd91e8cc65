package tui

import (
	"math/rand/v2"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func newTestModel(t *testing.T, mineAt ...mines.Point) Model {
	t.Helper()
	b, err := mines.NewBoard(10, 10, mineAt...)
	require.NoError(t, err)
	return New(mines.NewSessionFromBoard(b, rand.New(rand.NewPCG(1, 2))))
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, key := range keys {
		var msg tea.KeyMsg
		switch key {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		model, _ := m.Update(msg)
		m = model.(Model)
	}
	return m
}

func TestCursorMovement(t *testing.T) {
	m := newTestModel(t, mines.Point{Row: 9, Col: 9})

	m = press(t, m, "k", "h")
	assert.Equal(t, mines.Point{Row: 0, Col: 0}, m.cursor)

	m = press(t, m, "j", "j", "l", "down", "right")
	assert.Equal(t, mines.Point{Row: 3, Col: 2}, m.cursor)

	for range 20 {
		m = press(t, m, "j", "l")
	}
	assert.Equal(t, mines.Point{Row: 9, Col: 9}, m.cursor)
}

func TestRevealWins(t *testing.T) {
	m := newTestModel(t, mines.Point{Row: 9, Col: 9})

	m = press(t, m, "enter")
	assert.Equal(t, mines.Won, m.snap.State)
	assert.Contains(t, m.View(), "cleared!")
}

func TestRevealMine(t *testing.T) {
	m := newTestModel(t, mines.Point{Row: 0, Col: 1})

	m = press(t, m, "l", " ")
	assert.Equal(t, mines.Lost, m.snap.State)
	view := m.View()
	assert.Contains(t, view, "game over!")
	assert.Contains(t, view, "[X]")

	m = press(t, m, "n")
	assert.Equal(t, mines.Playing, m.snap.State)
	assert.NotContains(t, m.View(), "game over!")
}

func TestFlag(t *testing.T) {
	m := newTestModel(t, mines.Point{Row: 0, Col: 0})

	m = press(t, m, "f")
	assert.Equal(t, 1, m.snap.Flags)
	view := m.View()
	assert.Contains(t, view, "[F]")
	assert.Contains(t, view, "mines 00")

	// flagged cells are not revealed
	m = press(t, m, "enter")
	assert.Equal(t, mines.Playing, m.snap.State)

	m = press(t, m, "f")
	assert.Equal(t, 0, m.snap.Flags)
	assert.Contains(t, m.View(), "mines 01")
}

func TestTick(t *testing.T) {
	m := newTestModel(t, mines.Point{Row: 0, Col: 0})
	require.NotNil(t, m.Init())

	model, cmd := m.Update(tickMsg{})
	m = model.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.snap.Elapsed)
	assert.Contains(t, m.View(), "time 001")

	// the clock stops once the game is over
	m = press(t, m, "enter")
	model, _ = m.Update(tickMsg{})
	m = model.(Model)
	assert.Equal(t, 1, m.snap.Elapsed)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, mines.Point{Row: 0, Col: 0})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewGrid(t *testing.T) {
	m := newTestModel(t, mines.Point{Row: 0, Col: 0})
	view := m.View()
	assert.Contains(t, view, "MINESWEEPER")
	assert.Equal(t, 100, strings.Count(view, "-"))
}
