package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is a terminal front end for a single [mines.Session].
type Model struct {
	session *mines.Session
	snap    mines.Snapshot
	cursor  mines.Point
}

func New(session *mines.Session) Model {
	return Model{session: session, snap: session.Snapshot()}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.session.Tick()
		m.snap = m.session.Snapshot()
		return m, tickCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "k", "up":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
	case "j", "down":
		if m.cursor.Row < m.snap.Rows-1 {
			m.cursor.Row++
		}
	case "h", "left":
		if m.cursor.Col > 0 {
			m.cursor.Col--
		}
	case "l", "right":
		if m.cursor.Col < m.snap.Columns-1 {
			m.cursor.Col++
		}
	case " ", "enter":
		if _, err := m.session.Reveal(m.cursor.Row, m.cursor.Col); err != nil {
			mines.Log.Warn("reveal: ", err)
		}
		m.snap = m.session.Snapshot()
	case "f":
		if _, err := m.session.ToggleFlag(m.cursor.Row, m.cursor.Col); err != nil {
			mines.Log.Warn("flag: ", err)
		}
		m.snap = m.session.Snapshot()
	case "n":
		m.snap = m.session.Restart()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	for row := range m.snap.Rows {
		for col := range m.snap.Columns {
			status := m.snap.Grid.At(m.snap.Columns, row, col)
			glyph := cellStyle(status).Render(status.String())
			if m.cursor == (mines.Point{Row: row, Col: col}) {
				b.WriteString(cursorStyle.Render("[" + status.String() + "]"))
			} else {
				b.WriteString(" " + glyph + " ")
			}
		}
		if row < m.snap.Rows-1 {
			b.WriteString("\n")
		}
	}

	return strings.Join([]string{
		titleStyle.Render("MINESWEEPER"),
		boardStyle.Render(b.String()),
		m.status(),
		dimStyle.Render("arrows/hjkl move · space reveal · f flag · n new game · q quit"),
	}, "\n") + "\n"
}

func (m Model) status() string {
	left := m.snap.MineCount - m.snap.Flags
	counters := fmt.Sprintf("time %03d  mines %02d", m.snap.Elapsed, left)
	switch m.snap.State {
	case mines.Won:
		return counters + "  " + wonStyle.Render("cleared! press n to play again")
	case mines.Lost:
		return counters + "  " + lostStyle.Render("game over! press n to play again")
	default:
		return counters
	}
}
