package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	hiddenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	openStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	flagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f59e0b")).
			Bold(true)

	mineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ef4444")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	wonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80")).
			Bold(true)

	lostStyle = mineStyle

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#505868")).
			Padding(0, 1)
)

// Classic digit colours, 1 through 8.
var countColors = [...]lipgloss.Color{
	"#60a5fa", "#4ade80", "#f87171", "#a78bfa",
	"#fb923c", "#22d3ee", "#e4e4ec", "#8890a0",
}

func cellStyle(s mines.CellStatus) lipgloss.Style {
	switch {
	case s == mines.Unknown:
		return hiddenStyle
	case s == mines.Flag || s == mines.CorrectFlag:
		return flagStyle
	case s == mines.ExplodedMine || s == mines.UnflaggedMine || s == mines.WrongFlag:
		return mineStyle
	case s >= 1 && s <= 8:
		return openStyle.Foreground(countColors[s-1])
	default:
		return openStyle
	}
}
