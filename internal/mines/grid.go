package mines

import "strconv"

type CellStatus int8

const (
	Unknown       CellStatus = -2
	Flag          CellStatus = -1
	CorrectFlag   CellStatus = 64 // post-game-over
	ExplodedMine  CellStatus = 65
	WrongFlag     CellStatus = 66
	UnflaggedMine CellStatus = 67
	// 0-8 for open cells with given number of mined neighbours
)

func (s CellStatus) String() string {
	switch s {
	case Unknown:
		return "-"
	case Flag, CorrectFlag:
		return "F"
	case ExplodedMine:
		return "X"
	case WrongFlag:
		return "x"
	case UnflaggedMine:
		return "*"
	case 0:
		return "."
	case 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Grid is the player's view of a board, row-major.
type Grid []CellStatus

func (g Grid) At(columns, row, col int) CellStatus {
	return g[row*columns+col]
}
