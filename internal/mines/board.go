package mines

import (
	"fmt"
	"iter"
	"strings"
)

const (
	DefaultRows      = 10
	DefaultColumns   = 10
	DefaultMineCount = 10
)

type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Board is the mine map of a single game. It does not change once built.
type Board struct {
	Rows, Columns int
	mines         []bool
	count         int
}

func validate(rows, columns, mineCount int) error {
	if rows <= 0 || columns <= 0 || mineCount <= 0 || mineCount >= rows*columns {
		return ConfigError{Rows: rows, Columns: columns, MineCount: mineCount}
	}
	return nil
}

// NewBoard builds a board with mines at exactly the given points. Duplicate
// points are counted once.
func NewBoard(rows, columns int, mines ...Point) (*Board, error) {
	if rows <= 0 || columns <= 0 {
		return nil, ConfigError{Rows: rows, Columns: columns, MineCount: len(mines)}
	}
	b := &Board{Rows: rows, Columns: columns, mines: make([]bool, rows*columns)}
	for _, p := range mines {
		if !b.InBounds(p.Row, p.Col) {
			return nil, fmt.Errorf("mine %w", outOfBounds(p.Row, p.Col))
		}
		if i := b.index(p.Row, p.Col); !b.mines[i] {
			b.mines[i] = true
			b.count++
		}
	}
	if err := validate(rows, columns, b.count); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.Rows && 0 <= col && col < b.Columns
}

func (b *Board) MineAt(row, col int) bool {
	return b.InBounds(row, col) && b.mines[b.index(row, col)]
}

func (b *Board) MineCount() int {
	return b.count
}

func (b *Board) Size() int {
	return b.Rows * b.Columns
}

func (b *Board) index(row, col int) int {
	return row*b.Columns + col
}

func (b *Board) point(i int) Point {
	return Point{Row: i / b.Columns, Col: i % b.Columns}
}

// neighbours yields indices of the in-bounds cells around row:col, not
// including the cell itself.
func (b *Board) neighbours(row, col int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				r, c := row+dr, col+dc
				if (dr == 0 && dc == 0) || !b.InBounds(r, c) {
					continue
				}
				if !yield(b.index(r, c)) {
					return
				}
			}
		}
	}
}

func (b *Board) String() string {
	var s strings.Builder
	for row := range b.Rows {
		for col := range b.Columns {
			if b.mines[b.index(row, col)] {
				fmt.Fprint(&s, "* ")
			} else {
				fmt.Fprint(&s, "- ")
			}
		}
		fmt.Fprint(&s, "\n")
	}
	return s.String()
}
