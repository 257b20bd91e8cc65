package mines

// Cell is one entry of a reveal delta: a position and what the player now
// sees there.
type Cell struct {
	Point
	Status CellStatus `json:"status"`
}

// Reveal opens row:col and, through every zero-count cell it meets, the
// surrounding cells as well. It returns the cells opened by this call in the
// order they were opened.
//
// A mine at row:col is reported through detonated and nothing is opened.
// Already revealed cells yield an empty delta. Flagged cells are never opened
// by the flood fill; flags may be nil.
func Reveal(b *Board, revealed, flags *CellSet, row, col int) (delta []Cell, detonated bool) {
	if !b.InBounds(row, col) {
		return nil, false
	}
	start := b.index(row, col)
	if revealed.has(start) {
		return nil, false
	}
	if b.MineAt(row, col) {
		return nil, true
	}

	/*
	 * Cells are marked revealed as they are queued, so the revealed set
	 * doubles as the visited set and nothing is queued twice.
	 */
	todo := newCelltodo(b.Size())
	revealed.add(start)
	todo.add(start)
	for i, ok := todo.pop(); ok; i, ok = todo.pop() {
		p := b.point(i)
		n := CountAdjacentMines(b, p.Row, p.Col)
		delta = append(delta, Cell{Point: p, Status: CellStatus(n)})
		if n > 0 {
			continue
		}
		for j := range b.neighbours(p.Row, p.Col) {
			if revealed.has(j) || flags != nil && flags.has(j) {
				continue
			}
			revealed.add(j)
			todo.add(j)
		}
	}
	return delta, false
}
