package mines

// CountAdjacentMines returns how many of the up to eight cells around row:col
// hold a mine. Neighbours outside the board are skipped.
func CountAdjacentMines(b *Board, row, col int) int {
	n := 0
	for i := range b.neighbours(row, col) {
		if b.mines[i] {
			n++
		}
	}
	return n
}
