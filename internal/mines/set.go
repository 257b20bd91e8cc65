package mines

// CellSet is a set of cells of a rows x columns board.
type CellSet struct {
	rows, columns int
	cells         []bool
	n             int
}

func NewCellSet(rows, columns int) *CellSet {
	return &CellSet{rows: rows, columns: columns, cells: make([]bool, rows*columns)}
}

func (s *CellSet) Has(row, col int) bool {
	if row < 0 || row >= s.rows || col < 0 || col >= s.columns {
		return false
	}
	return s.cells[row*s.columns+col]
}

func (s *CellSet) Len() int {
	return s.n
}

func (s *CellSet) has(i int) bool {
	return s.cells[i]
}

func (s *CellSet) add(i int) {
	if !s.cells[i] {
		s.cells[i] = true
		s.n++
	}
}

func (s *CellSet) remove(i int) {
	if s.cells[i] {
		s.cells[i] = false
		s.n--
	}
}
