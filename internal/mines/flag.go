package mines

// ToggleFlag flips the flag on row:col. Revealed cells cannot be flagged;
// toggling one leaves flags untouched and reports changed == false.
func ToggleFlag(flags, revealed *CellSet, row, col int) (flagged, changed bool) {
	if row < 0 || row >= flags.rows || col < 0 || col >= flags.columns {
		return false, false
	}
	i := row*flags.columns + col
	switch {
	case revealed.has(i):
		return false, false
	case flags.has(i):
		flags.remove(i)
		return false, true
	default:
		flags.add(i)
		return true, true
	}
}
