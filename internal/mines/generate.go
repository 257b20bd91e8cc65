package mines

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// Generate places mineCount mines uniformly at random by rejection sampling:
// a random cell is drawn until a free one comes up. The first cell the player
// opens is not protected.
func Generate(rows, columns, mineCount int, r *rand.Rand) (*Board, error) {
	if err := validate(rows, columns, mineCount); err != nil {
		return nil, err
	}
	return place(rows, columns, mineCount, r), nil
}

// place assumes validated dimensions.
func place(rows, columns, mineCount int, r *rand.Rand) *Board {
	b := &Board{Rows: rows, Columns: columns, mines: make([]bool, rows*columns)}
	draws := 0
	for b.count < mineCount {
		draws++
		i := b.index(r.IntN(rows), r.IntN(columns))
		if !b.mines[i] {
			b.mines[i] = true
			b.count++
		}
	}
	Log.WithFields(logrus.Fields{
		"rows":    rows,
		"columns": columns,
		"mines":   mineCount,
		"draws":   draws,
	}).Debug("board generated")
	return b
}
