package mines

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid board configuration")
	ErrOutOfBounds          = errors.New("cell out of bounds")
)

// ConfigError describes rejected board dimensions. It matches
// [ErrInvalidConfiguration] under [errors.Is].
type ConfigError struct {
	Rows, Columns, MineCount int
}

// [ConfigError] implements [error]
func (e ConfigError) Error() string {
	return fmt.Sprintf(
		"%s: %dx%d(%d)",
		ErrInvalidConfiguration, e.Rows, e.Columns, e.MineCount,
	)
}

func (e ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

func outOfBounds(row, col int) error {
	return fmt.Errorf("%w: %d:%d", ErrOutOfBounds, row, col)
}
