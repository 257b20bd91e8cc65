package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"n": 0,
}

type command struct {
	op       string
	row, col int
}

type commandResult struct {
	Command string               `json:"command"`
	Reveal  *mines.RevealOutcome `json:"reveal,omitempty"`
	Flag    *mines.FlagOutcome   `json:"flag,omitempty"`
	Game    mines.Snapshot       `json:"game"`
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

// parseCommand checks a command against a rows x columns board without
// touching any session.
func parseCommand(c string, rows, columns int) (cmd command, err error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return cmd, errors.New("empty command")
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return cmd, errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return cmd, errors.New("invalid number of arguments")
	}
	cmd.op = parts[0]
	if nargs == 0 {
		return cmd, nil
	}
	if cmd.row, cmd.col, err = parseRowCol(parts[1:]); err != nil {
		return cmd, err
	}
	if cmd.row < 0 || cmd.row >= rows || cmd.col < 0 || cmd.col >= columns {
		return cmd, fmt.Errorf("invalid cell coordinates: %w", mines.ErrOutOfBounds)
	}
	return cmd, nil
}

func (cmd command) String() string {
	if commandNargs[cmd.op] == 0 {
		return cmd.op
	}
	return fmt.Sprintf("%s %d %d", cmd.op, cmd.row, cmd.col)
}

func (cmd command) execute(s *mines.Session) (res commandResult, err error) {
	res.Command = cmd.String()
	switch cmd.op {
	case "g":
	case "o":
		out, err := s.Reveal(cmd.row, cmd.col)
		if err != nil {
			return res, err
		}
		res.Reveal = &out
	case "f":
		out, err := s.ToggleFlag(cmd.row, cmd.col)
		if err != nil {
			return res, err
		}
		res.Flag = &out
	case "n":
		s.Restart()
	default:
		return res, errors.New("invalid command")
	}
	res.Game = s.Snapshot()
	return res, nil
}

type batchError struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

// parseBatch parses newline-separated commands. Nothing is executed when any
// line is malformed.
func parseBatch(text string, rows, columns int) ([]command, *batchError) {
	var cmds []command
	for i, line := range byPiece(strings.TrimSpace(text), "\n") {
		cmd, err := parseCommand(line, rows, columns)
		if err != nil {
			return nil, &batchError{Line: i, Error: err.Error()}
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// runBatch executes cmds in order and stops after the command that ends the
// game, even when the session has already restarted itself.
func runBatch(s *mines.Session, cmds []command) ([]commandResult, error) {
	results := make([]commandResult, 0, len(cmds))
	for _, cmd := range cmds {
		res, err := cmd.execute(s)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		if res.Game.State != mines.Playing || res.Reveal != nil && (res.Reveal.Lost || res.Reveal.Won) {
			break
		}
	}
	return results, nil
}
