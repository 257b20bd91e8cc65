package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/logging"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/tui"
)

var (
	seed    uint64
	logFile string
)

func init() {
	flag.Uint64Var(&seed, "seed", 0, "board seed, random when 0")
	flag.StringVar(&logFile, "log", "", "write debug logs to this file")
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	cfg := &config.Config{Mode: "development", Log: config.Log{
		File:       logFile,
		MaxSize:    10,
		MaxBackups: 1,
	}}
	log := logrus.New()
	if err := logging.FileOnly(log, cfg); err != nil {
		return err
	}
	mines.Log = log

	rnd := mines.NewRand()
	if seed != 0 {
		rnd = rand.New(rand.NewPCG(seed, seed))
	}
	session, err := mines.NewSession(
		mines.DefaultRows, mines.DefaultColumns, mines.DefaultMineCount, rnd,
	)
	if err != nil {
		return err
	}
	log.WithField("seed", seed).Debug("session started")

	_, err = tea.NewProgram(tui.New(session), tea.WithAltScreen()).Run()
	return err
}
