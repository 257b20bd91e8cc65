package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-engine/internal/config"
)

// Setup configures log from cfg: level by mode unless set explicitly, colored
// text to the console and, when a log file is configured, JSON lines to a
// rotating file.
func Setup(log *logrus.Logger, cfg *config.Config) error {
	level, err := cfg.LogLevel()
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: cfg.Development()})

	if cfg.Log.File == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Level:      level,
		Formatter:  &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
	})
	if err != nil {
		return fmt.Errorf("unable to open log file %s: %w", cfg.Log.File, err)
	}
	log.AddHook(hook)
	return nil
}

// FileOnly is Setup for programs that own the terminal: console output is
// discarded and only the rotating file, if any, receives entries.
func FileOnly(log *logrus.Logger, cfg *config.Config) error {
	if err := Setup(log, cfg); err != nil {
		return err
	}
	log.SetOutput(io.Discard)
	return nil
}
