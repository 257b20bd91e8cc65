package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/config"
)

func TestSetupLevelByMode(t *testing.T) {
	log := logrus.New()
	require.NoError(t, Setup(log, &config.Config{Mode: "development"}))
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = logrus.New()
	require.NoError(t, Setup(log, &config.Config{Mode: "production"}))
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestSetupBadLevel(t *testing.T) {
	cfg := &config.Config{Mode: "production", Log: config.Log{Level: "loud"}}
	require.Error(t, Setup(logrus.New(), cfg))
}

func TestFileOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mines.log")
	cfg := &config.Config{
		Mode: "production",
		Log:  config.Log{File: path, MaxSize: 1, MaxBackups: 1, MaxAge: 1},
	}
	log := logrus.New()
	require.NoError(t, FileOnly(log, cfg))

	log.WithField("cell", "1:2").Info("revealed")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"cell":"1:2"`)
	assert.Contains(t, string(b), `"msg":"revealed"`)
}
