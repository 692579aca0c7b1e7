package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "result", cfg.Output.Directory)
	assert.True(t, cfg.Collect.Parallel)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 90, cfg.History.RetentionDays)
	assert.Equal(t, ":9650", cfg.Server.Listen)
	assert.True(t, cfg.Server.Swagger)
	assert.False(t, cfg.Watch.Push)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noctualight.yaml")
	data := []byte("output:\n  directory: /tmp/reports\nserver:\n  listen: \":8080\"\n  api_secret: hunter2\nwatch:\n  interval: 15m\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/reports", cfg.Output.Directory)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, "hunter2", cfg.Server.APISecret)
	assert.Equal(t, "15m0s", cfg.Watch.Interval.String())
	// Untouched keys keep their defaults.
	assert.Equal(t, "noctualight.db", cfg.History.Database)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDatabasePath(t *testing.T) {
	cfg := &Config{
		Output:  OutputConfig{Directory: "result"},
		History: HistoryConfig{Database: "noctualight.db"},
	}
	assert.Equal(t, filepath.Join("result", "noctualight.db"), cfg.DatabasePath())

	cfg.History.Database = "/var/lib/noctualight.db"
	assert.Equal(t, "/var/lib/noctualight.db", cfg.DatabasePath())
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(LoggingConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	_ = log.Sync()

	_, err = NewLogger(LoggingConfig{Level: "verbose"})
	assert.Error(t, err)

	_, err = NewLogger(LoggingConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
