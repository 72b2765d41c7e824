package logger

import (
	"os"
	"path/filepath"
	"testing"

	"kpi-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, Level("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, Level("warning"))
	assert.Equal(t, zapcore.ErrorLevel, Level("error"))
	assert.Equal(t, zapcore.InfoLevel, Level("verbose"))
	assert.Equal(t, zapcore.InfoLevel, Level(""))
}

func TestNewStdout(t *testing.T) {
	l, err := New(config.LoggerConfig{Format: "console", Level: "debug"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kpi.log")

	l, err := New(config.LoggerConfig{Output: "file", FilePath: path, Level: "warn"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	l.Warn("pool exhausted")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pool exhausted")
}
