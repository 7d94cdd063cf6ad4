package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_DefaultLevel(t *testing.T) {
	log, err := New(Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Sync() })

	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_Verbose(t *testing.T) {
	log, err := New(Options{Verbose: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Sync() })

	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	log, err := New(Options{File: path})
	require.NoError(t, err)

	log.Info("generation started")
	_ = log.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "generation started")
}
