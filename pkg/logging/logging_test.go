package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	logger, err := New("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	_, err = New("chatty")
	assert.Error(t, err)
}

func TestNewFile(t *testing.T) {
	logger, err := NewFile("", false)
	require.NoError(t, err)
	logger.Info("dropped")

	path := filepath.Join(t.TempDir(), "chat.log")
	logger, err = NewFile(path, false)
	require.NoError(t, err)
	logger.Info("kept")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept")
}
