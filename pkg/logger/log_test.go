package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "app.log")

	l := NewLogger("info", file)
	require.NotNil(t, l)
	l.Info("проверка записи")
	_ = l.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "проверка записи")
}

func TestNewLogger_UnknownLevelFallsBackToDebug(t *testing.T) {
	l := NewLogger("verbose", "")
	require.NotNil(t, l)
	assert.True(t, l.Core().Enabled(-1), "debug должен быть включён")
}
