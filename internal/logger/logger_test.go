package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogKeepsConsoleHistory(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithCore(core)

	l.Log("hello")
	l.Logf("blocks=%d", 500)

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "] hello"))
	assert.True(t, strings.HasSuffix(lines[1], "] blocks=500"))
	assert.Equal(t, 2, logs.FilterField(zap.String("source", "console")).Len())
}

func TestErrorIsSurfacedOnConsole(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithCore(core)

	l.Error("model load failed", zap.String("path", "car.gltf"))

	require.Equal(t, 1, logs.FilterMessage("model load failed").Len())
	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "error: model load failed")
	assert.Contains(t, lines[0], "path=car.gltf")
}

func TestInfoDoesNotTouchConsole(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewWithCore(core)

	l.Info("world built", zap.Int("blocks", 500))
	l.Debug("dropped")

	assert.Empty(t, l.Lines())
	assert.Equal(t, 1, logs.Len())
}

func TestLinesAreCapped(t *testing.T) {
	l := Nop()
	for i := 0; i < maxLines+10; i++ {
		l.Log("x")
	}
	assert.Len(t, l.Lines(), maxLines)
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "walker.log")
	l, err := New(Config{Level: "info", Format: "json", File: path})
	require.NoError(t, err)

	l.Info("started")
	l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"started"`)
}
