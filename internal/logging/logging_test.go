package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, INFO, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newWriterLogger("chunk", &buf, WARN)

	l.Info("скрыто %d", 1)
	l.Warn("видно %d", 2)
	l.Error("ошибка")

	out := buf.String()
	assert.NotContains(t, out, "скрыто")
	assert.Contains(t, out, "[WARN] [chunk] видно 2")
	assert.Contains(t, out, "[ERROR] [chunk] ошибка")
}

func TestFileSink(t *testing.T) {
	dir := t.TempDir()
	Configure(Options{Dir: dir, ConsoleLevel: ERROR, FileLevel: DEBUG})
	defer Configure(Options{ConsoleLevel: INFO, FileLevel: DEBUG})

	l, err := NewLogger("world")
	require.NoError(t, err)
	l.Debug("запись в файл")
	require.NoError(t, l.Close())

	files, err := filepath.Glob(filepath.Join(dir, "world_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "запись в файл")
}

func TestComponentLoggersAreShared(t *testing.T) {
	a := GetComponentLogger("physics")
	b := GetPhysicsLogger()
	assert.Same(t, a, b)
	assert.Contains(t, GetLoggerManager().ListComponents(), "physics")
}

func TestSetLogLevelCreatesAndFilters(t *testing.T) {
	lm := GetLoggerManager()
	require.NoError(t, lm.SetLogLevel("levels-test", ERROR, ERROR))

	logger, err := lm.GetLogger("levels-test")
	require.NoError(t, err)
	var buf bytes.Buffer
	logger.consoleLogger.SetOutput(&buf)

	logger.Warn("не пишется")
	logger.Error("пишется")
	assert.NotContains(t, buf.String(), "не пишется")
	assert.Contains(t, buf.String(), "пишется")
}

func TestPackageFunctionsNeverPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("до инициализации")
		Error("ошибка до инициализации")
	})
}
