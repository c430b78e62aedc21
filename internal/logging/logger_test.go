package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var console, file bytes.Buffer
	l := newLoggerWithWriters("worldgen", &console, &file)
	l.setLevels(WARN, DEBUG)

	l.Trace("trace %d", 1)
	l.Debug("debug %d", 2)
	l.Info("info %d", 3)
	l.Warn("warn %d", 4)

	assert.NotContains(t, console.String(), "info 3", "INFO ниже порога консоли")
	assert.Contains(t, console.String(), "[WARN] [worldgen] warn 4")

	assert.NotContains(t, file.String(), "trace 1", "TRACE ниже порога файла")
	assert.Contains(t, file.String(), "[DEBUG] [worldgen] debug 2")
	assert.Contains(t, file.String(), "info 3")
}

func TestLogger_NilSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Info("ничего не произойдёт") })
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, INFO, level, "Пустая строка означает INFO")

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewLogger_WritesFile(t *testing.T) {
	dir := t.TempDir()
	prev := currentOptions()
	Configure(Options{Dir: dir, FileOutput: true, ConsoleLevel: ERROR, FileLevel: TRACE})
	t.Cleanup(func() { Configure(prev) })

	l, err := NewLogger("filetest")
	require.NoError(t, err)
	l.Debug("сообщение в файл")
	require.NoError(t, l.Close())

	matches, err := filepath.Glob(filepath.Join(dir, "filetest_*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "сообщение в файл")
}

func TestLoggerManager_ReusesComponentLogger(t *testing.T) {
	lm := newLoggerManager()

	a, err := lm.GetLogger("render")
	require.NoError(t, err)
	b, err := lm.GetLogger("render")
	require.NoError(t, err)

	assert.Same(t, a, b)
	_, err = lm.GetLogger("caves")
	require.NoError(t, err)
	assert.Equal(t, []string{"caves", "render"}, lm.ListComponents(), "Компоненты по алфавиту")
	assert.NoError(t, lm.CloseAll())
	assert.Empty(t, lm.ListComponents())
}

func TestLoggerManager_ApplyLevels(t *testing.T) {
	lm := newLoggerManager()

	existing, err := lm.GetLogger("render")
	require.NoError(t, err)

	err = lm.ApplyLevels(map[string]string{
		"render":   "debug",
		"worldgen": "warn",
		"broken":   "loud",
	})
	require.Error(t, err, "Неизвестный уровень должен вернуть ошибку")
	assert.Contains(t, err.Error(), "broken")

	assert.Equal(t, DEBUG, existing.ConsoleLevel(), "Уже созданный логгер переключается сразу")
	assert.True(t, existing.Enabled(DEBUG))

	later, err := lm.GetLogger("worldgen")
	require.NoError(t, err)
	assert.Equal(t, WARN, later.ConsoleLevel(), "Новый логгер получает заданный уровень")

	_, err = lm.GetLogger("broken")
	require.NoError(t, err)
	assert.Equal(t, currentOptions().ConsoleLevel, lm.loggers["broken"].ConsoleLevel())
	assert.NoError(t, lm.CloseAll())
}
