package log

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Invicton-Labs/go-stackerr"
	"github.com/tychoish/fun/assert"
	"github.com/tychoish/fun/assert/check"
	"go.uber.org/zap/zapcore"
)

func readEntries(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	assert.NotError(t, err)
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		assert.NotError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	l, err := New(NewInput{
		Name:          "bench",
		Level:         zapcore.InfoLevel,
		InitialFields: map[string]any{"run_id": "abc"},
		Output:        path,
	})
	assert.NotError(t, err)

	l.Debugw("hidden")
	l.Infow("visible", "size", 100)
	_ = l.Sync()

	entries := readEntries(t, path)
	assert.Equal(t, 1, len(entries))
	check.Equal(t, "visible", entries[0]["msg"].(string))
	check.Equal(t, "bench", entries[0]["logger"].(string))
	check.Equal(t, "info", entries[0]["level"].(string))
	check.Equal(t, "abc", entries[0]["run_id"].(string))
	check.Equal(t, float64(100), entries[0]["size"].(float64))
}

func TestLoggerError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	l, err := New(NewInput{Level: zapcore.InfoLevel, Output: path})
	assert.NotError(t, err)
	l.Error(stackerr.Errorf("index out of range").With(map[string]any{
		"index": 5,
	}))
	l.Error(nil)
	l.WithError(stackerr.Errorf("upload failed")).Warnw("retrying")
	_ = l.Sync()

	entries := readEntries(t, path)
	assert.Equal(t, 2, len(entries))
	check.Equal(t, "error", entries[0]["level"].(string))
	check.True(t, strings.Contains(entries[0]["msg"].(string), "index out of range"))
	check.Equal(t, float64(5), entries[0]["index"].(float64))
	check.Equal(t, "retrying", entries[1]["msg"].(string))
	check.True(t, strings.Contains(entries[1]["error"].(string), "upload failed"))
}

func TestConfigClone(t *testing.T) {
	l, err := New(NewInput{Level: zapcore.WarnLevel, InitialFields: map[string]any{"a": 1}, Output: "stderr"})
	assert.NotError(t, err)
	cfg := l.Config()
	cfg.InitialFields["b"] = 2
	_, ok := l.Config().InitialFields["b"]
	check.True(t, !ok)
	check.Equal(t, zapcore.WarnLevel, cfg.Level)
	check.Equal(t, "stderr", cfg.Output)
}

func TestDynamicDefaultLogger(t *testing.T) {
	original := getDefaultLogger().Config()
	defer func() {
		assert.NotError(t, InitDefault(original))
	}()
	assert.NotError(t, InitDefault(NewInput{Level: zapcore.InfoLevel, Output: "stderr"}))

	ddl := NewDynamicDefaultLogger(func(input NewInput) NewInput {
		input.Name = "derived"
		return input
	})
	defer ddl.Close()
	check.True(t, !ddl.IsDevelopment())
	check.Equal(t, "derived", ddl.Logger().Config().Name)

	assert.NotError(t, InitDefault(NewInput{Level: zapcore.DebugLevel, IsDevelopment: true, Output: "stderr"}))
	check.True(t, ddl.IsDevelopment())
	check.Equal(t, "derived", ddl.Logger().Config().Name)
	check.Equal(t, zapcore.DebugLevel, ddl.Logger().Config().Level)
}

func TestContext(t *testing.T) {
	check.True(t, FromContext(context.Background()) != nil)

	l, err := New(NewInput{Name: "ctx", Output: "stderr"})
	assert.NotError(t, err)
	ctx := LogContext(context.Background(), l)
	check.Equal(t, "ctx", FromContext(ctx).Config().Name)
}

func TestNewInvalidOutput(t *testing.T) {
	l, err := New(NewInput{Output: filepath.Join(t.TempDir(), "missing", "log.json")})
	check.Error(t, err)
	check.True(t, l == nil)
}

func TestInitDefault(t *testing.T) {
	original := getDefaultLogger().Config()
	t.Cleanup(func() {
		assert.NotError(t, InitDefault(original))
	})

	t.Run("InvalidOutputKeepsDefault", func(t *testing.T) {
		assert.NotError(t, InitDefault(NewInput{Name: "kept", Output: "stderr"}))
		err := InitDefault(NewInput{Name: "broken", Output: filepath.Join(t.TempDir(), "missing", "log.json")})
		check.Error(t, err)
		check.Equal(t, "kept", getDefaultLogger().Config().Name)
	})
	t.Run("ClosesPreviousOutput", func(t *testing.T) {
		dir := t.TempDir()
		first := filepath.Join(dir, "first.json")
		assert.NotError(t, InitDefault(NewInput{Level: zapcore.InfoLevel, Output: first}))
		previous := getDefaultLogger()
		Infow("before swap")

		assert.NotError(t, SweetenDefaultLogger(map[string]any{"run_id": "abc"}))
		// The old file was flushed and then closed, so syncing it again fails.
		check.Error(t, previous.Sync())

		entries := readEntries(t, first)
		assert.Equal(t, 1, len(entries))
		check.Equal(t, "before swap", entries[0]["msg"].(string))

		Infow("after swap")
		assert.NotError(t, Sync())
		entries = readEntries(t, first)
		assert.Equal(t, 2, len(entries))
		check.Equal(t, "abc", entries[1]["run_id"].(string))
	})
}
