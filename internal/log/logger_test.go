package log

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastJSONLine(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var last string
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			last = s
		}
	}
	require.NotEmpty(t, last, "no log lines")
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(last), &m))
	return m
}

func TestInitWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowcanvas.log")
	var console bytes.Buffer
	Init(Options{Level: "debug", Format: "json", File: path, Console: &console})
	t.Cleanup(func() { _ = Close() })

	WithComponent("viewport").Debug("zoomed", slog.Float64("zoom", 2))
	require.NoError(t, Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	m := lastJSONLine(t, b)
	assert.Equal(t, "flowcanvas", m["app"])
	assert.Equal(t, "viewport", m["component"])
	assert.Equal(t, "zoomed", m["msg"])
	assert.Equal(t, 2.0, m["zoom"])

	// the console got the same record
	assert.Equal(t, "zoomed", lastJSONLine(t, console.Bytes())["msg"])
}

func TestConsoleTextFormatAndLevel(t *testing.T) {
	var console bytes.Buffer
	Init(Options{Level: "warn", Console: &console})

	L().Info("hidden")
	L().Warn("shown", "k", "v")

	out := console.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "k=v")
	assert.Contains(t, out, "app=flowcanvas")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("FLOWCANVAS_LOG_LEVEL", "debug")
	t.Setenv("FLOWCANVAS_LOG_FORMAT", "json")
	t.Setenv("FLOWCANVAS_LOG_SOURCE", "true")
	t.Setenv("FLOWCANVAS_LOG_FILE", "")

	got := FromEnv(Options{Level: "error", File: "keep.log"})
	assert.Equal(t, "debug", got.Level)
	assert.Equal(t, "json", got.Format)
	assert.True(t, got.AddSource)
	assert.Equal(t, "keep.log", got.File)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestCloseWithoutFile(t *testing.T) {
	Init(Options{Console: &bytes.Buffer{}})
	assert.NoError(t, Close())
}
