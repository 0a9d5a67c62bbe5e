package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNew_Disabled(t *testing.T) {
	logger, closer, err := New(Options{})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
	assert.NoError(t, closer.Close())
}

func TestNew_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{Level: "info", Output: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("login ok", "user_name", "admin", "password", "hunter2")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "user_name=admin")
	assert.Contains(t, out, "password="+Redacted)
	assert.NotContains(t, out, "hunter2")
}

func TestNew_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sugarcrm.log")

	logger, closer, err := New(Options{Level: "debug", JSON: true, File: path})
	require.NoError(t, err)

	logger.Debug("soap call", "operation", "get_entry_list")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"operation":"get_entry_list"`)
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}
