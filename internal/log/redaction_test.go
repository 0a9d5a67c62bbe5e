package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lookup walks a decoded JSON log line along a dotted path.
func lookup(line map[string]any, path string) (any, bool) {
	var cur any = line
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func TestRedactingHandler(t *testing.T) {
	tests := []struct {
		name  string
		attrs []any
		want  map[string]string
	}{
		{
			name: "login attributes",
			attrs: []any{
				slog.String("password", "secret123"),
				slog.String("session_id", "8f1c0a"),
				slog.String("user_name", "admin"),
				slog.String("module_name", "Contacts"),
			},
			want: map[string]string{
				"password":    Redacted,
				"session_id":  Redacted,
				"user_name":   "admin",
				"module_name": "Contacts",
			},
		},
		{
			name: "key match ignores case",
			attrs: []any{
				slog.String("UserPassword", "secret"),
				slog.String("HTTP_AUTH", "ntlm"),
				slog.String("SessionID", "abc"),
			},
			want: map[string]string{
				"UserPassword": Redacted,
				"HTTP_AUTH":    Redacted,
				"SessionID":    Redacted,
			},
		},
		{
			name: "group members",
			attrs: []any{
				slog.Group("user_auth",
					slog.String("password", "hidden"),
					slog.String("version", "1"),
				),
			},
			want: map[string]string{
				"user_auth.password": Redacted,
				"user_auth.version":  "1",
			},
		},
		{
			name: "non-string values",
			attrs: []any{
				slog.Int("max_results", 20),
				slog.Any("token", []byte("raw")),
			},
			want: map[string]string{
				"token": Redacted,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewRedactingHandler(slog.NewJSONHandler(&buf, nil)))

			logger.Info("soap call", tt.attrs...)

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

			for path, want := range tt.want {
				got, ok := lookup(line, path)
				if assert.True(t, ok, "missing %s in %s", path, buf.String()) {
					assert.Equal(t, want, got, path)
				}
			}
		})
	}
}

func TestRedactingHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewRedactingHandler(slog.NewJSONHandler(&buf, nil))).
		With("session", "s-123", "endpoint", "https://crm.example.com/soap.php")

	logger.WithGroup("call").Info("soap call", "operation", "get_entry")

	out := buf.String()
	assert.NotContains(t, out, "s-123")
	assert.Contains(t, out, "crm.example.com")
	assert.Contains(t, out, "get_entry")
}

func TestIsSensitive(t *testing.T) {
	for _, key := range []string{"password", "Pass", "client_secret", "sessionId", "Authorization", "credentials"} {
		assert.True(t, IsSensitive(key), key)
	}
	for _, key := range []string{"user_name", "module_name", "operation", "endpoint"} {
		assert.False(t, IsSensitive(key), key)
	}
}
