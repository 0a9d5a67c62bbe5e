// Package log builds the slog loggers used by the SugarCRM client and its
// command-line driver.
package log

import (
	"context"
	"log/slog"
	"strings"
)

// Redacted replaces the value of sensitive attributes.
const Redacted = "[REDACTED]"

// sensitiveKeys defines the substrings that mark an attribute as sensitive.
// Matching is case-insensitive. CRM session IDs grant full API access, so
// they are treated like passwords.
var sensitiveKeys = []string{
	"password",
	"pass",
	"secret",
	"token",
	"session",
	"auth",
	"cred",
}

// RedactingHandler is a slog.Handler that redacts sensitive information.
type RedactingHandler struct {
	next slog.Handler
}

// NewRedactingHandler creates a new RedactingHandler.
func NewRedactingHandler(next slog.Handler) *RedactingHandler {
	return &RedactingHandler{next: next}
}

// Enabled implements slog.Handler.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler. It redacts sensitive attributes before passing to the next handler.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	newRecord := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		newRecord.AddAttrs(redactAttr(a))
		return true
	})

	return h.next.Handle(ctx, newRecord)
}

// WithAttrs implements slog.Handler.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redactedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redactedAttrs[i] = redactAttr(a)
	}
	return &RedactingHandler{next: h.next.WithAttrs(redactedAttrs)}
}

// WithGroup implements slog.Handler.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{next: h.next.WithGroup(name)}
}

func redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		redactedGroup := make([]any, len(attrs))
		for i, attr := range attrs {
			redactedGroup[i] = redactAttr(attr)
		}
		return slog.Group(a.Key, redactedGroup...)
	}

	if IsSensitive(a.Key) {
		return slog.String(a.Key, Redacted)
	}

	return a
}

// IsSensitive reports whether an attribute key names a secret.
func IsSensitive(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, sens := range sensitiveKeys {
		if strings.Contains(lowerKey, sens) {
			return true
		}
	}
	return false
}
