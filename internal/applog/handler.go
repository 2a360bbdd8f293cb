// Package applog adapts the teacher's Google Cloud structured-logging
// handler to this module's domain: a slog.Handler that emits one JSON
// object per line, annotated with the game and turn the log line is
// about.
package applog

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"
)

// Handler writes JSON log lines shaped for Google Cloud's structured
// logging ingestion: a "severity" field instead of slog's numeric level,
// plus whatever attributes were attached via WithAttrs.
type Handler struct {
	writer     io.Writer
	level      slog.Level
	extraAttrs map[string]any
}

// New creates a Handler writing to w at the given minimum level.
func New(w io.Writer, level slog.Level) *Handler {
	return &Handler{writer: w, level: level}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	attrs := map[string]any{}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})
	for k, v := range h.extraAttrs {
		attrs[k] = v
	}

	entry := map[string]any{
		"severity": severity(r.Level),
		"message":  r.Message,
		"time":     r.Time.Format(time.RFC3339Nano),
	}
	for k, v := range attrs {
		entry[k] = v
	}

	return json.NewEncoder(h.writer).Encode(entry)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.extraAttrs = make(map[string]any, len(h.extraAttrs)+len(attrs))
	for k, v := range h.extraAttrs {
		next.extraAttrs[k] = v
	}
	for _, a := range attrs {
		next.extraAttrs[a.Key] = a.Value.Any()
	}
	return &next
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return h
}

func severity(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
