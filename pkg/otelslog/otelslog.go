// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package otelslog provides a [slog.Handler] which correlates records,
// such as reports from the log error strategy, with the span that
// was active when they were emitted.
package otelslog

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// DefaultGroup is the attribute group trace ids are added under.
const DefaultGroup = "otel"

// Option helps configure the Handler.
type Option func(*Handler)

// Group overrides the attribute group name. An empty name
// adds trace_id and span_id at the top level.
func Group(name string) Option {
	return func(h *Handler) {
		h.group = name
	}
}

// Handler adds the trace and span id of the span in the record
// context. Records without a valid span pass through unchanged.
type Handler struct {
	slog  slog.Handler
	group string
}

// NewHandler returns a new Handler.
func NewHandler(h slog.Handler, opts ...Option) *Handler {
	oh := &Handler{
		slog:  h,
		group: DefaultGroup,
	}
	for _, opt := range opts {
		opt(oh)
	}
	return oh
}

// Enabled implements the slog.Handler interface.
func (h *Handler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.slog.Enabled(ctx, lvl)
}

// Handle implements the slog.Handler interface.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return h.slog.Handle(ctx, record)
	}

	attrs := []slog.Attr{
		slog.String("trace_id", spanCtx.TraceID().String()),
		slog.String("span_id", spanCtx.SpanID().String()),
	}

	r := record.Clone()
	if h.group == "" {
		r.AddAttrs(attrs...)
		return h.slog.Handle(ctx, r)
	}
	r.AddAttrs(slog.Attr{Key: h.group, Value: slog.GroupValue(attrs...)})
	return h.slog.Handle(ctx, r)
}

// WithAttrs implements the slog.Handler interface.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{slog: h.slog.WithAttrs(attrs), group: h.group}
}

// WithGroup implements the slog.Handler interface.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{slog: h.slog.WithGroup(name), group: h.group}
}
