// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package maskslog provides a [slog.Handler] which masks the values
// of sensitive attributes, such as secret configuration fields,
// before they reach the underlying handler.
package maskslog

import (
	"context"
	"log/slog"
)

type options struct {
	attrTransformers map[string]func(slog.Attr) slog.Attr
	msgTransformers  []func(string) string
}

// Option helps configure the Handler.
type Option interface {
	applyOption(*options)
}

type optionFunc func(*options)

func (f optionFunc) applyOption(opts *options) {
	f(opts)
}

// Message registers a function for masking slog.Record messages.
func Message(f func(string) string) Option {
	return optionFunc(func(o *options) {
		o.msgTransformers = append(o.msgTransformers, f)
	})
}

// Attr registers a function for masking a slog.Attr given its key.
// Attrs nested in groups are matched by their own key.
func Attr(key string, f func(slog.Attr) slog.Attr) Option {
	return optionFunc(func(o *options) {
		o.attrTransformers[key] = f
	})
}

// Keys masks every attr whose key is one of keys with [AnonymousStringAttr].
func Keys(keys ...string) Option {
	return optionFunc(func(o *options) {
		for _, k := range keys {
			o.attrTransformers[k] = AnonymousStringAttr
		}
	})
}

// AnonymousStringAttr is a helper function for converting any slog.Attr
// into the anonymized string, "****". It completely ignores the given
// slog.Attr value type and always return a string value.
func AnonymousStringAttr(a slog.Attr) slog.Attr {
	return slog.String(a.Key, "****")
}

// Handler is an slog.Handler.
type Handler struct {
	slog slog.Handler

	attrTransformers map[string]func(slog.Attr) slog.Attr
	msgTransformers  []func(string) string
}

// NewHandler returns a new Handler.
func NewHandler(h slog.Handler, opts ...Option) *Handler {
	o := &options{
		attrTransformers: make(map[string]func(slog.Attr) slog.Attr),
	}
	for _, opt := range opts {
		opt.applyOption(o)
	}
	return &Handler{
		slog:             h,
		attrTransformers: o.attrTransformers,
		msgTransformers:  o.msgTransformers,
	}
}

// Enabled implements the slog.Handler interface.
func (h *Handler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.slog.Enabled(ctx, lvl)
}

// Handle implements the slog.Handler interface.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	msg := record.Message
	for _, f := range h.msgTransformers {
		msg = f(msg)
	}

	nr := slog.NewRecord(record.Time, record.Level, msg, record.PC)
	record.Attrs(func(a slog.Attr) bool {
		nr.AddAttrs(h.mask(a))
		return true
	})
	return h.slog.Handle(ctx, nr)
}

func (h *Handler) mask(a slog.Attr) slog.Attr {
	if len(h.attrTransformers) == 0 {
		return a
	}
	if f, exists := h.attrTransformers[a.Key]; exists {
		return f(a)
	}

	a.Value = a.Value.Resolve()
	if a.Value.Kind() != slog.KindGroup {
		return a
	}
	group := a.Value.Group()
	attrs := make([]slog.Attr, len(group))
	for i, ga := range group {
		attrs[i] = h.mask(ga)
	}
	return slog.Attr{Key: a.Key, Value: slog.GroupValue(attrs...)}
}

// WithAttrs implements the slog.Handler interface.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nr := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		nr[i] = h.mask(a)
	}
	return h.with(h.slog.WithAttrs(nr))
}

// WithGroup implements the slog.Handler interface.
func (h *Handler) WithGroup(name string) slog.Handler {
	return h.with(h.slog.WithGroup(name))
}

func (h *Handler) with(sh slog.Handler) *Handler {
	return &Handler{
		slog:             sh,
		attrTransformers: h.attrTransformers,
		msgTransformers:  h.msgTransformers,
	}
}
