// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package logsink adapts common loggers into sinks for configuration
// load errors. Every sink reports a message at error level.
package logsink

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

// SlogSink reports messages to a [slog.Logger].
type SlogSink struct {
	logger *slog.Logger
	level  slog.Level
}

// Slog returns a sink which logs to logger at [slog.LevelError].
func Slog(logger *slog.Logger) SlogSink {
	return SlogLevel(logger, slog.LevelError)
}

// SlogLevel returns a sink which logs to logger at the given level.
func SlogLevel(logger *slog.Logger, level slog.Level) SlogSink {
	return SlogSink{
		logger: logger,
		level:  level,
	}
}

// Report implements the envschema.Sink interface.
func (s SlogSink) Report(ctx context.Context, msg string) {
	s.logger.Log(ctx, s.level, msg)
}

// ZapSink reports messages to a [zap.Logger].
type ZapSink struct {
	logger *zap.Logger
}

// Zap returns a sink which logs to logger.
func Zap(logger *zap.Logger) ZapSink {
	return ZapSink{logger: logger}
}

// Report implements the envschema.Sink interface.
func (s ZapSink) Report(_ context.Context, msg string) {
	s.logger.Error(msg)
}

// LogrusSink reports messages to a [logrus.Logger].
type LogrusSink struct {
	logger *logrus.Logger
}

// Logrus returns a sink which logs to logger.
func Logrus(logger *logrus.Logger) LogrusSink {
	return LogrusSink{logger: logger}
}

// Report implements the envschema.Sink interface.
func (s LogrusSink) Report(ctx context.Context, msg string) {
	s.logger.WithContext(ctx).Error(msg)
}

// WriterSink writes each message, followed by a newline, to an io.Writer.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// Writer returns a sink which writes plain lines to w, e.g. os.Stderr.
func Writer(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Report implements the envschema.Sink interface.
func (s *WriterSink) Report(_ context.Context, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprintln(s.w, msg)
}
