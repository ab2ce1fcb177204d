// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envschema

import (
	"context"
	"io/fs"
	"log/slog"
	"os"

	"github.com/z5labs/envschema/logsink"
	"github.com/z5labs/envschema/source"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/z5labs/envschema"

type loadOptions struct {
	filePath         string
	fs               fs.FS
	strategy         ErrorStrategy
	sink             Sink
	environ          func() []string
	validateDefaults bool
	tracerProvider   trace.TracerProvider
	template         bool
	templateOpts     []source.RenderTextTemplateOption
}

// LoadOption configures [Load].
type LoadOption func(*loadOptions)

// FromFile registers a NAME=value file as a fallback source. Keys
// already present in the environment are never overridden by the
// file. A file which does not exist is ignored.
func FromFile(path string) LoadOption {
	return func(lo *loadOptions) {
		lo.filePath = path
	}
}

// WithFS reads the file given to [FromFile] from fsys instead
// of the operating system.
func WithFS(fsys fs.FS) LoadOption {
	return func(lo *loadOptions) {
		lo.fs = fsys
	}
}

// WithFileTemplate renders the file given to [FromFile] as a
// text/template before parsing it. The "env" template function
// reads the same environment as the load, see [WithEnviron].
func WithFileTemplate(opts ...source.RenderTextTemplateOption) LoadOption {
	return func(lo *loadOptions) {
		lo.template = true
		lo.templateOpts = append(lo.templateOpts, opts...)
	}
}

// WithErrorStrategy sets how field errors are handled. The
// default is [StrategyDefault].
func WithErrorStrategy(s ErrorStrategy) LoadOption {
	return func(lo *loadOptions) {
		lo.strategy = s
	}
}

// WithSink sets where [StrategyLog] reports errors. The default
// sink logs to [slog.Default].
func WithSink(sink Sink) LoadOption {
	return func(lo *loadOptions) {
		lo.sink = sink
	}
}

// WithEnviron replaces [os.Environ] as the ambient environment.
func WithEnviron(environ func() []string) LoadOption {
	return func(lo *loadOptions) {
		lo.environ = environ
	}
}

// ValidateDefaults runs default values through the allowed values,
// pattern and custom validation checks.
func ValidateDefaults() LoadOption {
	return func(lo *loadOptions) {
		lo.validateDefaults = true
	}
}

// WithTracerProvider sets the tracer provider used to trace loads.
// The default is the global provider.
func WithTracerProvider(tp trace.TracerProvider) LoadOption {
	return func(lo *loadOptions) {
		lo.tracerProvider = tp
	}
}

// Load resolves the raw sources, evaluates the schema against them and
// applies the error strategy.
//
// The schema is validated first and source errors are always returned,
// regardless of strategy. With [StrategyThrow], any field error fails the
// load and the returned Config is empty. Every other strategy returns
// the partial Config with failed fields absent.
func Load(ctx context.Context, s Schema, opts ...LoadOption) (_ Config, err error) {
	lo := &loadOptions{
		strategy: StrategyDefault,
		environ:  os.Environ,
	}
	for _, opt := range opts {
		opt(lo)
	}
	if lo.tracerProvider == nil {
		lo.tracerProvider = otel.GetTracerProvider()
	}
	if lo.sink == nil {
		lo.sink = logsink.Slog(slog.Default())
	}

	ctx, span := lo.tracerProvider.Tracer(tracerName).Start(ctx, "envschema.Load", trace.WithAttributes(
		attribute.Int("envschema.fields", len(s)),
		attribute.String("envschema.error_strategy", string(lo.strategy)),
		attribute.Bool("envschema.file", lo.filePath != ""),
	))
	defer span.End()
	defer func() {
		if err == nil {
			return
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}()

	if !lo.strategy.valid() {
		return Config{}, UnknownStrategyError{Strategy: lo.strategy}
	}

	err = s.Validate()
	if err != nil {
		return Config{}, err
	}

	raw, err := resolve(lo)
	if err != nil {
		return Config{}, err
	}

	cfg, errs := evaluate(s, raw, lo.validateDefaults)
	span.SetAttributes(
		attribute.Int("envschema.resolved", cfg.Len()),
		attribute.Int("envschema.errors", len(errs)),
	)

	err = Handle(ctx, errs, lo.strategy, lo.sink)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MustLoad is like [Load] but panics if an error is returned.
func MustLoad(ctx context.Context, s Schema, opts ...LoadOption) Config {
	cfg, err := Load(ctx, s, opts...)
	if err != nil {
		panic(err)
	}
	return cfg
}

func resolve(lo *loadOptions) (source.Map, error) {
	srcs := []source.Source{source.FromEnviron(lo.environ)}
	if lo.filePath != "" {
		var fileOpts []source.FileOption
		if lo.fs != nil {
			fileOpts = append(fileOpts, source.FS(lo.fs))
		}
		if lo.template {
			tmplOpts := append([]source.RenderTextTemplateOption{source.TemplateEnv(lo.environ)}, lo.templateOpts...)
			fileOpts = append(fileOpts, source.TextTemplate(tmplOpts...))
		}
		srcs = append(srcs, source.FromFile(lo.filePath, fileOpts...))
	}
	return source.Merge(srcs...)
}
