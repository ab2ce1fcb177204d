// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package otelconfig builds OpenTelemetry tracer providers for
// tracing configuration loads.
package otelconfig

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// DefaultServiceName is reported when no ServiceName option is given.
const DefaultServiceName = "envschema"

// LocalConfig
type LocalConfig struct {
	ServiceName string
	Out         io.Writer
	Pretty      bool
}

// LocalOption
type LocalOption func(*LocalConfig)

// ServiceName sets the service.name resource attribute.
func ServiceName(name string) LocalOption {
	return func(lc *LocalConfig) {
		lc.ServiceName = name
	}
}

// Out sets where spans are written. Defaults to [os.Stderr].
func Out(w io.Writer) LocalOption {
	return func(lc *LocalConfig) {
		lc.Out = w
	}
}

// Pretty indents every exported span.
func Pretty() LocalOption {
	return func(lc *LocalConfig) {
		lc.Pretty = true
	}
}

// Local returns a tracer provider which writes each span as JSON once
// it ends. Callers must Shutdown the provider.
func Local(ctx context.Context, opts ...LocalOption) (*sdktrace.TracerProvider, error) {
	cfg := LocalConfig{
		ServiceName: DefaultServiceName,
		Out:         os.Stderr,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	exportOpts := []stdouttrace.Option{
		stdouttrace.WithWriter(cfg.Out),
	}
	if cfg.Pretty {
		exportOpts = append(exportOpts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(exportOpts...)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(
		ctx,
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	return tp, nil
}
