// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/z5labs/envschema"
	"github.com/z5labs/envschema/logsink"
	"github.com/z5labs/envschema/pkg/maskslog"
	"github.com/z5labs/envschema/pkg/otelconfig"
	"github.com/z5labs/envschema/pkg/otelslog"
	"github.com/z5labs/envschema/schemafile"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "envschema",
		Short:        "Validate environment configuration against a schema",
		SilenceUsage: true,
	}
	cmd.AddCommand(
		newCheckCmd(),
		newPrintCmd(),
	)
	return cmd
}

type loadFlags struct {
	schemaPath       string
	envFile          string
	strategy         string
	validateDefaults bool
	trace            bool
	template         bool
}

func (lf *loadFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&lf.schemaPath, "schema", "s", "", "path to the YAML schema")
	flags.StringVarP(&lf.envFile, "env-file", "e", "", "optional NAME=value file used as a fallback for the environment")
	flags.StringVar(&lf.strategy, "strategy", string(envschema.StrategyThrow), "error strategy: throw, log, silent or default")
	flags.BoolVar(&lf.validateDefaults, "validate-defaults", false, "also validate default values")
	flags.BoolVar(&lf.trace, "trace", false, "write the load span to stderr")
	flags.BoolVar(&lf.template, "template", false, "render the env file as a text/template before parsing it")
	_ = cmd.MarkFlagRequired("schema")
}

type loadResult struct {
	schema envschema.Schema
	cfg    envschema.Config
	log    *slog.Logger
}

func (lf *loadFlags) load(cmd *cobra.Command) (_ loadResult, err error) {
	s, err := schemafile.Load(lf.schemaPath)
	if err != nil {
		return loadResult{}, err
	}

	logger := newLogger(cmd.ErrOrStderr(), s)

	opts := []envschema.LoadOption{
		envschema.WithErrorStrategy(envschema.ErrorStrategy(lf.strategy)),
		envschema.WithSink(logsink.Slog(logger)),
	}
	if lf.envFile != "" {
		opts = append(opts, envschema.FromFile(lf.envFile))
	}
	if lf.template {
		opts = append(opts, envschema.WithFileTemplate())
	}
	if lf.validateDefaults {
		opts = append(opts, envschema.ValidateDefaults())
	}
	if lf.trace {
		tp, tpErr := otelconfig.Local(cmd.Context(), otelconfig.Out(cmd.ErrOrStderr()))
		if tpErr != nil {
			return loadResult{}, tpErr
		}
		defer func() {
			err = errors.Join(err, tp.Shutdown(context.Background()))
		}()
		opts = append(opts, envschema.WithTracerProvider(tp))
	}

	cfg, err := envschema.Load(cmd.Context(), s, opts...)
	if err != nil {
		return loadResult{}, err
	}
	return loadResult{schema: s, cfg: cfg, log: logger}, nil
}

func newLogger(w io.Writer, s envschema.Schema) *slog.Logger {
	h := maskslog.NewHandler(
		otelslog.NewHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{})),
		maskslog.Keys(s.Sensitive()...),
	)
	return slog.New(h)
}
