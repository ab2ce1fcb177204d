// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/z5labs/envschema"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// UnknownOutputError occurs when print is asked for an unsupported format.
type UnknownOutputError struct {
	Output string
}

// Error implements the [builtin.error] interface.
func (e UnknownOutputError) Error() string {
	return fmt.Sprintf("unknown output format: %q", e.Output)
}

func newPrintCmd() *cobra.Command {
	var (
		lf     loadFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the resolved configuration with sensitive values masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "yaml" && output != "json" {
				return UnknownOutputError{Output: output}
			}

			res, err := lf.load(cmd)
			if err != nil {
				return err
			}

			if output == "json" {
				return printJson(cmd.OutOrStdout(), res.cfg)
			}
			return printYaml(cmd.OutOrStdout(), res.cfg)
		},
	}
	lf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml or json")
	return cmd
}

func printJson(w io.Writer, cfg envschema.Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg.Redacted())
}

// yaml keeps schema order, unlike encoding a map.
func printYaml(w io.Writer, cfg envschema.Config) error {
	redacted := cfg.Redacted()

	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range cfg.Keys() {
		var val yaml.Node
		err := val.Encode(redacted[k])
		if err != nil {
			return err
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&val,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	err := enc.Encode(doc)
	if err != nil {
		return err
	}
	return enc.Close()
}
