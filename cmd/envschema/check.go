// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var lf loadFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the configuration satisfies the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := lf.load(cmd)
			if err != nil {
				return err
			}

			attrs := make([]any, 0, res.cfg.Len())
			for _, k := range res.cfg.Keys() {
				attrs = append(attrs, slog.String(k, res.cfg.Get(k).String()))
			}
			res.log.InfoContext(cmd.Context(), "resolved configuration", attrs...)

			var missing []string
			for _, name := range res.schema.Names() {
				if !res.cfg.Has(name) {
					missing = append(missing, name)
				}
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d of %d fields resolved\n", res.cfg.Len(), len(res.schema))
			if err != nil {
				return err
			}
			for _, name := range missing {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "  unresolved: %s\n", name)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	lf.register(cmd)
	return cmd
}
