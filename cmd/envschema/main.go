// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command envschema validates the process environment, and an
// optional env file, against a YAML schema.
//
//	envschema check --schema schema.yaml --env-file .env --strategy throw
//	envschema print --schema schema.yaml --output json
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		cancel()
		os.Exit(1)
	}
}
