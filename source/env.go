// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package source

import (
	"os"
	"strings"
)

// Env represents a Source where its underlying values
// are extracted from environment variables.
type Env struct {
	environ func() []string
}

// FromEnv returns a Source which will apply the environment
// variables available to the current process.
func FromEnv() Env {
	return Env{
		environ: os.Environ,
	}
}

// FromEnviron returns a Source which will apply the "KEY=value"
// pairs returned by environ. It is mostly useful for tests.
func FromEnviron(environ func() []string) Env {
	return Env{
		environ: environ,
	}
}

// Apply implements the Source interface. Entries without
// a "=" or with an empty key are skipped.
func (src Env) Apply(store Store) error {
	env := src.environ()
	for _, pair := range env {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			continue
		}
		err := store.Set(k, v)
		if err != nil {
			return err
		}
	}
	return nil
}
