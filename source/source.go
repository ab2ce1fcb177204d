// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package source resolves raw configuration strings from the process
// environment and NAME=value files into a single flat mapping.
package source

// Store represents a flat key value structure.
type Store interface {
	Set(key, value string) error
}

// Source defines valid config sources as those who can
// write their raw key value pairs into a Store.
type Source interface {
	Apply(Store) error
}

// Map is an ordinary map[string]string but implements
// both the Source and Store interfaces.
type Map map[string]string

// Apply implements the Source interface.
func (m Map) Apply(store Store) error {
	for k, v := range m {
		err := store.Set(k, v)
		if err != nil {
			return err
		}
	}
	return nil
}

// Set implements the Store interface. It overrides any previous value.
func (m Map) Set(key, value string) error {
	m[key] = value
	return nil
}

// firstWins ignores keys which have already been set.
type firstWins Map

func (m firstWins) Set(key, value string) error {
	if _, exists := m[key]; exists {
		return nil
	}
	m[key] = value
	return nil
}

// Merge applies each source, in order, into a new Map. Earlier
// sources take precedence: a key set by one source is never
// overridden by a later source.
func Merge(srcs ...Source) (Map, error) {
	m := make(Map)
	for _, src := range srcs {
		err := src.Apply(firstWins(m))
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Resolve returns the process environment extended with the entries
// of the NAME=value file at path for keys the environment does not
// define. An empty path or a missing file resolves to the environment.
func Resolve(path string) (Map, error) {
	if path == "" {
		return Merge(FromEnv())
	}
	return Merge(FromEnv(), FromFile(path))
}
