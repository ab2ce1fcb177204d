// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envschema

import (
	"encoding"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Mask replaces the value of sensitive fields in any output.
const Mask = "****"

// Config is a resolved configuration. It holds the typed value of
// every field which was either set or defaulted, in schema order.
// Fields which failed validation or were absent are missing.
type Config struct {
	keys      []string
	values    map[string]Value
	sensitive map[string]bool
}

func newConfig(n int) Config {
	return Config{
		keys:      make([]string, 0, n),
		values:    make(map[string]Value, n),
		sensitive: make(map[string]bool),
	}
}

func (c *Config) set(f Field, v Value) {
	c.keys = append(c.keys, f.Name)
	c.values[f.Name] = v
	if f.Sensitive {
		c.sensitive[f.Name] = true
	}
}

// Lookup returns the value of the named field and whether it is present.
func (c Config) Lookup(name string) (Value, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Get returns the value of the named field or an unset Value if absent.
func (c Config) Get(name string) Value {
	return c.values[name]
}

// Has reports whether the named field is present.
func (c Config) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// Keys returns the names of present fields in schema order.
func (c Config) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Len returns the number of present fields.
func (c Config) Len() int {
	return len(c.keys)
}

// IsSensitive reports whether the named field was declared sensitive.
func (c Config) IsSensitive(name string) bool {
	return c.sensitive[name]
}

// Map returns the present fields as plain Go values.
func (c Config) Map() map[string]any {
	m := make(map[string]any, len(c.keys))
	for _, k := range c.keys {
		m[k] = c.values[k].Interface()
	}
	return m
}

// Redacted is like [Config.Map] but sensitive values are replaced by [Mask].
func (c Config) Redacted() map[string]any {
	m := c.Map()
	for k := range c.sensitive {
		m[k] = Mask
	}
	return m
}

// LogValue implements the [slog.LogValuer] interface. Sensitive
// values are always masked.
func (c Config) LogValue() slog.Value {
	attrs := make([]slog.Attr, len(c.keys))
	for i, k := range c.keys {
		if c.sensitive[k] {
			attrs[i] = slog.String(k, Mask)
			continue
		}
		attrs[i] = slog.Any(k, c.values[k].Interface())
	}
	return slog.GroupValue(attrs...)
}

// Decode copies the configuration into v, which must be a pointer
// to a struct or map. Struct fields are matched by their "env" tag.
func (c Config) Decode(v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "env",
		Result:  v,
		DecodeHook: composeDecodeHooks(
			textUnmarshalerHookFunc(),
			timeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(c.Map())
}

var errInvalidDecodeCondition = errors.New("invalid decode condition")

// DecodeError occurs when a config value can not be decoded into
// the destination type, even after applying decode hooks.
type DecodeError struct {
	from  reflect.Value
	to    reflect.Value
	Cause error
}

// Error implements the [builtin.error] interface.
func (e DecodeError) Error() string {
	return fmt.Sprintf("failed to decode value from %s to %s: %s", e.from.Type(), e.to.Type(), e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e DecodeError) Unwrap() error {
	return e.Cause
}

func composeDecodeHooks(hs ...mapstructure.DecodeHookFunc) mapstructure.DecodeHookFuncValue {
	return func(f, t reflect.Value) (any, error) {
		for _, h := range hs {
			v, err := mapstructure.DecodeHookExec(h, f, t)
			if err == nil {
				return v, nil
			}
			if errors.Is(err, errInvalidDecodeCondition) {
				continue
			}
			return nil, DecodeError{
				from:  f,
				to:    t,
				Cause: err,
			}
		}
		return f.Interface(), nil
	}
}

func textUnmarshalerHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return nil, errInvalidDecodeCondition
		}
		result := reflect.New(t).Interface()
		u, ok := result.(encoding.TextUnmarshaler)
		if !ok {
			return nil, errInvalidDecodeCondition
		}
		err := u.UnmarshalText([]byte(data.(string)))
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(result).Elem().Interface(), nil
	}
}

// numbers are float64 so they are read as whole seconds
func timeDurationHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return nil, errInvalidDecodeCondition
		}

		switch f.Kind() {
		case reflect.String:
			return time.ParseDuration(data.(string))
		case reflect.Float64:
			return time.Duration(data.(float64) * float64(time.Second)), nil
		default:
			return nil, errInvalidDecodeCondition
		}
	}
}
