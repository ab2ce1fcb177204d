// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package maskslog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "super duper secret value"

type logRecord struct {
	Message string `json:"msg"`
	APIKey  string `json:"API_KEY"`
	Host    string `json:"HOST"`
	Config  struct {
		APIKey string `json:"API_KEY"`
		Host   string `json:"HOST"`
	} `json:"config"`
}

func decode(t *testing.T, buf *bytes.Buffer) logRecord {
	t.Helper()

	var record logRecord
	err := json.Unmarshal(buf.Bytes(), &record)
	require.NoError(t, err, buf.String())
	return record
}

func TestHandler_Handle(t *testing.T) {
	t.Run("will not mask attrs", func(t *testing.T) {
		t.Run("if no masking funcs are registered", func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewHandler(slog.NewJSONHandler(&buf, nil)))

			logger.Info("resolved configuration", slog.String("API_KEY", secret))

			record := decode(t, &buf)
			assert.Equal(t, "resolved configuration", record.Message)
			assert.Equal(t, secret, record.APIKey)
		})

		t.Run("if the attr key does not match a masking func", func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Keys("DB_PASSWORD"),
			))

			logger.Info("resolved configuration", slog.String("API_KEY", secret))

			record := decode(t, &buf)
			assert.Equal(t, secret, record.APIKey)
		})
	})

	t.Run("will mask attrs", func(t *testing.T) {
		t.Run("if the attr key is registered with Keys", func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Keys("API_KEY"),
			))

			logger.Info("resolved configuration", slog.String("API_KEY", secret), slog.String("HOST", "localhost"))

			record := decode(t, &buf)
			assert.Equal(t, "****", record.APIKey)
			assert.Equal(t, "localhost", record.Host)
		})

		t.Run("if the attr is nested in a group", func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Keys("API_KEY"),
			))

			logger.Info(
				"resolved configuration",
				slog.Group("config", slog.String("API_KEY", secret), slog.String("HOST", "localhost")),
			)

			record := decode(t, &buf)
			assert.Equal(t, "****", record.Config.APIKey)
			assert.Equal(t, "localhost", record.Config.Host)
		})

		t.Run("if the attr is produced by a slog.LogValuer", func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Keys("API_KEY"),
			))

			logger.Info("resolved configuration", slog.Any("config", valuer{"API_KEY": secret}))

			assert.NotContains(t, buf.String(), secret)
			record := decode(t, &buf)
			assert.Equal(t, "****", record.Config.APIKey)
		})

		t.Run("with a custom masking func", func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Attr("API_KEY", func(a slog.Attr) slog.Attr {
					return slog.String(a.Key, a.Value.String()[:5]+"...")
				}),
			))

			logger.Info("resolved configuration", slog.String("API_KEY", secret))

			record := decode(t, &buf)
			assert.Equal(t, "super...", record.APIKey)
		})
	})

	t.Run("will mask the message", func(t *testing.T) {
		t.Run("if a message func is registered", func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Message(func(s string) string {
					return strings.ReplaceAll(s, secret, "****")
				}),
			))

			logger.Error("API_KEY has invalid value '" + secret + "'")

			record := decode(t, &buf)
			assert.Equal(t, "API_KEY has invalid value '****'", record.Message)
		})
	})
}

type valuer map[string]string

func (v valuer) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(v))
	for k, s := range v {
		attrs = append(attrs, slog.String(k, s))
	}
	return slog.GroupValue(attrs...)
}

func TestHandler_WithAttrs(t *testing.T) {
	t.Run("will mask attrs", func(t *testing.T) {
		t.Run("if the key of a pre-set attr is registered", func(t *testing.T) {
			var buf bytes.Buffer
			var h slog.Handler = NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Keys("API_KEY"),
			)
			h = h.WithAttrs([]slog.Attr{slog.String("API_KEY", secret)})

			slog.New(h).Info("resolved configuration")

			record := decode(t, &buf)
			assert.Equal(t, "****", record.APIKey)
		})

		t.Run("if a record attr is logged through the derived handler", func(t *testing.T) {
			var buf bytes.Buffer
			var h slog.Handler = NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Keys("API_KEY"),
			)
			h = h.WithAttrs([]slog.Attr{slog.String("HOST", "localhost")})

			slog.New(h).Info("resolved configuration", slog.String("API_KEY", secret))

			record := decode(t, &buf)
			assert.Equal(t, "****", record.APIKey)
			assert.Equal(t, "localhost", record.Host)
		})
	})
}

func TestHandler_WithGroup(t *testing.T) {
	t.Run("will not mask the entire group", func(t *testing.T) {
		t.Run("if the group name matches a registered key", func(t *testing.T) {
			var buf bytes.Buffer
			var h slog.Handler = NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Keys("config"),
			)
			h = h.WithGroup("config")

			slog.New(h).Info("resolved configuration", slog.String("HOST", "localhost"))

			record := decode(t, &buf)
			assert.Equal(t, "localhost", record.Config.Host)
		})
	})

	t.Run("will mask sub-attrs", func(t *testing.T) {
		t.Run("if their keys are registered", func(t *testing.T) {
			var buf bytes.Buffer
			var h slog.Handler = NewHandler(
				slog.NewJSONHandler(&buf, nil),
				Keys("API_KEY"),
			)
			h = h.WithGroup("config")

			slog.New(h).Info("resolved configuration", slog.String("API_KEY", secret))

			record := decode(t, &buf)
			assert.Equal(t, "****", record.Config.APIKey)
		})
	})
}
