// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package source

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fsFunc func(string) (fs.File, error)

func (f fsFunc) Open(path string) (fs.File, error) {
	return f(path)
}

func TestFileReader_Read(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the fs.FS fails to open the file", func(t *testing.T) {
			openErr := errors.New("failed to open")
			fsys := fsFunc(func(s string) (fs.File, error) {
				return nil, openErr
			})

			r := NewFileReader(fsys, ".env")
			_, err := io.ReadAll(r)
			assert.ErrorIs(t, err, openErr)
		})
	})

	t.Run("will read the file", func(t *testing.T) {
		t.Run("if it exists in the fs.FS", func(t *testing.T) {
			fsys := fstest.MapFS{
				".env": &fstest.MapFile{Data: []byte("HOST=localhost\n")},
			}

			r := NewFileReader(fsys, ".env")
			b, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "HOST=localhost\n", string(b))
			assert.NoError(t, r.Close())
		})
	})
}

func TestFileReader_Close(t *testing.T) {
	t.Run("will not return an error", func(t *testing.T) {
		t.Run("if Close is called before the underlying file has been opened", func(t *testing.T) {
			fsys := fsFunc(func(s string) (fs.File, error) {
				return nil, nil
			})

			r := NewFileReader(fsys, ".env")
			assert.NoError(t, r.Close())
		})
	})
}

func TestFile_Apply(t *testing.T) {
	t.Run("will apply every entry", func(t *testing.T) {
		t.Run("if the file is a valid env file", func(t *testing.T) {
			content := strings.Join([]string{
				"# database settings",
				"DB_HOST=localhost",
				"export DB_PORT=5432",
				`DB_NAME="app db"`,
				"DB_PASSWORD='p@ss=word'",
				"",
				`HOSTS=["a","b"]`,
			}, "\n")
			fsys := fstest.MapFS{
				".env": &fstest.MapFile{Data: []byte(content)},
			}

			m := make(Map)
			err := FromFile(".env", FS(fsys)).Apply(m)
			require.NoError(t, err)

			assert.Equal(t, "localhost", m["DB_HOST"])
			assert.Equal(t, "5432", m["DB_PORT"])
			assert.Equal(t, "app db", m["DB_NAME"])
			assert.Equal(t, "p@ss=word", m["DB_PASSWORD"])
			assert.Equal(t, `["a","b"]`, m["HOSTS"])
		})

		t.Run("if the file is on the operating system", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".env")
			err := os.WriteFile(path, []byte("TEST_VAR=test_value\n"), 0o600)
			require.NoError(t, err)

			m := make(Map)
			err = FromFile(path).Apply(m)
			require.NoError(t, err)
			assert.Equal(t, Map{"TEST_VAR": "test_value"}, m)
		})
	})

	t.Run("will not expand variables", func(t *testing.T) {
		testCases := []struct {
			Name     string
			Line     string
			Expected string
		}{
			{Name: "in unquoted values", Line: "VALUE=pa$word$ENVSCHEMA_EXPAND_TEST", Expected: "pa$word$ENVSCHEMA_EXPAND_TEST"},
			{Name: "in braced references", Line: "VALUE=${ENVSCHEMA_EXPAND_TEST}", Expected: "${ENVSCHEMA_EXPAND_TEST}"},
			{Name: "in double quoted values", Line: `VALUE="x/$ENVSCHEMA_EXPAND_TEST"`, Expected: "x/$ENVSCHEMA_EXPAND_TEST"},
			{Name: "in single quoted values", Line: "VALUE='$ENVSCHEMA_EXPAND_TEST'", Expected: "$ENVSCHEMA_EXPAND_TEST"},
			{Name: "referencing an earlier line", Line: "OTHER=a\nVALUE=$OTHER", Expected: "$OTHER"},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				t.Setenv("ENVSCHEMA_EXPAND_TEST", "leaked")
				fsys := fstest.MapFS{
					".env": &fstest.MapFile{Data: []byte(testCase.Line + "\n")},
				}

				m := make(Map)
				err := FromFile(".env", FS(fsys)).Apply(m)
				require.NoError(t, err)
				assert.Equal(t, testCase.Expected, m["VALUE"])
			})
		}

		t.Run("if the file is UTF-16 encoded", func(t *testing.T) {
			t.Setenv("ENVSCHEMA_EXPAND_TEST", "leaked")

			data := []byte{0xFF, 0xFE}
			for _, c := range []byte("VALUE=$ENVSCHEMA_EXPAND_TEST\n") {
				data = append(data, c, 0x00)
			}
			fsys := fstest.MapFS{
				".env": &fstest.MapFile{Data: data},
			}

			m := make(Map)
			err := FromFile(".env", FS(fsys)).Apply(m)
			require.NoError(t, err)
			assert.Equal(t, "$ENVSCHEMA_EXPAND_TEST", m["VALUE"])
		})

		t.Run("if the file already contains private use runes", func(t *testing.T) {
			fsys := fstest.MapFS{
				".env": &fstest.MapFile{Data: []byte("VALUE=\uE000$HOME\uE001\n")},
			}

			m := make(Map)
			err := FromFile(".env", FS(fsys)).Apply(m)
			require.NoError(t, err)
			assert.Equal(t, "\uE000$HOME\uE001", m["VALUE"])
		})
	})

	t.Run("will apply nothing", func(t *testing.T) {
		t.Run("if the file does not exist", func(t *testing.T) {
			m := make(Map)
			err := FromFile(filepath.Join(t.TempDir(), "missing.env")).Apply(m)
			require.NoError(t, err)
			assert.Empty(t, m)
		})

		t.Run("if the file does not exist in the fs.FS", func(t *testing.T) {
			m := make(Map)
			err := FromFile(".env", FS(fstest.MapFS{})).Apply(m)
			require.NoError(t, err)
			assert.Empty(t, m)
		})
	})

	t.Run("will return an InvalidFileError", func(t *testing.T) {
		t.Run("if a line is not a NAME=value pair", func(t *testing.T) {
			fsys := fstest.MapFS{
				".env": &fstest.MapFile{Data: []byte("HOST=localhost\nthis is not valid\n")},
			}

			err := FromFile(".env", FS(fsys)).Apply(make(Map))

			var ierr InvalidFileError
			require.ErrorAs(t, err, &ierr)
			assert.Equal(t, ".env", ierr.Path)
			assert.NotEmpty(t, ierr.Error())
			assert.Error(t, ierr.Unwrap())
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the file can not be opened for another reason", func(t *testing.T) {
			openErr := errors.New("permission denied")
			fsys := fsFunc(func(s string) (fs.File, error) {
				return nil, openErr
			})

			err := FromFile(".env", FS(fsys)).Apply(make(Map))
			assert.ErrorIs(t, err, openErr)
		})
	})

	t.Run("will render the file as a template", func(t *testing.T) {
		t.Run("if TextTemplate is set", func(t *testing.T) {
			fsys := fstest.MapFS{
				".env": &fstest.MapFile{Data: []byte("REGION={{ region }}\n")},
			}

			m := make(Map)
			err := FromFile(
				".env",
				FS(fsys),
				TextTemplate(TemplateFunc("region", func() string {
					return "us-east-1"
				})),
			).Apply(m)
			require.NoError(t, err)
			assert.Equal(t, "us-east-1", m["REGION"])
		})

		t.Run("with the env function available", func(t *testing.T) {
			t.Setenv("ENVSCHEMA_TEMPLATE_TEST", "from-env")
			fsys := fstest.MapFS{
				".env": &fstest.MapFile{Data: []byte(`VALUE={{ env "ENVSCHEMA_TEMPLATE_TEST" }}` + "\n")},
			}

			m := make(Map)
			err := FromFile(".env", FS(fsys), TextTemplate()).Apply(m)
			require.NoError(t, err)
			assert.Equal(t, "from-env", m["VALUE"])
		})

		t.Run("with the env function bound to an environ", func(t *testing.T) {
			t.Setenv("ENVSCHEMA_TEMPLATE_TEST", "from-process")
			fsys := fstest.MapFS{
				".env": &fstest.MapFile{Data: []byte(`VALUE={{ env "ENVSCHEMA_TEMPLATE_TEST" }}` + "\n")},
			}

			m := make(Map)
			err := FromFile(
				".env",
				FS(fsys),
				TextTemplate(TemplateEnv(environ("ENVSCHEMA_TEMPLATE_TEST=from-environ"))),
			).Apply(m)
			require.NoError(t, err)
			assert.Equal(t, "from-environ", m["VALUE"])
		})

		t.Run("and apply nothing if the file does not exist", func(t *testing.T) {
			m := make(Map)
			err := FromFile(".env", FS(fstest.MapFS{}), TextTemplate()).Apply(m)
			require.NoError(t, err)
			assert.Empty(t, m)
		})
	})
}
