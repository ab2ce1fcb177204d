// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/z5labs/envschema/internal/try"

	"github.com/subosito/gotenv"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// FileReader is an io.Reader that handles opening a file for reading automatically.
type FileReader struct {
	path string

	openOnce sync.Once
	openErr  error
	fs       fs.FS
	file     io.ReadCloser
}

// NewFileReader configures a FileReader. A nil fs.FS opens
// path from the operating system.
func NewFileReader(fsys fs.FS, path string) *FileReader {
	if fsys == nil {
		fsys = osFS{}
	}
	return &FileReader{
		path: path,
		fs:   fsys,
	}
}

// Read implements the io.Reader interface.
func (r *FileReader) Read(b []byte) (int, error) {
	r.openOnce.Do(func() {
		r.file, r.openErr = r.fs.Open(r.path)
	})
	if r.openErr != nil {
		return 0, r.openErr
	}
	if r.file == nil {
		return 0, io.EOF
	}
	return r.file.Read(b)
}

// Close implements the io.Closer interface.
func (r *FileReader) Close() error {
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil
	return err
}

type osFS struct{}

func (osFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// FileOption configures a File source.
type FileOption func(*File)

// FS reads the file from fsys instead of the operating system.
func FS(fsys fs.FS) FileOption {
	return func(f *File) {
		f.fs = fsys
	}
}

// TextTemplate renders the file as a text/template before
// parsing it.
func TextTemplate(opts ...RenderTextTemplateOption) FileOption {
	return func(f *File) {
		f.render = true
		f.tmplOpts = append(f.tmplOpts, opts...)
	}
}

// File represents a Source where its underlying format
// is NAME=value lines, also known as a dotenv file.
type File struct {
	path     string
	fs       fs.FS
	render   bool
	tmplOpts []RenderTextTemplateOption
}

// FromFile returns a Source which will apply the entries
// of the NAME=value file at path.
func FromFile(path string, opts ...FileOption) File {
	f := File{path: path}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// InvalidFileError occurs if the file exists but can not be parsed.
type InvalidFileError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e InvalidFileError) Error() string {
	return fmt.Sprintf("invalid env file %s: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidFileError) Unwrap() error {
	return e.Cause
}

// Apply implements the Source interface. A file which does
// not exist applies nothing and is not an error.
//
// Values are taken literally: $VAR and ${VAR} are never expanded.
func (src File) Apply(store Store) (err error) {
	fr := NewFileReader(src.fs, src.path)
	defer try.Close(&err, fr)

	// UTF-16 files are transcoded so every '$' is a single byte.
	var r io.Reader = transform.NewReader(fr, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	if src.render {
		r = RenderTextTemplate(r, src.tmplOpts...)
	}

	b, err := io.ReadAll(r)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	b, placeholder := hideDollars(b)
	env, err := gotenv.StrictParse(bytes.NewReader(b))
	if err != nil {
		return InvalidFileError{Path: src.path, Cause: err}
	}
	if placeholder != "" {
		for k, v := range env {
			env[k] = strings.ReplaceAll(v, placeholder, "$")
		}
	}
	return Map(env).Apply(store)
}

// hideDollars replaces every '$' with a private use rune absent from b,
// since gotenv expands variables from the process environment.
func hideDollars(b []byte) ([]byte, string) {
	if !bytes.ContainsRune(b, '$') {
		return b, ""
	}
	for r := rune(0xE000); r <= 0xF8FF; r++ {
		placeholder := string(r)
		if bytes.Contains(b, []byte(placeholder)) {
			continue
		}
		return bytes.ReplaceAll(b, []byte("$"), []byte(placeholder)), placeholder
	}
	return b, ""
}
