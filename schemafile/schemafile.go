// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package schemafile describes an [envschema.Schema] in YAML.
//
// A schema file lists its fields in order:
//
//	fields:
//	  - name: PORT
//	    type: number
//	    default: 8080
//	  - name: API_KEY
//	    type: string
//	    required: true
//	    sensitive: true
//	  - name: LOG_LEVEL
//	    type: string
//	    allowedValues: [debug, info, warn, error]
//	  - name: ALLOWED_HOSTS
//	    type: array
//	    items: string
//	    default: [localhost]
//
// Custom validation predicates can not be expressed in YAML.
package schemafile

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/z5labs/envschema"
	"github.com/z5labs/envschema/internal/try"

	"gopkg.in/yaml.v3"
)

type document struct {
	Fields []fieldEntry `yaml:"fields"`
}

type fieldEntry struct {
	Name          string `yaml:"name"`
	Type          string `yaml:"type"`
	Items         string `yaml:"items,omitempty"`
	StrictItems   bool   `yaml:"strictItems,omitempty"`
	Required      bool   `yaml:"required,omitempty"`
	Default       any    `yaml:"default,omitempty"`
	Sensitive     bool   `yaml:"sensitive,omitempty"`
	AllowedValues []any  `yaml:"allowedValues,omitempty"`
	Pattern       string `yaml:"pattern,omitempty"`
}

// InvalidYamlError occurs if the schema is not valid YAML.
type InvalidYamlError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e InvalidYamlError) Error() string {
	return fmt.Sprintf("invalid yaml: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidYamlError) Unwrap() error {
	return e.Cause
}

// FieldError occurs when a single field entry can not be converted.
type FieldError struct {
	Field string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e FieldError) Unwrap() error {
	return e.Cause
}

// Parse converts YAML into a validated [envschema.Schema].
func Parse(b []byte) (envschema.Schema, error) {
	var doc document
	err := yaml.Unmarshal(b, &doc)
	if err != nil {
		return nil, InvalidYamlError{Cause: err}
	}

	s := make(envschema.Schema, 0, len(doc.Fields))
	for _, entry := range doc.Fields {
		f, err := entry.field()
		if err != nil {
			return nil, FieldError{Field: entry.Name, Cause: err}
		}
		s = append(s, f)
	}

	err = s.Validate()
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Read parses the schema from r, closing it if it is an [io.Closer].
func Read(r io.Reader) (_ envschema.Schema, err error) {
	defer try.Close(&err, r)

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Load reads and parses the schema file at path.
func Load(path string) (envschema.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return Read(f)
}

func (e fieldEntry) field() (envschema.Field, error) {
	f := envschema.Field{
		Name:        e.Name,
		Type:        envschema.Type(e.Type),
		Items:       envschema.Type(e.Items),
		StrictItems: e.StrictItems,
		Required:    e.Required,
		Sensitive:   e.Sensitive,
	}

	if e.Default != nil {
		v, err := envschema.ValueOf(e.Default)
		if err != nil {
			return f, fmt.Errorf("default: %w", err)
		}
		f.Default = v
	}

	for _, x := range e.AllowedValues {
		v, err := envschema.ValueOf(x)
		if err != nil {
			return f, fmt.Errorf("allowed values: %w", err)
		}
		f.AllowedValues = append(f.AllowedValues, v)
	}

	if e.Pattern != "" {
		re, err := regexp.Compile(e.Pattern)
		if err != nil {
			return f, fmt.Errorf("pattern: %w", err)
		}
		f.Pattern = re
	}
	return f, nil
}
