// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envschema

import (
	"errors"
	"fmt"
	"regexp"
)

// Field describes a single configuration variable.
//
// Type selects between the primitive and array variants. Items is
// only meaningful for arrays while AllowedValues and Pattern are only
// meaningful for primitives.
type Field struct {
	// Name is the variable name looked up in the raw sources.
	Name string

	Type Type

	// Items is the element type of an array field.
	Items Type

	// StrictItems requires every parsed array element to be of
	// type Items. By default elements pass through as parsed.
	StrictItems bool

	Required bool

	// Default is used when the variable is absent from every source.
	// It is trusted as-is and skips AllowedValues, Pattern and Validation
	// unless loading with [ValidateDefaults].
	Default Value

	// Sensitive marks the field for redaction in any output. It has
	// no effect on validation.
	Sensitive bool

	AllowedValues []Value
	Pattern       *regexp.Regexp

	// Validation is a custom predicate over the coerced value.
	Validation func(Value) bool
}

// Schema is an ordered set of uniquely named fields.
type Schema []Field

// Names returns the field names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Sensitive returns the names of all fields marked as sensitive.
func (s Schema) Sensitive() []string {
	var names []string
	for _, f := range s {
		if f.Sensitive {
			names = append(names, f.Name)
		}
	}
	return names
}

// SchemaError describes a malformed field descriptor.
type SchemaError struct {
	Field  string
	Reason string
}

// Error implements the [builtin.error] interface.
func (e SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid schema: %s", e.Reason)
	}
	return fmt.Sprintf("invalid schema field %s: %s", e.Field, e.Reason)
}

// Validate checks that every field descriptor is well formed and that
// field names are unique. All problems are reported together.
func (s Schema) Validate() error {
	seen := make(map[string]struct{}, len(s))
	var errs []error
	for i, f := range s {
		if f.Name == "" {
			errs = append(errs, SchemaError{Reason: fmt.Sprintf("field at index %d has no name", i)})
			continue
		}
		if _, exists := seen[f.Name]; exists {
			errs = append(errs, SchemaError{Field: f.Name, Reason: "duplicate field name"})
			continue
		}
		seen[f.Name] = struct{}{}

		errs = append(errs, f.validate()...)
	}
	return errors.Join(errs...)
}

func (f Field) validate() []error {
	if !f.Type.valid() {
		return []error{SchemaError{Field: f.Name, Reason: fmt.Sprintf("unknown type '%s'", f.Type)}}
	}

	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, SchemaError{Field: f.Name, Reason: fmt.Sprintf(format, args...)})
	}

	if f.Type == TypeArray {
		if !f.Items.IsPrimitive() {
			invalid("array items must be a primitive type, got '%s'", f.Items)
		}
		if len(f.AllowedValues) > 0 {
			invalid("allowed values are not supported for arrays")
		}
		if f.Pattern != nil {
			invalid("pattern is not supported for arrays")
		}
	} else if f.Items != "" {
		invalid("items is only supported for arrays")
	}

	if f.Default.IsSet() {
		if f.Default.Type() != f.Type {
			invalid("default must be of type '%s', got '%s'", f.Type, f.Default.Type())
		}
		for _, e := range f.Default.arr {
			if !e.Type().IsPrimitive() {
				invalid("default array elements must be primitives")
				break
			}
			if f.StrictItems && e.Type() != f.Items {
				invalid("default array elements must be of type '%s'", f.Items)
				break
			}
		}
	}

	for _, v := range f.AllowedValues {
		if v.Type() != f.Type {
			invalid("allowed value '%s' must be of type '%s'", v, f.Type)
		}
	}
	return errs
}
