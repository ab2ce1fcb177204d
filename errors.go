// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envschema

import (
	"fmt"
	"strings"
)

// MissingRequiredFieldError occurs when a required field has no value
// in any source and no default.
type MissingRequiredFieldError struct {
	Field string
}

// Error implements the [builtin.error] interface.
func (e MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("%s is required but not defined", e.Field)
}

// TypeCoercionError occurs when a raw string can not be converted
// to the declared type of its field.
type TypeCoercionError struct {
	Field string
	Type  Type
	Cause error
}

// Error implements the [builtin.error] interface.
func (e TypeCoercionError) Error() string {
	return fmt.Sprintf("%s cannot be parsed as type '%s'", e.Field, e.Type)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e TypeCoercionError) Unwrap() error {
	return e.Cause
}

// AllowedValuesError occurs when a value is not one of the
// allowed values declared by its field.
type AllowedValuesError struct {
	Field     string
	Value     Value
	Allowed   []Value
	Sensitive bool
}

// Error implements the [builtin.error] interface.
func (e AllowedValuesError) Error() string {
	v := e.Value.String()
	if e.Sensitive {
		v = Mask
	}
	allowed := make([]string, len(e.Allowed))
	for i, a := range e.Allowed {
		allowed[i] = a.String()
	}
	return fmt.Sprintf("%s has invalid value '%s'. Allowed values are: %s", e.Field, v, strings.Join(allowed, ", "))
}

// PatternMismatchError occurs when the string form of a value
// does not match the pattern declared by its field.
type PatternMismatchError struct {
	Field   string
	Pattern string
}

// Error implements the [builtin.error] interface.
func (e PatternMismatchError) Error() string {
	return fmt.Sprintf("%s does not match the required pattern", e.Field)
}

// CustomValidationError occurs when a field's custom validation
// predicate rejects a value. Cause is set if the predicate panicked.
type CustomValidationError struct {
	Field string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e CustomValidationError) Error() string {
	return fmt.Sprintf("%s failed custom validation", e.Field)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e CustomValidationError) Unwrap() error {
	return e.Cause
}

// AggregateError bundles every field error from a single load.
type AggregateError struct {
	Errors []error
}

// Error implements the [builtin.error] interface. The message is
// each field error on its own line.
func (e *AggregateError) Error() string {
	ss := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		ss[i] = err.Error()
	}
	return strings.Join(ss, "\n")
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// UnknownStrategyError occurs when loading with an [ErrorStrategy]
// which is not one of the predefined strategies.
type UnknownStrategyError struct {
	Strategy ErrorStrategy
}

// Error implements the [builtin.error] interface.
func (e UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown error strategy: %q", string(e.Strategy))
}
