// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envschema

import (
	"github.com/z5labs/envschema/internal/try"
)

// Validate applies the field's allowed values, pattern and custom
// validation checks to an already coerced value, in that order.
// Only the first failing check is reported.
func Validate(f Field, v Value) error {
	if f.Type.IsPrimitive() && len(f.AllowedValues) > 0 && !contains(f.AllowedValues, v) {
		return AllowedValuesError{
			Field:     f.Name,
			Value:     v,
			Allowed:   f.AllowedValues,
			Sensitive: f.Sensitive,
		}
	}

	if f.Type.IsPrimitive() && f.Pattern != nil && !f.Pattern.MatchString(v.String()) {
		return PatternMismatchError{
			Field:   f.Name,
			Pattern: f.Pattern.String(),
		}
	}

	if f.Validation == nil {
		return nil
	}
	ok, err := runValidation(f.Validation, v)
	if err != nil || !ok {
		return CustomValidationError{
			Field: f.Name,
			Cause: err,
		}
	}
	return nil
}

func runValidation(validate func(Value) bool, v Value) (ok bool, err error) {
	defer try.Recover(&err)

	return validate(v), nil
}

func contains(vs []Value, v Value) bool {
	for _, x := range vs {
		if x.Equal(v) {
			return true
		}
	}
	return false
}
