// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	errNotANumber  = errors.New("not a finite number")
	errNotABoolean = errors.New("expected exactly true or false")
	errNotAList    = errors.New("not a list literal")
)

// ElementTypeError occurs when an array element can not be
// represented or, with [Field.StrictItems], is not of the item type.
type ElementTypeError struct {
	Index int
	Want  Type
	Got   any
}

// Error implements the [builtin.error] interface.
func (e ElementTypeError) Error() string {
	if e.Want == "" {
		return fmt.Sprintf("array element %d has unsupported type %T", e.Index, e.Got)
	}
	return fmt.Sprintf("array element %d must be of type '%s', got %T", e.Index, e.Want, e.Got)
}

// Coerce converts raw into a [Value] of the field's declared type.
// Any failure is returned as a [TypeCoercionError].
func Coerce(f Field, raw string) (Value, error) {
	v, err := coerce(f, raw)
	if err != nil {
		return Value{}, TypeCoercionError{
			Field: f.Name,
			Type:  f.Type,
			Cause: err,
		}
	}
	return v, nil
}

func coerce(f Field, raw string) (Value, error) {
	switch f.Type {
	case TypeString:
		return StringValue(raw), nil
	case TypeNumber:
		return parseNumber(raw)
	case TypeBoolean:
		return parseBool(raw)
	case TypeArray:
		return parseArray(raw, f.Items, f.StrictItems)
	default:
		return Value{}, fmt.Errorf("unknown type '%s'", f.Type)
	}
}

func parseNumber(raw string) (Value, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{}, errNotANumber
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return Value{}, errNotANumber
	}
	return NumberValue(n), nil
}

func parseBool(raw string) (Value, error) {
	switch raw {
	case "true":
		return BoolValue(true), nil
	case "false":
		return BoolValue(false), nil
	default:
		return Value{}, errNotABoolean
	}
}

func parseArray(raw string, items Type, strict bool) (Value, error) {
	var elems []any
	err := json.Unmarshal([]byte(raw), &elems)
	if err != nil {
		return Value{}, err
	}
	// a bare null literal decodes into a nil slice
	if elems == nil {
		return Value{}, errNotAList
	}

	arr := make([]Value, len(elems))
	for i, elem := range elems {
		v, err := ValueOf(elem)
		if err != nil || !v.Type().IsPrimitive() {
			return Value{}, ElementTypeError{Index: i, Got: elem}
		}
		if strict && v.Type() != items {
			return Value{}, ElementTypeError{Index: i, Want: items, Got: elem}
		}
		arr[i] = v
	}
	return Value{typ: TypeArray, arr: arr}, nil
}
