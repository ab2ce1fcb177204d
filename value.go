// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envschema

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is the declared type of a [Field] and, equally, the
// type of a [Value].
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
)

// IsPrimitive reports whether t is one of string, number or boolean.
func (t Type) IsPrimitive() bool {
	switch t {
	case TypeString, TypeNumber, TypeBoolean:
		return true
	default:
		return false
	}
}

func (t Type) valid() bool {
	return t.IsPrimitive() || t == TypeArray
}

// Value is a typed configuration value. It holds exactly one of
// a string, a number, a boolean or an array of those primitives.
//
// The zero Value is unset.
type Value struct {
	typ Type
	s   string
	n   float64
	b   bool
	arr []Value
}

// StringValue returns a string Value.
func StringValue(s string) Value {
	return Value{typ: TypeString, s: s}
}

// NumberValue returns a number Value.
func NumberValue(n float64) Value {
	return Value{typ: TypeNumber, n: n}
}

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value {
	return Value{typ: TypeBoolean, b: b}
}

// ArrayValue returns an array Value. Elements are expected to be
// primitives, see [Schema.Validate].
func ArrayValue(vs ...Value) Value {
	arr := make([]Value, len(vs))
	copy(arr, vs)
	return Value{typ: TypeArray, arr: arr}
}

// Type returns the type of the Value or the empty Type if unset.
func (v Value) Type() Type {
	return v.typ
}

// IsSet reports whether v holds a value.
func (v Value) IsSet() bool {
	return v.typ != ""
}

// AsString returns the underlying string if v is a string.
func (v Value) AsString() (string, bool) {
	return v.s, v.typ == TypeString
}

// AsNumber returns the underlying number if v is a number.
func (v Value) AsNumber() (float64, bool) {
	return v.n, v.typ == TypeNumber
}

// AsBool returns the underlying boolean if v is a boolean.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.typ == TypeBoolean
}

// AsArray returns a copy of the underlying elements if v is an array.
func (v Value) AsArray() ([]Value, bool) {
	if v.typ != TypeArray {
		return nil, false
	}
	arr := make([]Value, len(v.arr))
	copy(arr, v.arr)
	return arr, true
}

// String returns the string form of v. Numbers use the shortest
// decimal representation and array elements are joined by commas.
func (v Value) String() string {
	switch v.typ {
	case TypeString:
		return v.s
	case TypeNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case TypeBoolean:
		return strconv.FormatBool(v.b)
	case TypeArray:
		ss := make([]string, len(v.arr))
		for i, e := range v.arr {
			ss[i] = e.String()
		}
		return strings.Join(ss, ",")
	default:
		return ""
	}
}

// Interface returns v as a plain Go value: string, float64, bool
// or []any. An unset Value returns nil.
func (v Value) Interface() any {
	switch v.typ {
	case TypeString:
		return v.s
	case TypeNumber:
		return v.n
	case TypeBoolean:
		return v.b
	case TypeArray:
		xs := make([]any, len(v.arr))
		for i, e := range v.arr {
			xs[i] = e.Interface()
		}
		return xs
	default:
		return nil
	}
}

// Equal reports whether v and o have the same type and contents.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeString:
		return v.s == o.s
	case TypeNumber:
		return v.n == o.n
	case TypeBoolean:
		return v.b == o.b
	case TypeArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// UnsupportedValueError is returned by [ValueOf] when given a Go
// value which can not be represented as a [Value].
type UnsupportedValueError struct {
	Value any
}

// Error implements the [builtin.error] interface.
func (e UnsupportedValueError) Error() string {
	return fmt.Sprintf("unsupported config value type: %T", e.Value)
}

// ValueOf converts a plain Go value into a [Value]. It accepts
// strings, booleans, any integer or float type and slices of those.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		return t, nil
	case string:
		return StringValue(t), nil
	case bool:
		return BoolValue(t), nil
	case float64:
		return NumberValue(t), nil
	case float32:
		return NumberValue(float64(t)), nil
	case int:
		return NumberValue(float64(t)), nil
	case int8:
		return NumberValue(float64(t)), nil
	case int16:
		return NumberValue(float64(t)), nil
	case int32:
		return NumberValue(float64(t)), nil
	case int64:
		return NumberValue(float64(t)), nil
	case uint:
		return NumberValue(float64(t)), nil
	case uint8:
		return NumberValue(float64(t)), nil
	case uint16:
		return NumberValue(float64(t)), nil
	case uint32:
		return NumberValue(float64(t)), nil
	case uint64:
		return NumberValue(float64(t)), nil
	case []string:
		return sliceValue(t)
	case []float64:
		return sliceValue(t)
	case []int:
		return sliceValue(t)
	case []bool:
		return sliceValue(t)
	case []any:
		return sliceValue(t)
	default:
		return Value{}, UnsupportedValueError{Value: x}
	}
}

func sliceValue[T any](xs []T) (Value, error) {
	arr := make([]Value, len(xs))
	for i, x := range xs {
		v, err := ValueOf(x)
		if err != nil {
			return Value{}, err
		}
		if !v.typ.IsPrimitive() {
			return Value{}, UnsupportedValueError{Value: x}
		}
		arr[i] = v
	}
	return Value{typ: TypeArray, arr: arr}, nil
}
