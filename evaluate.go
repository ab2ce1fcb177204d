// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envschema

// Evaluate resolves every field of the schema against the raw mapping.
// A failing field never stops evaluation of the remaining fields, so
// the returned errors describe every problem, in schema order.
//
// Defaults are used as-is. See [EvaluateDefaults] to validate them too.
func Evaluate(s Schema, raw map[string]string) (Config, []error) {
	return evaluate(s, raw, false)
}

// EvaluateDefaults is like [Evaluate] but default values also go
// through the allowed values, pattern and custom validation checks.
func EvaluateDefaults(s Schema, raw map[string]string) (Config, []error) {
	return evaluate(s, raw, true)
}

func evaluate(s Schema, raw map[string]string, validateDefaults bool) (Config, []error) {
	cfg := newConfig(len(s))
	var errs []error
	for _, f := range s {
		v, ok, err := evaluateField(f, raw, validateDefaults)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			continue
		}
		cfg.set(f, v)
	}
	return cfg, errs
}

func evaluateField(f Field, raw map[string]string, validateDefaults bool) (Value, bool, error) {
	s, present := raw[f.Name]
	if !present {
		if !f.Default.IsSet() {
			if f.Required {
				return Value{}, false, MissingRequiredFieldError{Field: f.Name}
			}
			return Value{}, false, nil
		}
		if !validateDefaults {
			return f.Default, true, nil
		}
		err := Validate(f, f.Default)
		if err != nil {
			return Value{}, false, err
		}
		return f.Default, true, nil
	}

	v, err := Coerce(f, s)
	if err != nil {
		return Value{}, false, err
	}
	err = Validate(f, v)
	if err != nil {
		return Value{}, false, err
	}
	return v, true, nil
}
