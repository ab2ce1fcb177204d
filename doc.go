// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package envschema loads typed configuration from the process
// environment and an optional NAME=value file, validated against
// a declared [Schema].
//
// # Sources
//
// The environment always wins. A file given with [FromFile] only
// provides values for keys the environment does not define, and a
// missing file is not an error.
//
// # Fields
//
// Every [Field] declares a [Type]: string, number, boolean or an array
// of one of those. Raw strings are coerced as follows:
//   - string values are used as-is
//   - number values must be a finite decimal number; NaN, Inf and
//     Infinity are rejected
//   - boolean values must be exactly "true" or "false"
//   - array values must be a JSON list literal, e.g. ["a","b"]
//
// A coerced value is then checked against the field's allowed values,
// pattern and custom validation, in that order. Only the first failure
// of a field is reported, but every field is always evaluated.
//
// # Basic Usage
//
//	schema := envschema.Schema{
//	    {Name: "PORT", Type: envschema.TypeNumber, Default: envschema.NumberValue(8080)},
//	    {Name: "API_KEY", Type: envschema.TypeString, Required: true, Sensitive: true},
//	    {
//	        Name:          "LOG_LEVEL",
//	        Type:          envschema.TypeString,
//	        AllowedValues: []envschema.Value{envschema.StringValue("debug"), envschema.StringValue("info")},
//	    },
//	}
//
//	cfg, err := envschema.Load(ctx, schema,
//	    envschema.FromFile(".env"),
//	    envschema.WithErrorStrategy(envschema.StrategyThrow),
//	)
//
// # Error Handling
//
// Field errors are collected and then handed to the [ErrorStrategy]:
//   - throw returns an [*AggregateError] and no configuration
//   - log reports the aggregate message to a [Sink] and returns the partial configuration
//   - silent and default return the partial configuration
package envschema
