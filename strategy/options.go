// SPDX-License-Identifier: MIT
// Package: attrimpute/strategy
//
// options.go - decoding of the Options map into typed configuration structs.
//
// Contract:
//   - A config field takes part when it carries an `opt:"<key>"` tag. Supported
//     kinds are int, uint64 and float64. Embedded structs are flattened.
//   - Keys are applied in sorted order; the first problem wins.
//   - Integer fields accept only integral values; NaN and ±Inf are rejected.
//   - Range rules live in `validate` tags and are checked by
//     go-playground/validator after every key has been applied.

package strategy

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Options is the parameter map accepted by Strategy.Configure.
type Options map[string]float64

// maxExactInt is the largest integer every float64 below it represents exactly.
const maxExactInt = 1 << 53

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("opt")
	})

	return v
}

// Decode applies opts onto the struct dst points to and validates the result.
// dst is modified in place even when an error is returned, so callers decode
// into a copy of their current configuration. Panics if dst is not a pointer
// to a struct.
//
// Errors: *ConfigurationError for unknown keys, non-integral or non-finite
// values and failed validation rules.
func Decode(strategy string, opts Options, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("strategy: Decode(%T) needs a pointer to a struct", dst))
	}
	fields := optionFields(rv.Elem())

	for _, key := range slices.Sorted(maps.Keys(opts)) {
		val := opts[key]
		f, ok := fields[key]
		if !ok {
			return &ConfigurationError{
				Strategy: strategy, Key: key, Value: val,
				Reason: "unknown option, known: " + strings.Join(slices.Sorted(maps.Keys(fields)), ", "),
			}
		}
		if reason := assign(f, val); reason != "" {
			return &ConfigurationError{Strategy: strategy, Key: key, Value: val, Reason: reason}
		}
	}

	if err := validate.Struct(dst); err != nil {
		return fromValidation(strategy, err)
	}

	return nil
}

// Encode returns the tagged fields of the struct src (or *src) as Options.
func Encode(src any) Options {
	rv := reflect.Indirect(reflect.ValueOf(src))
	out := make(Options)
	for key, f := range optionFields(rv) {
		out[key] = numeric(f)
	}

	return out
}

// Keys lists the option keys recognised by the config struct src, sorted.
func Keys(src any) []string {
	rv := reflect.Indirect(reflect.ValueOf(src))

	return slices.Sorted(maps.Keys(optionFields(rv)))
}

// optionFields maps option keys to settable fields, descending into embedded
// structs.
func optionFields(rv reflect.Value) map[string]reflect.Value {
	out := make(map[string]reflect.Value)
	collectFields(rv, out)

	return out
}

func collectFields(rv reflect.Value, out map[string]reflect.Value) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		key := sf.Tag.Get("opt")
		switch {
		case key != "" && key != "-":
			out[key] = rv.Field(i)
		case key == "" && sf.Anonymous && sf.Type.Kind() == reflect.Struct:
			collectFields(rv.Field(i), out)
		}
	}
}

// assign stores v into f and returns a rejection reason, or "".
func assign(f reflect.Value, v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "must be finite"
	}
	switch f.Kind() {
	case reflect.Float64:
		f.SetFloat(v)
	case reflect.Int:
		if v != math.Trunc(v) || math.Abs(v) > maxExactInt {
			return "must be an integer"
		}
		f.SetInt(int64(v))
	case reflect.Uint64:
		if v != math.Trunc(v) || v < 0 || v > maxExactInt {
			return "must be a non-negative integer"
		}
		f.SetUint(uint64(v))
	default:
		panic(fmt.Sprintf("strategy: unsupported option kind %s", f.Kind()))
	}

	return ""
}

func numeric(f reflect.Value) float64 {
	switch f.Kind() {
	case reflect.Float64:
		return f.Float()
	case reflect.Int:
		return float64(f.Int())
	case reflect.Uint64:
		return float64(f.Uint())
	}

	return math.NaN()
}

// fromValidation turns the first validator failure into a ConfigurationError.
func fromValidation(strategy string, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return fmt.Errorf("%w: %s: %w", ErrConfiguration, strategy, err)
	}
	e := validationErrors[0]

	return &ConfigurationError{
		Strategy: strategy,
		Key:      e.Field(),
		Value:    numeric(reflect.ValueOf(e.Value())),
		Reason:   formatFieldError(e),
	}
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "gte", "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "lte", "max":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", e.Param())
	default:
		return fmt.Sprintf("violates rule %q", e.Tag())
	}
}
