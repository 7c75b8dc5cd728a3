// Package calc implements the closed-form calculators behind the lifestyle,
// finance, text and converter widgets.
//
// Every function is pure. Inputs are checked before any arithmetic so a bad
// field produces an *InputError (matching ErrInvalidInput) instead of NaN or
// Inf leaking into a result.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput is matched by every input validation failure.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes which field was rejected and why.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

func invalid(field, format string, args ...any) error {
	return &InputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func inputValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			f := fl.Field().Float()
			return !math.IsNaN(f) && !math.IsInf(f, 0)
		})
		validateInst = v
	})
	return validateInst
}

// check runs the struct tag rules on in and reports the first failure.
func check(in any) error {
	err := inputValidator().Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fe := fieldErrs[0]
	field := toSnake(fe.Field())
	switch fe.Tag() {
	case "required":
		return invalid(field, "is required")
	case "gt":
		return invalid(field, "must be greater than %s", fe.Param())
	case "gte":
		return invalid(field, "must be at least %s", fe.Param())
	case "lt":
		return invalid(field, "must be less than %s", fe.Param())
	case "lte":
		return invalid(field, "must be at most %s", fe.Param())
	case "oneof":
		return invalid(field, "must be one of [%s]", fe.Param())
	case "finite":
		return invalid(field, "must be a finite number")
	default:
		return invalid(field, "failed %q", fe.Tag())
	}
}

// Round rounds x to the given number of decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
