// Package validate is a thin wrapper around go-playground/validator that
// shares one validator instance across the module.
//
// Struct tags follow the validator syntax, e.g. in pkg/layout:
//
//	type Config struct {
//	    TakeChildren  int     `validate:"gte=0"`
//	    InactiveScale float64 `validate:"gt=0,lte=1"`
//	}
package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// get returns a process-wide singleton of the validator.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validatorInst
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}

// Describe flattens validator field errors into one readable line such as
// "InactiveScale must satisfy lte=1; TakeChildren must satisfy gte=0".
// Errors that are not validation errors are returned as-is.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s must satisfy %s (got %v)", fe.Field(), rule, fe.Value()))
	}
	return strings.Join(parts, "; ")
}
