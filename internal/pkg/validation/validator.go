// Package validation validates decoded request bodies with
// go-playground/validator and reports failures per JSON field.
//
//	type registerRequest struct {
//	    Email    string `json:"email" validate:"required,email,max=254"`
//	    Username string `json:"username" validate:"required,max=150,username"`
//	}
//
//	if errs := validation.Validate(&req); errs != nil {
//	    respond.FieldErrors(w, errs)
//	    return
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

// FieldErrors maps a JSON field path ("name", "ingredients[0].amount") to
// its messages.
type FieldErrors map[string][]string

// Error implements error.
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(fe[k], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends msg to field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// GetValidator returns the shared validator. Field names in errors are the
// json tag names.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// Validate checks s and returns nil when it is valid.
func Validate(s any) FieldErrors {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"non_field_errors": {err.Error()}}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		out.Add(fieldPath(fe), message(fe))
	}
	return out
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "username":
		return "Enter a valid username. Letters, digits and @/./+/-/_ only."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Ensure this field has no more than %s elements.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Ensure this field has at least %s elements.", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "unique":
		return "Items must be unique."
	case "ne":
		return fmt.Sprintf("This value cannot be %q.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}
