package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidationErrors maps json field names to a readable message
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for f, m := range v {
		parts = append(parts, f+": "+m)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// Validator wraps go-playground/validator with the custom tags used by the models
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the slug tag and reports fields by their json name
func NewValidator() *Validator {
	v := validator.New()
	if err := v.RegisterValidation("slug", validateSlug); err != nil {
		zap.S().Fatalw("failed to register 'slug' validator", "error", err)
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

// Struct validates every field of s
func (v *Validator) Struct(s interface{}) error {
	return v.translate(v.validate.Struct(s))
}

// Partial validates only the named struct fields of s
func (v *Validator) Partial(s interface{}, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return v.translate(v.validate.StructPartial(s, fields...))
}

func (v *Validator) translate(err error) error {
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	out := ValidationErrors{}
	for _, fe := range validationErrs {
		name := fe.Namespace()
		if i := strings.Index(name, "."); i >= 0 {
			name = name[i+1:]
		}
		out[name] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "slug":
		return "must be lower case letters, digits and single hyphens"
	case "mongodb":
		return "must be a valid id"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "alphanum":
		return "must contain only letters and digits"
	}
	return fmt.Sprintf("failed the %s check", fe.Tag())
}
