package forms

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/garnizeh/portfolio/pkg/models"
)

// ValidationError maps form fields (by JSON name) to a message.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, fmt.Sprintf("field '%s': %s", f, e.Errors[f]))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

var formValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	registerRules(v)
	return v
})

func registerRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", tag, err))
		}
	}
	mustRegister("is-user-role", oneOf(models.RoleUser, models.RoleAdmin))
	mustRegister("is-skill-type", oneOf(models.SkillTypes...))
	mustRegister("is-project-type", oneOf(models.ProjectTypes...))
}

func oneOf[E ~string](allowed ...E) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		for _, a := range allowed {
			if value == string(a) {
				return true
			}
		}
		return false
	}
}

// Validate checks form against its validate tags. It returns a *ValidationError
// when any rule fails.
func Validate(form any) error {
	err := formValidator().Struct(form)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return &ValidationError{Errors: out}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "datetime":
		return "Must be a date formatted as YYYY-MM-DD"
	case "url":
		return "Must be a valid URL"
	case "is-user-role", "is-skill-type", "is-project-type":
		return "Must be one of the allowed values"
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
