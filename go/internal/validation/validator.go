package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PasswordTag is the struct tag that applies ValidatePassword
const PasswordTag = "fantasy_password"

// Validator checks request structs before they are sent to the backend
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the password rule registered and JSON field names in messages
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	// Registration only fails for an empty tag or nil func
	_ = v.RegisterValidation(PasswordTag, func(fl validator.FieldLevel) bool {
		return ValidatePassword(fl.Field().String()) == nil
	})

	return &Validator{validate: v}
}

// Struct validates s and returns a single readable error for the first violation
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("failed to validate: %w", err)
	}
	return describe(verrs[0])
}

func describe(fe validator.FieldError) error {
	field := fe.Field()
	switch fe.Tag() {
	case PasswordTag:
		if pwErr := ValidatePassword(fmt.Sprint(fe.Value())); pwErr != nil {
			return pwErr
		}
		return fmt.Errorf("%s is invalid", field)
	case "required":
		return fmt.Errorf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Errorf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Errorf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Errorf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Errorf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Errorf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return fmt.Errorf("%s must be a valid email address", field)
	case "url", "uri":
		return fmt.Errorf("%s must be a valid URL", field)
	default:
		return fmt.Errorf("%s failed the %s rule", field, fe.Tag())
	}
}
