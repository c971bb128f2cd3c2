package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// TagEmail validates a string field with the contact form email rule
	TagEmail = "dept_email"
	// TagPhone validates a string field with the contact form phone rule;
	// empty values pass
	TagPhone = "dept_phone"
)

// RegisterValidators adds the contact form format tags to v
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation(TagEmail, func(fl validator.FieldLevel) bool {
		return IsEmail(strings.TrimSpace(fl.Field().String()))
	}); err != nil {
		return err
	}

	return v.RegisterValidation(TagPhone, func(fl validator.FieldLevel) bool {
		value := strings.TrimSpace(fl.Field().String())
		return value == "" || IsPhone(value)
	})
}

// NewValidator returns a validator with the contact form tags registered
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterValidators(v); err != nil {
		// Registration only fails for empty tags or nil funcs.
		panic(err)
	}
	return v
}
