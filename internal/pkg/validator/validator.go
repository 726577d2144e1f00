package validator

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"signup-qa/internal/pkg/xerrors"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// Instance returns the shared validator with the suite's custom rules
// registered. Field names in errors come from json tags so they match the
// wire payload.
func Instance() *validator.Validate {
	once.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// nodigits rejects values containing any decimal digit. Used for
		// person-name fields.
		_ = v.RegisterValidation("nodigits", func(fl validator.FieldLevel) bool {
			for _, r := range fl.Field().String() {
				if unicode.IsDigit(r) {
					return false
				}
			}
			return true
		})

		instance = v
	})
	return instance
}

// CustomValidator wraps the shared validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator, converting field errors into an
// AppError so the response middleware renders them in the envelope's data.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return ToAppError(err)
	}
	return nil
}

// New creates an echo.Validator backed by the shared instance.
func New() echo.Validator {
	return &CustomValidator{validator: Instance()}
}

// ToAppError converts validator errors into a VALIDATION_ERROR AppError
// carrying one message per failed field.
func ToAppError(err error) *xerrors.AppError {
	appErr := xerrors.FromCode(xerrors.CodeValidationError)
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			appErr.WithField(fe.Field(), fieldMessage(fe))
		}
	} else {
		appErr.Err = err
	}
	return appErr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Value is too short (min " + fe.Param() + ")."
	case "max":
		return "Value is too long (max " + fe.Param() + ")."
	case "eqfield":
		return "Value does not match " + fe.Param() + "."
	case "nodigits":
		return "Value must not contain digits."
	default:
		return "Invalid value."
	}
}
