package validate

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Error carries the first violated field of a request payload.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	if err := v.RegisterValidation("pubyear", validPublicationYear); err != nil {
		panic(err)
	}
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			return newError(vErrs[0])
		}
		return err
	}
	return nil
}

// publicationYear must lie in [1000, current year].
func validPublicationYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year >= 1000 && year <= int64(time.Now().Year())
}

func newError(fe validator.FieldError) *Error {
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", field)
	case "email":
		msg = fmt.Sprintf("%s must be a valid email", field)
	case "min":
		msg = fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gte":
		msg = fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "pubyear":
		msg = fmt.Sprintf("%s must be between 1000 and the current year", field)
	default:
		msg = fmt.Sprintf("%s is invalid", field)
	}
	return &Error{Field: field, Message: msg}
}
