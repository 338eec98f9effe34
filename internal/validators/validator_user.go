package validators

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/MKhiriev/go-user-directory/models"
	"github.com/go-playground/validator/v10"
)

// UserValidator checks incoming user payloads against the declarative rules
// on [models.UserRequest]. Rule failures come back as a [*ValidationError]
// with one entry per rejected field, named after the field's JSON form.
type UserValidator struct {
	validate *validator.Validate
}

func NewUserValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields under their JSON names so error bodies match the payload
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	return &UserValidator{validate: v}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UserRequest:
		return v.validateUserRequest(ctx, value, fields...)
	case *models.UserRequest:
		return v.validateUserRequest(ctx, *value, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *UserValidator) validateUserRequest(ctx context.Context, req models.UserRequest, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, req, fields...)
	} else {
		err = v.validate.StructCtx(ctx, req)
	}
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError: the value itself was not validatable
		return fmt.Errorf("%w: %w", ErrUnsupportedType, err)
	}

	fieldErrors := make([]models.FieldError, 0, len(violations))
	for _, violation := range violations {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field:         violation.Field(),
			RejectedValue: violation.Value(),
			Message:       violationMessage(violation),
		})
	}

	return &ValidationError{Fields: fieldErrors}
}

// violationMessage renders one rule failure as a human-readable message in
// the vocabulary API clients expect.
func violationMessage(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required":
		return "must not be blank"
	case "email":
		return "must be a well-formed email address"
	case "min":
		return fmt.Sprintf("length must be at least %s", violation.Param())
	case "max":
		return fmt.Sprintf("length must be at most %s", violation.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", violation.Param())
	default:
		return fmt.Sprintf("failed rule %q", violation.Tag())
	}
}
