package validators

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-user-directory/models"
)

var (
	ErrUnsupportedType  = errors.New("unsupported type for validation")
	ErrUnknownField     = errors.New("unknown field for validation")
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError reports every rejected field of one input value. It wraps
// [ErrValidationFailed] so callers can match it with errors.Is, and exposes
// the per-field details for rendering into an API error body.
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("validation failed for fields: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
