package models

import "time"

// FieldError describes a single validation failure on one input field.
type FieldError struct {
	// Field is the JSON name of the offending field.
	Field string `json:"field"`

	// RejectedValue is the value the caller supplied.
	RejectedValue any `json:"rejectedValue"`

	// Message is the human-readable constraint description.
	Message string `json:"message"`
}

// ErrorResponse is the uniform error envelope returned by every failing
// request: a machine-readable code, a human message, the HTTP status, the
// originating path, a timestamp, an optional list of per-field validation
// failures, and an optional correlation identifier for tracing.
type ErrorResponse struct {
	Code          string       `json:"code"`
	Message       string       `json:"message"`
	Status        int          `json:"status"`
	Path          string       `json:"path"`
	Timestamp     CivilTime    `json:"timestamp"`
	FieldErrors   []FieldError `json:"fieldErrors,omitempty"`
	CorrelationID string       `json:"correlationId,omitempty"`
}

// NewErrorResponse builds an [ErrorResponse] stamped with the current server
// time. FieldErrors and CorrelationID are left for the caller to fill.
func NewErrorResponse(code, message string, status int, path string) ErrorResponse {
	return ErrorResponse{
		Code:      code,
		Message:   message,
		Status:    status,
		Path:      path,
		Timestamp: CivilTime(time.Now()),
	}
}
