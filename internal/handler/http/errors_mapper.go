package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/service"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/internal/utils"
	"github.com/MKhiriev/go-user-directory/internal/validators"
	"github.com/MKhiriev/go-user-directory/models"
)

// Machine-readable error codes of the API error envelope. Clients are
// expected to branch on these, never on the human-readable message.
const (
	codeUserNotFound      = "USER_NOT_FOUND"
	codeUserAlreadyExists = "USER_ALREADY_EXISTS"
	codeValidationFailed  = "VALIDATION_FAILED"
	codeUnauthorized      = "UNAUTHORIZED"
	codeForbidden         = "FORBIDDEN"
	codeInternalError     = "INTERNAL_ERROR"
)

var errorStatusMap = map[error]int{
	store.ErrUserNotFound:      http.StatusNotFound,
	store.ErrUserAlreadyExists: http.StatusConflict,

	validators.ErrValidationFailed: http.StatusBadRequest,
	service.ErrInvalidDataProvided: http.StatusBadRequest,

	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

var errorCodeMap = map[error]string{
	store.ErrUserNotFound:      codeUserNotFound,
	store.ErrUserAlreadyExists: codeUserAlreadyExists,

	validators.ErrValidationFailed: codeValidationFailed,
	service.ErrInvalidDataProvided: codeValidationFailed,

	service.ErrTokenIsExpiredOrInvalid: codeUnauthorized,
}

// messageByCode holds the canonical client-facing message per code. Internal
// error text never reaches the response body.
var messageByCode = map[string]string{
	codeUserNotFound:      "user not found",
	codeUserAlreadyExists: "username or email is already taken",
	codeValidationFailed:  "validation failed",
	codeUnauthorized:      "full authentication is required to access this resource",
	codeForbidden:         "access denied",
	codeInternalError:     "an unexpected internal error occurred",
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func codeFromError(err error) string {
	for target, code := range errorCodeMap {
		if errors.Is(err, target) {
			return code
		}
	}
	return codeInternalError
}

// writeError translates a service- or store-level failure into the uniform
// error envelope. Field-level details are attached when err carries them.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	code := codeFromError(err)

	response := models.NewErrorResponse(code, messageByCode[code], status, r.URL.Path)
	response.CorrelationID = utils.GetTraceIDFromContext(r.Context())

	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		response.FieldErrors = validationErr.Fields
	}

	if status == http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Str("path", r.URL.Path).Msg("request failed with internal error")
	}

	utils.WriteJSON(w, response, status)
}

// writeStatusError emits an envelope for failures decided at the transport
// layer itself (authentication, authorization), where no service error value
// exists to translate.
func (h *Handler) writeStatusError(w http.ResponseWriter, r *http.Request, status int, code string) {
	response := models.NewErrorResponse(code, messageByCode[code], status, r.URL.Path)
	response.CorrelationID = utils.GetTraceIDFromContext(r.Context())

	utils.WriteJSON(w, response, status)
}
