package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/internal/validators"
	"github.com/MKhiriev/go-user-directory/models"
)

// resolvePageRequest canonicalises the caller's pagination query parameters.
//
// Resolution rules:
//   - page: defaults to 0; a non-integer or negative value is a caller error.
//   - size: defaults to the configured default; values above the configured
//     maximum are clamped silently; non-integer or sub-1 values are an error.
//   - sort: must name a sortable field when present.
//   - direction: exactly "desc" (case-insensitive) is descending; anything
//     else, including absence, is ascending.
//
// All rejected parameters are reported together as one
// [*validators.ValidationError] so the caller sees every problem at once.
func (h *Handler) resolvePageRequest(r *http.Request) (models.PageRequest, error) {
	query := r.URL.Query()

	var fieldErrors []models.FieldError

	page := 0
	if raw := query.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field:         "page",
				RejectedValue: raw,
				Message:       "must be a non-negative integer",
			})
		} else {
			page = parsed
		}
	}

	size := h.config.Pagination.DefaultPageSize
	if raw := query.Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field:         "size",
				RejectedValue: raw,
				Message:       "must be a positive integer",
			})
		} else {
			size = parsed
		}
	}
	if size > h.config.Pagination.MaxPageSize {
		size = h.config.Pagination.MaxPageSize
	}

	sortField := query.Get("sort")
	if sortField != "" && !store.IsSortableField(sortField) {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field:         "sort",
			RejectedValue: sortField,
			Message:       "is not a sortable field",
		})
	}

	direction := models.SortAsc
	if strings.EqualFold(query.Get("direction"), "desc") {
		direction = models.SortDesc
	}

	if len(fieldErrors) > 0 {
		return models.PageRequest{}, &validators.ValidationError{Fields: fieldErrors}
	}

	return models.PageRequest{
		Page:      page,
		Size:      size,
		SortField: sortField,
		Direction: direction,
	}, nil
}
