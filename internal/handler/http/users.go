package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/internal/utils"
	"github.com/MKhiriev/go-user-directory/internal/validators"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/go-chi/chi/v5"
)

// listUsers serves GET /api/users. Admin only.
//
// A non-blank "search" query parameter narrows the listing to users whose
// username, email, first name, or last name contains the term
// case-insensitively; a blank or absent term lists everyone. Pagination
// parameters are resolved before the service is invoked.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		h.writeStatusError(w, r, http.StatusUnauthorized, codeUnauthorized)
		return
	}
	if !principal.IsAdmin() {
		h.writeStatusError(w, r, http.StatusForbidden, codeForbidden)
		return
	}

	page, err := h.resolvePageRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	term := strings.TrimSpace(r.URL.Query().Get("search"))

	var result models.Page[models.User]
	if term != "" {
		result, err = h.services.UserService.Search(r.Context(), term, page)
	} else {
		result, err = h.services.UserService.FindAll(r.Context(), page)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, toUserResponsePage(result), http.StatusOK)
}

// getUserByID serves GET /api/users/{id}. Admin or self.
//
// Ownership is evaluated against the target record: a non-admin caller may
// only read the record whose username equals their own identity. When the id
// does not exist, a non-admin caller gets 403 — the predicate fails before
// existence is confirmed, so the response never reveals whether the id is
// taken. Admins get the plain 404.
func (h *Handler) getUserByID(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		h.writeStatusError(w, r, http.StatusUnauthorized, codeUnauthorized)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) && !principal.IsAdmin() {
			h.writeStatusError(w, r, http.StatusForbidden, codeForbidden)
			return
		}
		h.writeError(w, r, err)
		return
	}

	if !principal.IsAdmin() && !principal.Is(user.Username) {
		h.writeStatusError(w, r, http.StatusForbidden, codeForbidden)
		return
	}

	utils.WriteJSON(w, models.NewUserResponse(user), http.StatusOK)
}

// getUserByUsername serves GET /api/users/username/{username}. Admin or self.
// Here ownership needs no record lookup: the path parameter itself is the
// identity to compare against.
func (h *Handler) getUserByUsername(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		h.writeStatusError(w, r, http.StatusUnauthorized, codeUnauthorized)
		return
	}

	username := chi.URLParam(r, "username")
	if !principal.IsAdmin() && !principal.Is(username) {
		h.writeStatusError(w, r, http.StatusForbidden, codeForbidden)
		return
	}

	user, err := h.services.UserService.FindByUsername(r.Context(), username)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.NewUserResponse(user), http.StatusOK)
}

// createUser serves POST /api/users. Admin only.
//
// The payload is validated before the service is invoked; a constraint
// violation detected at the storage level surfaces as 409. On success the
// response carries 201, a Location header pointing at the new resource, and
// the created record.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		h.writeStatusError(w, r, http.StatusUnauthorized, codeUnauthorized)
		return
	}
	if !principal.IsAdmin() {
		h.writeStatusError(w, r, http.StatusForbidden, codeForbidden)
		return
	}

	var draft models.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Err(err).Str("func", "*Handler.createUser").Msg("invalid JSON was passed")
		h.writeStatusError(w, r, http.StatusBadRequest, codeValidationFailed)
		return
	}

	if err := h.validator.Validate(r.Context(), draft); err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.services.UserService.Create(r.Context(), draft.ToUser())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/users/%d", created.ID))
	utils.WriteJSON(w, models.NewUserResponse(created), http.StatusCreated)
}

// updateUser serves PUT /api/users/{id}. Admin or self, with the same
// target-record ownership rule as getUserByID. The predicate is evaluated
// before the body is read, so a forbidden request causes no side effects.
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		h.writeStatusError(w, r, http.StatusUnauthorized, codeUnauthorized)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	target, err := h.services.UserService.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) && !principal.IsAdmin() {
			h.writeStatusError(w, r, http.StatusForbidden, codeForbidden)
			return
		}
		h.writeError(w, r, err)
		return
	}
	if !principal.IsAdmin() && !principal.Is(target.Username) {
		h.writeStatusError(w, r, http.StatusForbidden, codeForbidden)
		return
	}

	var draft models.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Err(err).Str("func", "*Handler.updateUser").Msg("invalid JSON was passed")
		h.writeStatusError(w, r, http.StatusBadRequest, codeValidationFailed)
		return
	}

	if err := h.validator.Validate(r.Context(), draft); err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.services.UserService.Update(r.Context(), id, draft.ToUser())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.NewUserResponse(updated), http.StatusOK)
}

// deleteUser serves DELETE /api/users/{id}. Admin only. Responds 204 with no
// body on success; deleting an id that no longer exists is 404, never a
// silent success.
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		h.writeStatusError(w, r, http.StatusUnauthorized, codeUnauthorized)
		return
	}
	if !principal.IsAdmin() {
		h.writeStatusError(w, r, http.StatusForbidden, codeForbidden)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.UserService.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// existsByUsername serves GET /api/users/exists/username/{username}.
// Any authenticated caller; the response body is a bare JSON boolean.
func (h *Handler) existsByUsername(w http.ResponseWriter, r *http.Request) {
	exists, err := h.services.UserService.ExistsByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, exists, http.StatusOK)
}

// existsByEmail serves GET /api/users/exists/email/{email}.
// Any authenticated caller; the response body is a bare JSON boolean.
func (h *Handler) existsByEmail(w http.ResponseWriter, r *http.Request) {
	exists, err := h.services.UserService.ExistsByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, exists, http.StatusOK)
}

// parseIDParam reads the {id} path parameter as a positive integer.
func parseIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, &validators.ValidationError{Fields: []models.FieldError{{
			Field:         "id",
			RejectedValue: raw,
			Message:       "must be a positive integer",
		}}}
	}
	return id, nil
}

// toUserResponsePage projects a page of user entities onto their transfer
// representation, keeping every envelope field intact.
func toUserResponsePage(page models.Page[models.User]) models.Page[models.UserResponse] {
	content := make([]models.UserResponse, 0, len(page.Content))
	for _, user := range page.Content {
		content = append(content, models.NewUserResponse(user))
	}

	return models.Page[models.UserResponse]{
		Content:          content,
		Page:             page.Page,
		Size:             page.Size,
		TotalElements:    page.TotalElements,
		TotalPages:       page.TotalPages,
		First:            page.First,
		Last:             page.Last,
		NumberOfElements: page.NumberOfElements,
		Empty:            page.Empty,
	}
}
