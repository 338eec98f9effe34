package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-directory/internal/utils"
)

// health serves GET /actuator/health. It is on the unauthenticated allow-list
// so that load balancers and orchestrators can probe liveness.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "UP"}, http.StatusOK)
}

// info serves GET /actuator/info. The route is admin-gated: it exposes
// deployment metadata that has no business on the public surface.
func (h *Handler) info(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]any{
		"app": map[string]string{
			"name":        h.config.App.Name,
			"version":     h.config.App.Version,
			"description": h.config.App.Description,
		},
	}, http.StatusOK)
}
