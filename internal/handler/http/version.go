package http

import (
	"net/http"
)

// getServerVersion serves GET /api/public/version: the bare deployed version
// string, unauthenticated, for client compatibility checks.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(h.config.App.Version))
}
