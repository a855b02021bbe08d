package handler

import (
	"net/http"

	"explorer/internal/httputil"
)

// HealthCheck reports liveness.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// NotFound is the fallback for unmatched routes, keeping the error envelope
// consistent across the whole surface.
func NotFound(w http.ResponseWriter, r *http.Request) {
	httputil.RespondError(w, http.StatusNotFound, httputil.CodeNotFound, "route not found")
}
