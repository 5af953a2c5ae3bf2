package http

import (
	"net/http"
)

// getServerVersion reports the running server version as plain text.
// The route is public so clients can check compatibility before logging in.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(version))
}
