package rest

import (
	"context"
	"net/http"
	"time"
)

// handleHealth reports database reachability. It is unauthenticated and always
// answers 200; the status lives in the body.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "active"
	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn("rest.health.ping.fail", "err", err)
		status = "inactive"
	}
	writeJSON(w, http.StatusOK, healthResponse{DBStatus: status})
}
