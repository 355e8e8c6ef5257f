package rest

import (
	"net/http"

	"fastusers/cmd/security/password"
)

func (h *Handler) handleGetConfiguration(w http.ResponseWriter, r *http.Request) {
	_, cfg, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toConfigurationResponse(cfg))
}

func (h *Handler) handleUpdateConfiguration(w http.ResponseWriter, r *http.Request) {
	actor, cfg, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req updateConfigurationRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad request")
		return
	}

	if req.CheckEmailDeliverability != nil {
		cfg.CheckEmailDeliverability = *req.CheckEmailDeliverability
	}
	if req.PasswordPolicyStrength != nil {
		s := password.Strength(*req.PasswordPolicyStrength)
		if s != password.StrengthMin && s != password.StrengthMax {
			writeError(w, http.StatusBadRequest, "Invalid password policy strength")
			return
		}
		cfg.PasswordPolicyStrength = s
	}
	if req.JWTAutoRefresh != nil {
		cfg.JWTAutoRefresh = *req.JWTAutoRefresh
	}

	if err := h.store.UpdateConfiguration(r.Context(), &cfg, actor.ID); err != nil {
		h.log.Error("rest.configurations.update.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, toConfigurationResponse(cfg))
}
