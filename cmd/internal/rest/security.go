package rest

import (
	"errors"
	"net/http"
	"time"

	"fastusers/cmd/resource"
	"fastusers/cmd/security/token"
)

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, detail)
}

// authenticate resolves the bearer token to an active user and stamps its
// last access time. It writes the error response itself and reports ok=false
// when the request must not proceed.
//
// Expired tokens with a valid signature are accepted only while the
// configuration row has jwt_auto_refresh enabled.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) (resource.User, resource.Configuration, bool) {
	ctx := r.Context()

	cfg, err := h.store.GetConfiguration(ctx)
	if err != nil {
		h.log.Error("rest.auth.configuration.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return resource.User{}, resource.Configuration{}, false
	}

	raw, ok := bearerToken(r)
	if !ok {
		unauthorized(w, "Could not validate credentials")
		return resource.User{}, cfg, false
	}

	now := time.Now().UTC()
	claims, err := h.tokens.Verify(raw, now)
	if err != nil {
		if !errors.Is(err, token.ErrTokenExpired) || !cfg.JWTAutoRefresh {
			unauthorized(w, "Could not validate credentials")
			return resource.User{}, cfg, false
		}
		// Expired but correctly signed: honored under jwt_auto_refresh.
	}

	u, err := h.store.GetUserByUsername(ctx, claims.Username)
	if err != nil {
		if resource.IsNotFound(err) {
			unauthorized(w, "Could not validate credentials")
			return resource.User{}, cfg, false
		}
		h.log.Error("rest.auth.user_lookup.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return resource.User{}, cfg, false
	}
	if u.ID != claims.UserID {
		unauthorized(w, "Could not validate credentials")
		return resource.User{}, cfg, false
	}
	if u.IsBlocked {
		writeError(w, http.StatusBadRequest, "Inactive user")
		return resource.User{}, cfg, false
	}

	if err := h.store.TouchLastAccess(ctx, u.ID, now); err != nil {
		h.log.Warn("rest.auth.touch_last_access.fail", "user_id", u.ID, "err", err)
	}
	u.LastAccessAt = &now

	return u, cfg, true
}

// requireAdmin is authenticate plus the admin guard.
func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) (resource.User, resource.Configuration, bool) {
	u, cfg, ok := h.authenticate(w, r)
	if !ok {
		return resource.User{}, cfg, false
	}
	if !u.IsAdmin {
		unauthorized(w, "Operation not allowed for current user")
		return resource.User{}, cfg, false
	}
	return u, cfg, true
}
