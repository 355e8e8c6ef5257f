package rest

import (
	"net/http"
	"strings"
	"time"

	"fastusers/cmd/resource"
)

// handleLogin implements the password login flow. It accepts the OAuth2
// password-grant form shape (username/password fields) as well as a JSON body.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	username, pass, ok := loginCredentials(w, r, h.cfg.MaxBodyBytes)
	if !ok {
		writeError(w, http.StatusBadRequest, "Bad request")
		return
	}

	ctx := r.Context()
	u, err := h.store.GetUserByUsername(ctx, username)
	if err != nil {
		if resource.IsNotFound(err) {
			// Burn a hash comparison anyway so missing users take as long
			// as wrong passwords.
			_, _ = h.pwCfg.Verify(dummyHash, pass)
			unauthorized(w, "Incorrect username or password")
			return
		}
		h.log.Error("rest.login.lookup.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	match, err := h.pwCfg.Verify(u.PasswordHash, pass)
	if err != nil || !match {
		unauthorized(w, "Incorrect username or password")
		return
	}

	now := time.Now().UTC()
	access, _, err := h.tokens.Issue(u.Username, u.ID, now)
	if err != nil {
		h.log.Error("rest.login.issue.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.store.TouchLastAccess(ctx, u.ID, now); err != nil {
		h.log.Warn("rest.login.touch_last_access.fail", "user_id", u.ID, "err", err)
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: access, TokenType: "bearer"})
}

// dummyHash is a valid bcrypt hash of a throwaway value, used to keep login
// timing uniform when the username does not exist.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func loginCredentials(w http.ResponseWriter, r *http.Request, maxBytes int64) (string, string, bool) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseForm(); err != nil {
			return "", "", false
		}
		username := strings.TrimSpace(r.PostFormValue("username"))
		pass := r.PostFormValue("password")
		if username == "" || pass == "" {
			return "", "", false
		}
		return username, pass, true
	}

	var req loginRequest
	if err := decodeJSON(w, r, maxBytes, &req); err != nil {
		return "", "", false
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return "", "", false
	}
	return username, req.Password, true
}
