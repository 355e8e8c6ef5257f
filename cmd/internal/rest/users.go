package rest

import (
	"context"
	"net/http"
	"strings"

	"fastusers/cmd/resource"
	"fastusers/cmd/security/password"
)

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	actor, cfg, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req createUserRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad request")
		return
	}

	ctx := r.Context()
	req.Username = strings.TrimSpace(req.Username)
	if err := validateEmail(ctx, req.Username, cfg.CheckEmailDeliverability); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	strength := password.ParseStrength(string(cfg.PasswordPolicyStrength))
	if err := h.pwCfg.Validate(req.Password, strength); err != nil {
		writeError(w, http.StatusBadRequest, policyDetail(strength))
		return
	}
	hash, err := h.pwCfg.Hash(req.Password)
	if err != nil {
		h.log.Error("rest.users.create.hash.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	u := &resource.User{
		Username:     req.Username,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		LastName:     req.LastName,
	}
	if u.Name == "" {
		u.Name = u.Username
	}
	if req.IsBlocked != nil {
		u.IsBlocked = *req.IsBlocked
	}
	if req.IsAdmin != nil {
		u.IsAdmin = *req.IsAdmin
	}
	if req.AddressID != nil {
		if !h.attachAddress(w, ctx, u, *req.AddressID) {
			return
		}
	}

	if err := h.store.CreateUser(ctx, u, actor.ID); err != nil {
		switch {
		case resource.IsConflict(err):
			writeError(w, http.StatusConflict, "Username already registered")
		case resource.IsInvalidInput(err):
			writeError(w, http.StatusBadRequest, "Bad request")
		default:
			h.log.Error("rest.users.create.fail", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(*u))
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.requireAdmin(w, r); !ok {
		return
	}
	opts, ok := parseListRange(r, h.cfg.DefaultPageSize)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid range")
		return
	}

	users, err := h.store.ListUsers(r.Context(), opts)
	if err != nil {
		if resource.IsInvalidInput(err) {
			writeError(w, http.StatusBadRequest, "Invalid range")
			return
		}
		h.log.Error("rest.users.list.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetMe(w http.ResponseWriter, r *http.Request) {
	u, _, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handler) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	u, cfg, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	if u.ID == h.cfg.AdminID {
		writeError(w, http.StatusForbidden, "'admin' user cannot be updated")
		return
	}

	var req updateUserRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad request")
		return
	}
	// Only admins may change privilege or blocked flags.
	if (req.IsAdmin != nil || req.IsBlocked != nil) && !u.IsAdmin {
		unauthorized(w, "Operation not allowed for current user")
		return
	}

	h.applyUserUpdate(w, r, &u, req, cfg, u.ID)
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	u, err := h.store.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		if resource.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error("rest.users.get.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, cfg, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == h.cfg.AdminID {
		writeError(w, http.StatusForbidden, "'admin' user cannot be updated")
		return
	}

	var req updateUserRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad request")
		return
	}

	u, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		if resource.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error("rest.users.update.load.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.applyUserUpdate(w, r, &u, req, cfg, actor.ID)
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, _, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == h.cfg.AdminID {
		writeError(w, http.StatusForbidden, "'admin' user cannot be deleted")
		return
	}
	if id == actor.ID {
		writeError(w, http.StatusBadRequest, "Cannot delete current user")
		return
	}

	if err := h.store.SoftDeleteUser(r.Context(), id, actor.ID); err != nil {
		if resource.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error("rest.users.delete.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// applyUserUpdate patches u with the non-nil request fields, persists it, and
// writes the response. actorID stamps the audit columns.
func (h *Handler) applyUserUpdate(w http.ResponseWriter, r *http.Request, u *resource.User, req updateUserRequest, cfg resource.Configuration, actorID string) {
	ctx := r.Context()

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if err := validateEmail(ctx, username, cfg.CheckEmailDeliverability); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid email address")
			return
		}
		u.Username = username
	}
	if req.Password != nil {
		strength := password.ParseStrength(string(cfg.PasswordPolicyStrength))
		if err := h.pwCfg.Validate(*req.Password, strength); err != nil {
			writeError(w, http.StatusBadRequest, policyDetail(strength))
			return
		}
		hash, err := h.pwCfg.Hash(*req.Password)
		if err != nil {
			h.log.Error("rest.users.update.hash.fail", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		u.PasswordHash = hash
	}
	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.FirstName != nil {
		u.FirstName = req.FirstName
	}
	if req.MiddleName != nil {
		u.MiddleName = req.MiddleName
	}
	if req.LastName != nil {
		u.LastName = req.LastName
	}
	if req.IsBlocked != nil {
		u.IsBlocked = *req.IsBlocked
	}
	if req.IsAdmin != nil {
		u.IsAdmin = *req.IsAdmin
	}
	if req.AddressID != nil {
		if !h.attachAddress(w, ctx, u, *req.AddressID) {
			return
		}
	}

	if err := h.store.UpdateUser(ctx, u, actorID); err != nil {
		switch {
		case resource.IsConflict(err):
			writeError(w, http.StatusConflict, "Username already registered")
		case resource.IsNotFound(err):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			h.log.Error("rest.users.update.fail", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(*u))
}

// attachAddress validates and links an address id onto u. An empty id clears
// the link.
func (h *Handler) attachAddress(w http.ResponseWriter, ctx context.Context, u *resource.User, addressID string) bool {
	addressID = strings.TrimSpace(addressID)
	if addressID == "" {
		u.AddressID = nil
		return true
	}
	if !resource.IsValidID(addressID) {
		writeError(w, http.StatusBadRequest, "Bad request")
		return false
	}
	if _, err := h.store.GetAddress(ctx, addressID); err != nil {
		if resource.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Address not found")
			return false
		}
		h.log.Error("rest.users.attach_address.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return false
	}
	u.AddressID = &addressID
	return true
}

func policyDetail(strength password.Strength) string {
	if strength == password.StrengthMax {
		return "Password must be at least 8 characters long and contain an uppercase letter and a digit"
	}
	return "Password must be at least 8 characters long"
}
