package rest

import (
	"net/http"
	"strings"

	"fastusers/cmd/resource"
)

func (h *Handler) handleCreateAddress(w http.ResponseWriter, r *http.Request) {
	actor, _, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	var req createAddressRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad request")
		return
	}
	if !bothOrNeither(req.Lat, req.Lon) {
		writeError(w, http.StatusBadRequest, "Incomplete coordinate values")
		return
	}

	a := &resource.Address{
		PostalCode: req.PostalCode,
		Line:       strings.TrimSpace(req.Address),
		Country:    strings.TrimSpace(req.Country),
		State:      strings.TrimSpace(req.State),
		City:       strings.TrimSpace(req.City),
		Lat:        req.Lat,
		Lon:        req.Lon,
	}
	if a.Line == "" || a.Country == "" || a.State == "" || a.City == "" {
		writeError(w, http.StatusBadRequest, "Bad request")
		return
	}

	if err := h.store.CreateAddress(r.Context(), a, actor.ID); err != nil {
		if resource.IsInvalidInput(err) {
			writeError(w, http.StatusBadRequest, "Bad request")
			return
		}
		h.log.Error("rest.addresses.create.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, toAddressResponse(*a))
}

func (h *Handler) handleListAddresses(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.requireAdmin(w, r); !ok {
		return
	}
	opts, ok := parseListRange(r, h.cfg.DefaultPageSize)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid range")
		return
	}

	addresses, err := h.store.ListAddresses(r.Context(), opts)
	if err != nil {
		if resource.IsInvalidInput(err) {
			writeError(w, http.StatusBadRequest, "Invalid range")
			return
		}
		h.log.Error("rest.addresses.list.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]addressResponse, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, toAddressResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetAddress(w http.ResponseWriter, r *http.Request) {
	actor, _, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	a, ok := h.loadOwnedAddress(w, r, actor, "User not allowed to retrive address")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toAddressResponse(a))
}

func (h *Handler) handleUpdateAddress(w http.ResponseWriter, r *http.Request) {
	actor, _, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	a, ok := h.loadOwnedAddress(w, r, actor, "User not allowed to update address")
	if !ok {
		return
	}

	var req updateAddressRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad request")
		return
	}

	if req.PostalCode != nil {
		a.PostalCode = req.PostalCode
	}
	if req.Address != nil {
		a.Line = strings.TrimSpace(*req.Address)
	}
	if req.Country != nil {
		a.Country = strings.TrimSpace(*req.Country)
	}
	if req.State != nil {
		a.State = strings.TrimSpace(*req.State)
	}
	if req.City != nil {
		a.City = strings.TrimSpace(*req.City)
	}
	if req.Lat != nil {
		a.Lat = req.Lat
	}
	if req.Lon != nil {
		a.Lon = req.Lon
	}
	if !bothOrNeither(a.Lat, a.Lon) {
		writeError(w, http.StatusBadRequest, "Incomplete coordinate values")
		return
	}
	if a.Line == "" || a.Country == "" || a.State == "" || a.City == "" {
		writeError(w, http.StatusBadRequest, "Bad request")
		return
	}

	if err := h.store.UpdateAddress(r.Context(), &a, actor.ID); err != nil {
		if resource.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Address not found")
			return
		}
		h.log.Error("rest.addresses.update.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, toAddressResponse(a))
}

func (h *Handler) handleDeleteAddress(w http.ResponseWriter, r *http.Request) {
	actor, _, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	a, ok := h.loadOwnedAddress(w, r, actor, "User not allowed to delete address")
	if !ok {
		return
	}

	if err := h.store.SoftDeleteAddress(r.Context(), a.ID, actor.ID); err != nil {
		if resource.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Address not found")
			return
		}
		h.log.Error("rest.addresses.delete.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadOwnedAddress resolves the path id to an address the actor may act on:
// the creator or an admin. It writes the error response on failure; denyDetail
// is the 403 payload for non-owners.
func (h *Handler) loadOwnedAddress(w http.ResponseWriter, r *http.Request, actor resource.User, denyDetail string) (resource.Address, bool) {
	id := r.PathValue("id")
	if !resource.IsValidID(id) {
		writeError(w, http.StatusBadRequest, "Bad request")
		return resource.Address{}, false
	}

	a, err := h.store.GetAddress(r.Context(), id)
	if err != nil {
		if resource.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Address not found")
			return resource.Address{}, false
		}
		h.log.Error("rest.addresses.load.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return resource.Address{}, false
	}

	if !actor.IsAdmin && (a.CreatedBy == nil || *a.CreatedBy != actor.ID) {
		writeError(w, http.StatusForbidden, denyDetail)
		return resource.Address{}, false
	}
	return a, true
}
