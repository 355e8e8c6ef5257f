package rest

import (
	"net/http"
	"strconv"
	"strings"

	"fastusers/cmd/resource"
)

func toUserResponse(u resource.User) userResponse {
	return userResponse{
		ID:           u.ID,
		Username:     u.Username,
		Name:         u.Name,
		FirstName:    u.FirstName,
		MiddleName:   u.MiddleName,
		LastName:     u.LastName,
		IsBlocked:    u.IsBlocked,
		IsAdmin:      u.IsAdmin,
		LastAccessAt: u.LastAccessAt,
		AddressID:    u.AddressID,
		CreatedAt:    u.CreatedAt,
		ModifiedAt:   u.ModifiedAt,
	}
}

func toAddressResponse(a resource.Address) addressResponse {
	return addressResponse{
		ID:         a.ID,
		PostalCode: a.PostalCode,
		Address:    a.Line,
		Country:    a.Country,
		State:      a.State,
		City:       a.City,
		Lat:        a.Lat,
		Lon:        a.Lon,
		CreatedAt:  a.CreatedAt,
		ModifiedAt: a.ModifiedAt,
		CreatedBy:  a.CreatedBy,
	}
}

func toConfigurationResponse(c resource.Configuration) configurationResponse {
	return configurationResponse{
		ID:                       c.ID,
		CheckEmailDeliverability: c.CheckEmailDeliverability,
		PasswordPolicyStrength:   string(c.PasswordPolicyStrength),
		JWTAutoRefresh:           c.JWTAutoRefresh,
		CreatedAt:                c.CreatedAt,
		ModifiedAt:               c.ModifiedAt,
	}
}

// parseListRange reads the start/end/show_deleted query parameters.
// end defaults to defaultEnd; start defaults to 0.
func parseListRange(r *http.Request, defaultEnd int) (resource.ListOptions, bool) {
	opts := resource.ListOptions{End: defaultEnd}
	q := r.URL.Query()

	if raw := strings.TrimSpace(q.Get("start")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return resource.ListOptions{}, false
		}
		opts.Start = n
	}
	if raw := strings.TrimSpace(q.Get("end")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return resource.ListOptions{}, false
		}
		opts.End = n
	}
	if raw := strings.TrimSpace(q.Get("show_deleted")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return resource.ListOptions{}, false
		}
		opts.ShowDeleted = b
	}
	if opts.End > 0 && opts.Start > 0 && opts.End < opts.Start {
		return resource.ListOptions{}, false
	}
	return opts, true
}

func bearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return "", false
	}
	const prefix = "bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	tok := strings.TrimSpace(h[len(prefix):])
	if tok == "" {
		return "", false
	}
	return tok, true
}

// bothOrNeither reports whether the coordinate pair is complete: both values
// present or both absent.
func bothOrNeither(lat, lon *float64) bool {
	return (lat == nil) == (lon == nil)
}
