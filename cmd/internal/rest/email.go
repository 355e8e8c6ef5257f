package rest

import (
	"context"
	"errors"
	"net"
	"net/mail"
	"strings"
	"time"
)

var errInvalidEmail = errors.New("invalid email address")

// validateEmail checks that addr is a bare RFC 5322 address. When
// checkDeliverability is set it additionally requires the domain to resolve
// (MX record, falling back to a host lookup).
func validateEmail(ctx context.Context, addr string, checkDeliverability bool) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return errInvalidEmail
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return errInvalidEmail
	}

	at := strings.LastIndex(addr, "@")
	domain := addr[at+1:]
	if domain == "" {
		return errInvalidEmail
	}

	if !checkDeliverability {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if mxs, err := net.DefaultResolver.LookupMX(ctx, domain); err == nil && len(mxs) > 0 {
		return nil
	}
	if hosts, err := net.DefaultResolver.LookupHost(ctx, domain); err == nil && len(hosts) > 0 {
		return nil
	}
	return errInvalidEmail
}
