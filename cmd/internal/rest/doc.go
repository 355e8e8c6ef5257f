// Package rest exposes the service's HTTP API: token login, user, address and
// configuration resources under /fast-users, plus a database health probe.
package rest
