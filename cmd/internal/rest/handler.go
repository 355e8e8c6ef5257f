package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"fastusers/cmd/resource"
	"fastusers/cmd/security/password"
	"fastusers/cmd/security/token"
)

// Handler wires the /fast-users HTTP endpoints to the resource store.
type Handler struct {
	log    *slog.Logger
	cfg    Config
	store  resource.Store
	tokens *token.Manager
	pwCfg  password.Config
}

// NewHandler constructs the API handler.
func NewHandler(log *slog.Logger, store resource.Store, tokens *token.Manager, pwCfg password.Config, cfg Config) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	if store == nil {
		return nil, errors.New("rest: nil store")
	}
	if tokens == nil {
		return nil, errors.New("rest: nil token manager")
	}
	return &Handler{
		log:    log,
		cfg:    cfg,
		store:  store,
		tokens: tokens,
		pwCfg:  pwCfg,
	}, nil
}

// Register wires the API routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}

	mux.HandleFunc("POST /fast-users/auth/token", h.handleLogin)

	mux.HandleFunc("POST /fast-users/users", h.handleCreateUser)
	mux.HandleFunc("GET /fast-users/users", h.handleListUsers)
	mux.HandleFunc("GET /fast-users/users/me", h.handleGetMe)
	mux.HandleFunc("PATCH /fast-users/users/me", h.handleUpdateMe)
	mux.HandleFunc("GET /fast-users/users/{id}", h.handleGetUser)
	mux.HandleFunc("PATCH /fast-users/users/{id}", h.handleUpdateUser)
	mux.HandleFunc("DELETE /fast-users/users/{id}", h.handleDeleteUser)

	mux.HandleFunc("POST /fast-users/addresses", h.handleCreateAddress)
	mux.HandleFunc("GET /fast-users/addresses", h.handleListAddresses)
	mux.HandleFunc("GET /fast-users/addresses/{id}", h.handleGetAddress)
	mux.HandleFunc("PATCH /fast-users/addresses/{id}", h.handleUpdateAddress)
	mux.HandleFunc("DELETE /fast-users/addresses/{id}", h.handleDeleteAddress)

	mux.HandleFunc("GET /fast-users/configurations", h.handleGetConfiguration)
	mux.HandleFunc("PATCH /fast-users/configurations", h.handleUpdateConfiguration)

	mux.HandleFunc("GET /fast-users/health", h.handleHealth)
}
