// Package app wires the fastusers runtime: config, logging, database,
// bootstrap, and the HTTP server.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fastusers/cmd/internal/rest"
	"fastusers/cmd/resource"
	"fastusers/cmd/security/password"
	"fastusers/cmd/security/token"
)

// App owns the HTTP server wiring and the store lifecycle.
type App struct {
	cfg Config
	log Logger

	store   resource.Store
	api     *rest.Handler
	metrics *Metrics
}

// New constructs a fully wired App: it opens the database, creates the
// schema, runs the bootstrap (default configuration row + admin account), and
// builds the API handler.
func New(ctx context.Context, cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel, cfg.LogFormat)
	}

	if err := ValidateSecurityConfig(cfg); err != nil {
		return nil, err
	}

	db, err := OpenDB(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	store, err := resource.NewBunStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := store.CreateSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	pwCfg, err := password.FromEnv()
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	if err := bootstrap(ctx, cfg, log, store, pwCfg); err != nil {
		_ = store.Close()
		return nil, err
	}

	secret, err := resolveJWTSecret(cfg, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	tokens, err := token.NewManager(token.Config{
		Secret: secret,
		TTL:    cfg.JWTTTL,
		Issuer: cfg.JWTIssuer,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	apiCfg := rest.LoadConfigFromEnv()
	apiCfg.AdminID = cfg.AdminID
	api, err := rest.NewHandler(log, store, tokens, pwCfg, apiCfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &App{
		cfg:     cfg,
		log:     log,
		store:   store,
		api:     api,
		metrics: NewMetrics(),
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal
// server error.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.store, a.api, a.metrics)

	var handler http.Handler = mux
	handler = a.metrics.WithMetrics(handler)
	handler = WithCORS(handler, a.cfg, a.log)
	handler = WithRequestLogging(handler, a.log)
	handler = WithRequestID(handler)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "db_configured", a.cfg.DatabaseURL != "")

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	if err := a.store.Close(); err != nil {
		a.log.Error("store.close.fail", "err", err)
	}

	a.log.Info("server.stopped")
	return nil
}

// bootstrap ensures the singleton configuration row and the admin account
// exist. Both steps are idempotent and safe across concurrent boots.
func bootstrap(ctx context.Context, cfg Config, log Logger, store resource.Store, pwCfg password.Config) error {
	created, err := resource.EnsureDefaultConfiguration(ctx, store, cfg.AdminUsername)
	if err != nil {
		return err
	}
	if created {
		log.Info("bootstrap.configuration.created")
	}

	if cfg.AdminPassword == "" {
		log.Warn("bootstrap.admin.skipped", "hint", "set FASTUSERS_ADMIN_PASSWORD to provision the admin account")
		return nil
	}

	created, err = resource.EnsureAdminUser(ctx, store, resource.BootstrapAdmin{
		ID:       cfg.AdminID,
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
	}, pwCfg)
	if err != nil {
		return err
	}
	if created {
		log.Info("bootstrap.admin.created", "username", cfg.AdminUsername)
	}
	return nil
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
