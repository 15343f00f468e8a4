// cmd/web/main.go
//
// True Relief Physio – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (server-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Optional Vault client (only when VAULT_ADDR is set), then typed
//     config with secret resolution and validation.
//
//  4. Install the session signing key, open the optional GeoLite2 reader,
//     build the backend REST client, and load the YAML form definitions.
//
//  5. Build the chi router: request enrichment, alias rewrites, security
//     headers, /metrics, exact-path modules, component mounts.
//
//  6. Wrap with ForceHTTPS when configured, serve with hardened timeouts,
//     and shut down gracefully on SIGINT/SIGTERM.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/truereliefphysio/physioweb/internal/backend"
	"github.com/truereliefphysio/physioweb/internal/component"
	"github.com/truereliefphysio/physioweb/internal/config"
	"github.com/truereliefphysio/physioweb/internal/core"
	"github.com/truereliefphysio/physioweb/internal/form"
	"github.com/truereliefphysio/physioweb/internal/logger"
	"github.com/truereliefphysio/physioweb/internal/middleware"
	"github.com/truereliefphysio/physioweb/internal/module"
	"github.com/truereliefphysio/physioweb/internal/requestinfo"
	"github.com/truereliefphysio/physioweb/internal/routing"
	"github.com/truereliefphysio/physioweb/internal/server"
	"github.com/truereliefphysio/physioweb/internal/session"
	"github.com/truereliefphysio/physioweb/internal/site"
	"github.com/truereliefphysio/physioweb/internal/vault"
	"github.com/truereliefphysio/physioweb/internal/view"

	"github.com/truereliefphysio/physioweb/components/admin"
	"github.com/truereliefphysio/physioweb/components/booking"
	"github.com/truereliefphysio/physioweb/components/contact"
	"github.com/truereliefphysio/physioweb/components/pages"

	_ "github.com/truereliefphysio/physioweb/modules/status" // diagnostic module
)

const serverEnvPath = "/usr/local/etc/physioweb/global.env"

// loadEnv prefers the server-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Vault (optional) and config ────────────────────────────────
	//
	var vaultCli *vault.Client
	if os.Getenv("VAULT_ADDR") != "" {
		vaultCli, err = vault.New(ctx, logOut.Infof)
		if err != nil {
			logOut.Fatalw("vault client", "err", err)
		}
		logOut.Infow("vault client online")
	}

	cfg, err := config.Load(ctx, vaultCli)
	if err != nil {
		logOut.Fatalw("load config", "err", err)
	}

	session.SetKey(cfg.Security.SessionKey)
	if cfg.Security.CSRFKey != "" {
		// The forms subsystem reads its key from the environment.
		_ = os.Setenv("TRP_CSRF_KEY", cfg.Security.CSRFKey)
	}

	if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
		logOut.Fatalw("geo init", "err", err)
	}

	//
	// ── 2.  Backend client, forms, and components ──────────────────────
	//
	client := backend.New(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second)

	view.SetRoot(cfg.Paths.Root)
	if err := form.RegisterForms(cfg.Paths.Root); err != nil {
		logOut.Fatalw("register forms", "err", err)
	}

	siteInfo := site.Info{
		Name:        cfg.Site.Name,
		Tagline:     cfg.Site.Tagline,
		ServiceArea: cfg.Site.ServiceArea,
		Contact:     site.Contact{Phones: cfg.Site.Phones, Email: cfg.Site.Email},
	}

	component.Register(pages.New(siteInfo, cfg.HTTP.ForceHTTPS))
	component.Register(booking.New(siteInfo, client))
	component.Register(contact.New(siteInfo, client))
	component.Register(admin.New(siteInfo, client))

	//
	// ── 3.  Router ─────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestinfo.Enrich)
	r.Use(routing.Middleware(routing.NewAliasTable(cfg.Aliases)))
	r.Use(middleware.Security)

	r.Handle("/metrics", promhttp.Handler())

	// Exact-path modules (e.g. /status).
	for _, path := range module.Paths() {
		p := path
		r.HandleFunc(p, func(w http.ResponseWriter, req *http.Request) {
			cctx := core.NewContext(siteInfo, w, req)
			module.Lookup(p)(cctx, w, req)
		})
	}

	for _, c := range component.All() {
		if ini, ok := c.(component.Initializer); ok {
			if err := ini.Init(siteInfo); err != nil {
				logOut.Fatalw("component init", "component", c.Name(), "err", err)
			}
		}
		r.Mount(c.Base(), c.Routes())
		logOut.Infow("component mounted", "component", c.Name(), "base", c.Base())
	}

	var handler http.Handler = r
	if cfg.HTTP.ForceHTTPS {
		handler = middleware.ForceHTTPS(handler)
	}

	//
	// ── 4.  Serve with graceful shutdown ───────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, handler)

	go func() {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logOut.Fatalw("http server", "err", err)
		}
	}()

	<-ctx.Done()
	logOut.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logOut.Warnw("shutdown", "err", err)
	}
	_ = zap.L().Sync()
}
