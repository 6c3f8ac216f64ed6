// Package httpapi exposes the HRMS services over HTTP and gRPC health.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hrmslite/hrms/internal/auth"
	"github.com/hrmslite/hrms/internal/config"
	"github.com/hrmslite/hrms/internal/envelope"
	"github.com/hrmslite/hrms/internal/hrm"
)

// Readiness reports whether the backing database is reachable.
type Readiness interface {
	Check(ctx context.Context) error
}

// ReadyProbe pings the database.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Deps carries the services the HTTP layer dispatches to.
type Deps struct {
	Auth   *auth.Service
	RBAC   *auth.RBACService
	HR     *hrm.Services
	Ready  Readiness
	Config config.Config
}

// API is the HTTP layer.
type API struct {
	auth  *auth.Service
	rbac  *auth.RBACService
	hr    *hrm.Services
	ready Readiness

	appName     string
	prefix      string
	corsOrigins []string
	enforceRBAC bool
	maxBody     int64
	rateBurst   int
	ratePerSec  int

	validate *validator.Validate
}

func New(deps Deps) *API {
	cfg := deps.Config
	ready := deps.Ready
	if ready == nil {
		ready = ReadyProbe{}
	}
	a := &API{
		auth:        deps.Auth,
		rbac:        deps.RBAC,
		hr:          deps.HR,
		ready:       ready,
		appName:     fallback(cfg.AppName, "HRMS Lite"),
		prefix:      fallback(cfg.APIPrefix, "/api/v1"),
		corsOrigins: cfg.CORSOrigins,
		enforceRBAC: cfg.EnforceRBAC,
		maxBody:     cfg.MaxBodyBytes,
		rateBurst:   cfg.RateBurst,
		ratePerSec:  cfg.RatePerSecond,
		validate:    newValidator(),
	}
	if a.maxBody <= 0 {
		a.maxBody = 1 << 20
	}
	if a.rateBurst <= 0 {
		a.rateBurst = 20
	}
	if a.ratePerSec <= 0 {
		a.ratePerSec = 5
	}
	return a
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": a.appName,
	})
}

func (a *API) apiHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	database := "ok"
	if err := a.ready.Check(ctx); err != nil {
		database = "unavailable"
	}
	writeJSON(w, http.StatusOK, envelope.Wrap(map[string]any{
		"status":   "ok",
		"database": database,
	}, ""))
}

func (a *API) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := a.ready.Check(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
