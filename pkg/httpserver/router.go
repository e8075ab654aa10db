package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stakalivres/notifymail/pkg/logger"
	"github.com/stakalivres/notifymail/pkg/requestid"
)

// RouterOption configures NewOpsRouter.
type RouterOption func(*routerConfig)

type routerConfig struct {
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	checks   []Check
	status   func() any
	mounts   []mount
}

type mount struct {
	pattern string
	handler http.Handler
}

// WithRouterLogger sets the logger used by the probes.
func WithRouterLogger(l *slog.Logger) RouterOption {
	return func(c *routerConfig) { c.logger = l }
}

// WithMetrics exposes g on /metrics.
func WithMetrics(g prometheus.Gatherer) RouterOption {
	return func(c *routerConfig) { c.gatherer = g }
}

// WithReadinessCheck adds a dependency to /readyz.
func WithReadinessCheck(name string, fn func(context.Context) error) RouterOption {
	return func(c *routerConfig) {
		if fn != nil {
			c.checks = append(c.checks, Check{Name: name, Fn: fn})
		}
	}
}

// WithStatus serves the JSON encoding of fn() on /status.
func WithStatus(fn func() any) RouterOption {
	return func(c *routerConfig) { c.status = fn }
}

// WithMount serves h under pattern, e.g. "/notifications".
func WithMount(pattern string, h http.Handler) RouterOption {
	return func(c *routerConfig) {
		if h != nil {
			c.mounts = append(c.mounts, mount{pattern: pattern, handler: h})
		}
	}
}

// NewOpsRouter builds the operations router:
//
//	GET /healthz  liveness
//	GET /readyz   readiness, runs every registered check
//	GET /metrics  Prometheus exposition, when WithMetrics is set
//	GET /status   pipeline snapshot, when WithStatus is set
//
// plus every handler added with WithMount.
func NewOpsRouter(opts ...RouterOption) http.Handler {
	cfg := &routerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", HealthCheckHandler(cfg.logger))
	r.Get("/readyz", HealthCheckHandler(cfg.logger, cfg.checks...))

	if cfg.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
	}

	if cfg.status != nil {
		r.Get("/status", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(cfg.status()); err != nil {
				cfg.logger.ErrorContext(req.Context(), "Failed to encode status", logger.Error(err))
			}
		})
	}

	for _, m := range cfg.mounts {
		r.Mount(m.pattern, m.handler)
	}

	return r
}
