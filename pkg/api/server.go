package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/platinummonkey/orgmaster/pkg/auth"
	"github.com/platinummonkey/orgmaster/pkg/httputil"
	"github.com/platinummonkey/orgmaster/pkg/middleware"
	"github.com/platinummonkey/orgmaster/pkg/observability"
	"github.com/platinummonkey/orgmaster/pkg/orgs"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Server represents the API server
type Server struct {
	router  *mux.Router
	orgs    *orgs.Service
	auth    *auth.Service
	logger  *observability.Logger
	metrics *observability.Metrics
}

// NewServer creates a new API server with all routes registered.
func NewServer(orgService *orgs.Service, authService *auth.Service, logger *observability.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		orgs:    orgService,
		auth:    authService,
		logger:  logger,
		metrics: metrics,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	authmw := middleware.NewAuth(s.auth)

	// Public routes: registration and login
	s.router.HandleFunc("/api/organizations", s.createOrganization).Methods("POST")
	s.router.HandleFunc("/api/admin/login", s.login).Methods("POST")

	// Protected routes: everything addressing an existing organization
	protected := s.router.PathPrefix("/api/organizations").Subrouter()
	protected.Use(authmw.Handler)
	protected.HandleFunc("/{name}", s.getOrganization).Methods("GET")
	protected.HandleFunc("/{name}", s.renameOrganization).Methods("PUT")
	protected.HandleFunc("/{name}", s.deleteOrganization).Methods("DELETE")
}

// Handler returns the fully instrumented HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	chain := httputil.Chain(
		httputil.RequestIDMiddleware,
		httputil.RecoveryMiddleware(s.logger),
		httputil.LoggingMiddleware(s.logger),
		observability.HTTPMetricsMiddleware(s.metrics),
		httputil.ContentTypeMiddleware,
		httputil.MaxBytesMiddleware(maxBodyBytes),
	)
	return otelhttp.NewHandler(chain(s.router), "orgmaster-api")
}

// Router returns the bare router, used by handler tests.
func (s *Server) Router() *mux.Router {
	return s.router
}

// NewOpsMux builds the mux served on the operations port: health probe
// and Prometheus metrics.
func NewOpsMux(store orgs.Store, registry *prometheus.Registry, logger *observability.Logger) *http.ServeMux {
	opsMux := http.NewServeMux()
	opsMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := store.Ping(ctx); err != nil {
			logger.WithError(err).Warn("health check failed")
			httputil.WriteServiceUnavailable(w, "backing store unreachable")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	observability.RegisterMetricsEndpoint(opsMux, registry)
	return opsMux
}
