package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/davranaff/locusd/pkg/auth"
	"github.com/davranaff/locusd/pkg/httputil"
	"github.com/davranaff/locusd/pkg/locus"
	"github.com/davranaff/locusd/pkg/middleware"
	"github.com/davranaff/locusd/pkg/observability"
)

// Server represents the locus API server
type Server struct {
	router        *mux.Router
	logger        *observability.Logger
	metrics       *observability.Metrics
	authHandlers  *AuthHandlers
	locusHandlers *LocusHandlers
}

// NewServer creates an API server and wires up its routes. metrics may
// be nil when metrics are disabled.
func NewServer(authService *auth.Service, locusService *locus.Service, logger *observability.Logger, metrics *observability.Metrics) *Server {
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}

	s := &Server{
		router:        mux.NewRouter(),
		logger:        logger,
		metrics:       metrics,
		authHandlers:  NewAuthHandlers(authService, logger, metrics),
		locusHandlers: NewLocusHandlers(locusService, logger, metrics),
	}

	s.setupRoutes(authService)
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes(authService *auth.Service) {
	common := []mux.MiddlewareFunc{
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(s.logger),
		httputil.RecoveryMiddleware(s.logger),
		httputil.MaxBytesMiddleware(1 << 20),
	}
	if s.metrics != nil {
		common = append(common, observability.HTTPMetricsMiddleware(s.metrics))
	}
	s.router.Use(common...)

	v1 := s.router.PathPrefix("/api/v1").Subrouter()

	// Login is the only public route
	v1.HandleFunc("/auth/login", s.authHandlers.login).Methods("POST")

	authMW := middleware.NewAuthMiddleware(authService, s.metrics)
	v1.Handle("/locus", authMW.Handler(http.HandlerFunc(s.locusHandlers.find))).Methods("GET")

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteNotFoundError(w, "not found")
	})
}

// Router returns the configured router
func (s *Server) Router() *mux.Router {
	return s.router
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
