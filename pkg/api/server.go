// Package api exposes the analysis workbench over HTTP: analysis CRUD,
// engine outputs (rankings, derived graph, centrality), CSV/Markdown export,
// and a read-only GraphQL endpoint.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/auth"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/engine"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/gql"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/logging"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/metrics"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/store"
)

// Server is the workbench HTTP API server.
type Server struct {
	store      store.Store
	engine     *engine.Engine
	jwtManager *auth.JWTManager
	users      *auth.UserStore
	gqlHandler *gql.Handler
	logger     logging.Logger
	metrics    *metrics.Registry
	startTime  time.Time
	version    string
	port       int
}

// Config carries server construction parameters.
type Config struct {
	Port       int
	Store      store.Store
	JWTManager *auth.JWTManager
	Users      *auth.UserStore
	Logger     logging.Logger
	Metrics    *metrics.Registry
	Version    string
}

// NewServer wires the server from its dependencies.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	eng := engine.New(logger.With(logging.Component("engine")), cfg.Metrics)

	return &Server{
		store:      cfg.Store,
		engine:     eng,
		jwtManager: cfg.JWTManager,
		users:      cfg.Users,
		gqlHandler: gql.NewHandler(cfg.Store, eng),
		logger:     logger.With(logging.Component("api")),
		metrics:    cfg.Metrics,
		startTime:  time.Now(),
		version:    version,
		port:       cfg.Port,
	}
}

// Handler builds the routing table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	mux.HandleFunc("/auth/login", s.handleLogin)

	// Everything below requires a valid token when auth is configured.
	mux.HandleFunc("/templates", s.authMiddleware(s.handleTemplates))
	mux.HandleFunc("/templates/", s.authMiddleware(s.handleTemplateInstantiate))
	mux.HandleFunc("/analyses", s.authMiddleware(s.handleAnalyses))
	mux.HandleFunc("/analyses/", s.authMiddleware(s.handleAnalysis))
	mux.HandleFunc("/graphql", s.authMiddleware(s.handleGraphQL))

	return s.loggingMiddleware(s.corsMiddleware(mux))
}

// Start runs the server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("workbench API listening", logging.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
