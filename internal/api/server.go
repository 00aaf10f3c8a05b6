// Package api provides the HTTP server exposing the reconcile engine and
// its record store.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ledgerlink/reconcile-backend/internal/api/handlers"
	"github.com/ledgerlink/reconcile-backend/internal/api/middleware"
	"github.com/ledgerlink/reconcile-backend/internal/application/service"
	"github.com/ledgerlink/reconcile-backend/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	engine     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
	repo       storage.Repository
	svc        *service.ReconcileService
}

// NewServer creates a new API server.
func NewServer(cfg Config, repo storage.Repository, svc *service.ReconcileService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		config: cfg,
		engine: gin.New(),
		logger: logger,
		repo:   repo,
		svc:    svc,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Handler exposes the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	s.engine.Use(gin.Recovery())
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logging(s.logger))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Check)

	api := s.engine.Group("/api")

	txHandler := handlers.NewTransactionsHandler(s.repo)
	api.POST("/transactions/import", txHandler.Import)
	api.GET("/transactions", txHandler.List)
	api.GET("/transactions/:id", txHandler.Get)

	attHandler := handlers.NewAttachmentsHandler(s.repo)
	api.POST("/attachments/import", attHandler.Import)
	api.GET("/attachments", attHandler.List)
	api.GET("/attachments/:id", attHandler.Get)

	matchHandler := handlers.NewMatchHandler(s.svc)
	api.GET("/transactions/:id/attachment", matchHandler.FindAttachment)
	api.GET("/attachments/:id/transaction", matchHandler.FindTransaction)
	api.POST("/match/attachment", matchHandler.MatchAttachment)
	api.POST("/match/transaction", matchHandler.MatchTransaction)

	statsHandler := handlers.NewStatsHandler(s.repo)
	api.GET("/stats", statsHandler.Get)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}
