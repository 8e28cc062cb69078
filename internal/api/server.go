package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/orderparser/internal/api/handlers"
	"github.com/eshaffer321/orderparser/internal/api/middleware"
	"github.com/eshaffer321/orderparser/internal/application/service"
)

// MaxBodyBytes caps request bodies; pasted order text and full runs can be large.
const MaxBodyBytes = 50 << 20

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
	Diagnostics    handlers.DiagnosticsConfig
}

// DefaultConfig returns the server defaults. They match the config package
// defaults: port 3001 and any origin.
func DefaultConfig() Config {
	return Config{
		Port:           3001,
		AllowedOrigins: []string{"*"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
	svc        *service.OrderService
}

// NewServer creates a new API server.
func NewServer(cfg Config, svc *service.OrderService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config: cfg,
		router: gin.New(),
		logger: logger,
		svc:    svc,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())

	// Request logging
	s.router.Use(middleware.Logging(s.logger, "/health"))

	// CORS
	corsConfig := middleware.DefaultCORSConfig()
	if len(s.config.AllowedOrigins) > 0 {
		corsConfig.AllowedOrigins = s.config.AllowedOrigins
	}
	s.router.Use(middleware.CORS(corsConfig))

	s.router.Use(middleware.BodyLimit(MaxBodyBytes))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	s.router.GET("/health", handlers.NewHealthHandler().Get)

	api := s.router.Group("/api")
	{
		api.GET("/diagnostics", handlers.NewDiagnosticsHandler(s.svc, s.config.Diagnostics).Get)

		// Persisted runs
		history := handlers.NewHistoryHandler(s.svc, s.logger)
		api.GET("/history", history.List)
		api.POST("/history", history.Create)
		api.GET("/history/:id", history.Get)
		api.PUT("/history/:id", history.Update)
		api.GET("/history/:id/changelog", history.ChangeLog)

		// Extraction and edits
		runs := handlers.NewRunsHandler(s.svc, s.logger)
		api.POST("/parse", runs.Parse)
		api.POST("/history/:id/edits", runs.Edit)

		// Derived views and export
		views := handlers.NewViewsHandler(s.svc, s.logger)
		api.GET("/history/:id/orders", views.Orders)
		api.GET("/history/:id/au", views.Australia)
		api.POST("/history/:id/bham", views.Birmingham)
		api.GET("/history/:id/export", views.Export)
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: 30 * time.Second,
		// Extraction calls can take a while.
		WriteTimeout: 3 * time.Minute,
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

// Router returns the gin engine for testing.
func (s *Server) Router() http.Handler {
	return s.router
}
