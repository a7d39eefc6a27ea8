// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"weather_prediction_ui/internal/common"
	"weather_prediction_ui/internal/config"
	"weather_prediction_ui/internal/jobs"
	"weather_prediction_ui/internal/middleware"
	"weather_prediction_ui/internal/platform/database"
	"weather_prediction_ui/internal/ui"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	healthCheckTimeout = 2 * time.Second

	// A browser's operations run one at a time, so a submission may wait for one
	// in-flight backend call before making its own.
	queuedBackendCalls = 2
	writeTimeoutSlack  = 15 * time.Second
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger
	db         *gorm.DB

	uiHandler       *ui.Handler
	sessionPurgeJob *jobs.SessionPurgeJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	uiHandler *ui.Handler,
	sessionPurgeJob *jobs.SessionPurgeJob,
	db *gorm.DB,
) (*Server, error) {
	tmpl, err := ui.LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to load page templates: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg)))

	s := &Server{
		router:          router,
		cfg:             cfg,
		logger:          logger,
		db:              db,
		uiHandler:       uiHandler,
		sessionPurgeJob: sessionPurgeJob,
	}

	// --- Setup Routes ---
	router.GET("/health", s.health)

	browser := router.Group("/", middleware.BrowserIdentity(cfg, logger.Named("BrowserIdentity")))
	uiHandler.RegisterPageRoutes(browser)

	v1 := browser.Group("/api/v1")
	uiHandler.RegisterRoutes(v1)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout(cfg),
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

func writeTimeout(cfg *config.Config) time.Duration {
	return queuedBackendCalls*cfg.BackendTimeout + writeTimeoutSlack
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsConfig(cfg *config.Config) cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"*"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", common.RequestIDHeader}
	// Browsers refuse credentialed responses for a wildcard origin.
	corsConfig.AllowCredentials = !containsWildcard(corsConfig.AllowOrigins)
	corsConfig.ExposeHeaders = []string{"Content-Length", common.RequestIDHeader}
	return corsConfig
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := database.Ping(ctx, s.db); err != nil {
		s.logger.Warn("Health check failed", zap.Error(err))
		common.RespondWithError(c, common.ErrServiceUnavailable.WithDetails("Session store is unreachable."))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Weather prediction UI is healthy!"})
}

func (s *Server) Start() error {
	if s.sessionPurgeJob != nil {
		if err := s.sessionPurgeJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start session purge job", zap.Error(err))
		}
	} else {
		s.logger.Info("Session purge job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
		zap.String("backend_url", s.cfg.BackendURL),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.sessionPurgeJob != nil {
		s.sessionPurgeJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
