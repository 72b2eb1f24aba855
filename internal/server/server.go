package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	handlers "github.com/GriffinCanCode/EditorShell/backend/internal/api/http"
	"github.com/GriffinCanCode/EditorShell/backend/internal/api/middleware"
	"github.com/GriffinCanCode/EditorShell/backend/internal/api/ws"
	"github.com/GriffinCanCode/EditorShell/backend/internal/command"
	"github.com/GriffinCanCode/EditorShell/backend/internal/executor"
	"github.com/GriffinCanCode/EditorShell/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/EditorShell/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/EditorShell/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/EditorShell/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/EditorShell/backend/internal/workspace"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	registry *command.Registry
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
}

// NewRegistry builds the command registry described by cfg
func NewRegistry(cfg *config.Config, opts command.Options) (*command.Registry, error) {
	registry := command.NewRegistry(opts)

	files := workspace.New(workspace.Options{
		ExcludePatterns: cfg.Workspace.Exclude,
		Logger:          opts.Logger,
	})
	if err := command.RegisterWorkspace(registry, files); err != nil {
		return nil, fmt.Errorf("failed to register workspace commands: %w", err)
	}

	exec, err := executor.New(executor.Policy{
		Enabled: cfg.Exec.Enabled,
		Allow:   cfg.Exec.Allow,
		Timeout: cfg.Exec.Timeout,
		Shell:   cfg.Exec.Shell,

		BreakerThreshold: cfg.Exec.BreakerThreshold,
		BreakerCooldown:  cfg.Exec.BreakerCooldown,
	}, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("invalid exec policy: %w", err)
	}
	if err := command.RegisterExecutor(registry, exec); err != nil {
		return nil, fmt.Errorf("failed to register executor: %w", err)
	}

	return registry, nil
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewFromLevel(cfg.Logging.Level, cfg.Logging.Development)
	}

	logger.Info("Initializing Editor Shell backend",
		zap.String("addr", cfg.Addr()),
		zap.Bool("exec_enabled", cfg.Exec.Enabled),
	)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(promRegistry)
	tracer := tracing.New("editorshell", logger.Logger)

	registry, err := NewRegistry(cfg, command.Options{
		Metrics: metrics,
		Tracer:  tracer,
		Logger:  logger.Logger,
	})
	if err != nil {
		tracer.Close()
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.Logger))
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.CORSConfigFor(cfg.CORS.Origins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
		if cfg.RateLimit.GlobalRPS > 0 {
			burst := cfg.RateLimit.GlobalBurst
			if burst <= 0 {
				burst = cfg.RateLimit.GlobalRPS
			}
			router.Use(middleware.GlobalRateLimit(middleware.RateLimitConfig{
				RequestsPerSecond: cfg.RateLimit.GlobalRPS,
				Burst:             burst,
			}))
		}
	}
	if cfg.Compression.Enabled {
		router.Use(middleware.Compress(middleware.CompressConfig{
			MinBytes: cfg.Compression.MinBytes,
			Level:    middleware.DefaultCompressConfig().Level,
		}))
	}

	handlers.NewHandlers(registry, metrics, logger.Logger).Register(router)
	router.GET("/metrics", handlers.PrometheusHandler(promRegistry))

	wsHandler := ws.NewHandler(registry, metrics, logger.Logger, ws.Options{
		AllowedOrigins: cfg.CORS.Origins,
	})
	router.GET("/ws", wsHandler.HandleConnection)

	logger.Info("Server initialized successfully",
		zap.Int("commands", len(registry.List())),
	)

	return &Server{
		router:   router,
		registry: registry,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
		tracer:   tracer,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Router exposes the gin engine for in-process testing
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Registry returns the command registry
func (s *Server) Registry() *command.Registry {
	return s.registry
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// Close flushes spans and logs
func (s *Server) Close() error {
	s.tracer.Close()
	return s.logger.Close()
}
