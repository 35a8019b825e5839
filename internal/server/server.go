// Package server assembles the HTTP API server and its Bedrock agent client.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/go-chi/chi/v5"
	"github.com/unrolled/secure"

	"github.com/skillpath-labs/lms-backend/internal/agents"
	appconfig "github.com/skillpath-labs/lms-backend/internal/config"
	"github.com/skillpath-labs/lms-backend/internal/handlers"
	"github.com/skillpath-labs/lms-backend/internal/middleware"
	"github.com/skillpath-labs/lms-backend/internal/monitoring"
	"github.com/skillpath-labs/lms-backend/pkg/httpmiddleware"
	"github.com/skillpath-labs/lms-backend/pkg/logger"
	"github.com/skillpath-labs/lms-backend/pkg/metrics"
	"github.com/skillpath-labs/lms-backend/pkg/utils"
)

// Server owns the HTTP listener, the Bedrock agent invoker and the
// monitoring surfaces.
type Server struct {
	cfg     *appconfig.AppConfig
	log     logger.Logger
	metrics metrics.Metrics
	server  *http.Server
}

// New creates a Server with all components initialized. The AWS credential
// chain is resolved here so a misconfigured environment fails at startup.
func New(ctx context.Context, cfg *appconfig.AppConfig, log logger.Logger) (*Server, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Agents.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := bedrockagentruntime.NewFromConfig(awsCfg)

	s := &Server{
		cfg:     cfg,
		log:     log,
		metrics: metrics.NewMetrics(cfg.Metrics.EnableHTTPMetrics, cfg.Metrics.EnableAgentMetrics, log),
	}

	invoker := agents.NewInvoker(client, log, &s.metrics)
	api := handlers.New(log, invoker, cfg.Agents)

	monitor := monitoring.NewHealthMonitor(monitoring.Config{
		Logger:           log,
		Agents:           []agents.Agent{cfg.Agents.CourseCreator(), cfg.Agents.Trainer()},
		Timeout:          cfg.Health.Timeout,
		FailureThreshold: cfg.Health.FailureThreshold,
	})

	s.server = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:        s.createRouter(api, monitor),
		ReadTimeout:    cfg.HTTP.ReadTimeout(),
		WriteTimeout:   cfg.HTTP.WriteTimeout(),
		IdleTimeout:    cfg.HTTP.IdleTimeout(),
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	log.Info("LMS backend initialized",
		logger.IntField("http_port", cfg.HTTP.Port),
		logger.StringField("aws_region", cfg.Agents.Region))

	return s, nil
}

// createRouter sets up all routes and middleware
func (s *Server) createRouter(api *handlers.Handler, monitor *monitoring.HealthMonitor) http.Handler {
	r := chi.NewRouter()

	mwConfig := httpmiddleware.DefaultConfig()
	mwConfig.Logger = s.log
	mwConfig.EnableLogging = true
	// chi's Recoverer is replaced by the structured recovery middleware below
	mwConfig.EnableRecovery = false
	mwConfig.CORS = &httpmiddleware.CORSConfig{
		AllowedOrigins: s.cfg.CORS.AllowedOrigins,
		AllowedMethods: s.cfg.CORS.AllowedMethods,
		AllowedHeaders: s.cfg.CORS.AllowedHeaders,
		MaxAge:         s.cfg.CORS.MaxAgeSeconds,
	}
	mwConfig.Security = utils.ToPtr(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	httpmiddleware.ApplyToRouter(r, mwConfig)

	recoveryConfig := middleware.DefaultRecoveryConfig()
	recoveryConfig.Logger = s.log
	r.Use(middleware.Recovery(recoveryConfig))
	r.Use(s.metrics.HTTPMiddleware())

	api.Routes(r)
	r.Get(s.cfg.Health.LivenessPath, monitor.LivenessHandler())
	r.Get(s.cfg.Health.ReadinessPath, monitor.ReadinessHandler())

	return r
}

// Listen starts the HTTP server and returns channels for error handling
func (s *Server) Listen() (chan error, func(), func(), error) {
	errChan := make(chan error, 1)

	go func() {
		s.log.Info("Starting HTTP server", logger.StringField("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	if s.cfg.Metrics.ExposeMetrics {
		s.metrics.Listen(s.cfg.Metrics.Port)
		metricsErrChan := make(chan error, 1)
		go func() {
			if err := <-s.metrics.ErrChan(); err != nil && err != http.ErrServerClosed {
				metricsErrChan <- err
			}
		}()
		errChan = utils.MergeErrorChans(errChan, metricsErrChan)
	}

	closer := func() {
		s.log.Info("Forcefully closing HTTP server")
		s.metrics.Stop()
		if err := s.Close(); err != nil {
			s.log.Error("Error during forced shutdown", logger.ErrorField(err))
		}
	}

	gracefulCloser := func() {
		s.log.Info("Gracefully closing HTTP server")
		s.metrics.Stop()
		if err := s.GracefulShutdown(); err != nil {
			s.log.Error("Error during graceful shutdown", logger.ErrorField(err))
		}
	}

	return errChan, closer, gracefulCloser, nil
}

// GracefulShutdown gracefully shuts down the HTTP server
func (s *Server) GracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	return nil
}

// Close forcefully shuts down the server
func (s *Server) Close() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}
