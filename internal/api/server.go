// Package api provides the HTTP REST API server for SparkPlan Core.
//
// It exposes estimate CRUD, room analysis, panel synthesis, and compliance
// checking to the office front end.
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sparkplan/sparkplan-core/internal/estimate"
	"github.com/sparkplan/sparkplan-core/internal/infrastructure/config"
	"github.com/sparkplan/sparkplan-core/internal/infrastructure/influxdb"
	"github.com/sparkplan/sparkplan-core/internal/infrastructure/logging"
	"github.com/sparkplan/sparkplan-core/internal/infrastructure/mqtt"
	"github.com/sparkplan/sparkplan-core/internal/panel"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config    config.APIConfig
	App       config.AppConfig
	Logger    *logging.Logger
	Estimates estimate.Repository
	Estimator *estimate.Service
	Circuits  panel.Repository
	MQTT      *mqtt.Client     // optional: lifecycle events skipped when nil
	Metrics   *influxdb.Client // optional: run metrics skipped when nil
	Version   string
}

// Server is the HTTP API server for SparkPlan Core.
//
// It manages the HTTP listener, routes, and middleware. The server is
// created with New() and started with Start().
type Server struct {
	cfg       config.APIConfig
	app       config.AppConfig
	logger    *logging.Logger
	estimates estimate.Repository
	estimator *estimate.Service
	circuits  panel.Repository
	mqtt      *mqtt.Client
	metrics   *influxdb.Client
	version   string
	server    *http.Server
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Estimates == nil {
		return nil, fmt.Errorf("estimate repository is required")
	}
	if deps.Estimator == nil {
		return nil, fmt.Errorf("estimate service is required")
	}
	if deps.Circuits == nil {
		return nil, fmt.Errorf("circuit repository is required")
	}
	// MQTT and metrics are optional — lifecycle events and run metrics
	// are skipped when the clients are absent.

	return &Server{
		cfg:       deps.Config,
		app:       deps.App,
		logger:    deps.Logger,
		estimates: deps.Estimates,
		estimator: deps.Estimator,
		circuits:  deps.Circuits,
		mqtt:      deps.MQTT,
		metrics:   deps.Metrics,
		version:   deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// It builds the router and launches the HTTP listener in a background
// goroutine. The server can be stopped with Close().
func (s *Server) Start(_ context.Context) error {
	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running and responsive.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}

// publishEvent publishes an estimate lifecycle event if MQTT is configured.
// Event delivery is best effort: a broker outage must never fail the
// request that triggered the event.
func (s *Server) publishEvent(topic string, payload []byte) {
	if s.mqtt == nil {
		return
	}
	if err := s.mqtt.Publish(topic, payload, 1, false); err != nil {
		s.logger.Warn("failed to publish event", "topic", topic, "error", err)
	}
}
