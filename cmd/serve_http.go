package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/kubectl-sandbox/internal/logging"
	"github.com/giantswarm/kubectl-sandbox/internal/server"
	"github.com/giantswarm/kubectl-sandbox/internal/server/middleware"
)

// newHTTPHandler builds the API listener's handler: the kubectl API, the MCP
// streamable HTTP endpoint and the health probes, behind the shared middleware.
func newHTTPHandler(config ServeConfig, mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, healthChecker *server.HealthChecker) http.Handler {
	mux := http.NewServeMux()

	// kubectl API: CORS answers preflights before the body limit applies.
	var api http.Handler = server.NewKubectlHandler(sc)
	api = middleware.MaxRequestSize(config.MaxRequestBytes)(api)
	api = middleware.CORS(sc.Config().AllowedOrigins)(api)
	mux.Handle(config.APIPath, api)

	// Create Streamable HTTP handler
	mcpHandler := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithEndpointPath(config.MCPEndpoint),
	)
	mux.Handle(config.MCPEndpoint, mcpHandler)

	// Add health check endpoints
	healthChecker.RegisterHealthEndpoints(mux)

	routes := middleware.Routes{
		Paths:        append([]string{config.APIPath}, healthPaths...),
		SessionPaths: []string{config.MCPEndpoint},
	}

	var handler http.Handler = mux
	handler = middleware.SecurityHeaders(middleware.SecurityHeadersConfig{EnableHSTS: config.EnableHSTS})(handler)
	handler = middleware.HTTPMetrics(sc.InstrumentationProvider(), routes)(handler)
	return handler
}

// runHTTPServer runs the API listener and, when enabled, the metrics listener
// until ctx is cancelled or either listener fails.
func runHTTPServer(ctx context.Context, config ServeConfig, mcpSrv *mcpserver.MCPServer, sc *server.ServerContext) error {
	healthChecker := server.NewHealthChecker(sc)

	// Create HTTP server with security timeouts
	httpServer := &http.Server{
		Addr:              config.HTTPAddr,
		Handler:           newHTTPHandler(config, mcpSrv, sc, healthChecker),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	var metricsServer *server.MetricsServer
	provider := sc.InstrumentationProvider()
	if config.MetricsEnabled && provider.ServesPrometheus() {
		var err error
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    config.MetricsAddr,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
	}

	logger := logging.WithOperation(slog.Default(), "serve.http")
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server starting",
			"addr", config.HTTPAddr,
			"api_path", config.APIPath,
			"mcp_endpoint", config.MCPEndpoint,
			"health_endpoints", healthPaths)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
		return nil
	})

	if metricsServer != nil {
		g.Go(func() error {
			logger.Info("metrics server starting", "addr", metricsServer.Addr(), "endpoint", metricsServer.Path())
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server stopped with error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutdown signal received, stopping HTTP server")
		healthChecker.SetReady(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()

		var errs []error
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("error shutting down metrics server", logging.Err(err))
				errs = append(errs, err)
			}
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("error shutting down HTTP server: %w", err))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("HTTP server gracefully stopped")
	return nil
}
