// Package server provides the ServerContext pattern and the HTTP surfaces of
// the kubectl sandbox.
//
// This package implements:
//
//   - ServerContext: holds the command executor, logger, configuration and
//     instrumentation provider, and manages their lifecycle
//   - Functional Options: dependency injection and configuration
//   - KubectlHandler: the JSON API that executes simulated kubectl commands
//   - HealthChecker: liveness, readiness and detailed health endpoints
//   - MetricsServer: a dedicated Prometheus scrape endpoint
//
// Every transport (HTTP API, MCP tools, CLI) executes commands through
// ServerContext.RunCommand, which wraps the executor with a span, a metric
// sample and a log line. The result itself is exactly what the executor
// returns.
//
// Example usage:
//
//	serverCtx, err := NewServerContext(ctx,
//		WithCatalog(c),
//		WithLogger(logger),
//		WithDefaultNamespace("default"),
//		WithInstrumentationProvider(provider),
//	)
//	if err != nil {
//		return err
//	}
//	defer serverCtx.Shutdown()
//
//	mux := http.NewServeMux()
//	mux.Handle(DefaultAPIPath, NewKubectlHandler(serverCtx))
//	NewHealthChecker(serverCtx).RegisterHealthEndpoints(mux)
//
// Configuration Management:
//
// The Config struct carries the server identity, the default namespace, the
// catalog source, the API path and allowed CORS origins, and the logging
// settings. WithConfig stores a deep copy so later mutations by the caller
// have no effect.
package server
