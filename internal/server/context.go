package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/giantswarm/kubectl-sandbox/internal/catalog"
	"github.com/giantswarm/kubectl-sandbox/internal/instrumentation"
	"github.com/giantswarm/kubectl-sandbox/internal/kubectl"
	"github.com/giantswarm/kubectl-sandbox/internal/logging"
)

// Transports a command can arrive on. They label logs, spans and metrics.
const (
	TransportHTTP = "http"
	TransportMCP  = "mcp"
	TransportCLI  = "cli"
)

// ServerContext encapsulates all dependencies needed by the sandbox servers
// and provides a clean abstraction for dependency injection and lifecycle management.
type ServerContext struct {
	// Core dependencies
	executor *kubectl.Executor
	logger   Logger
	config   *Config

	// OpenTelemetry instrumentation; nil disables metrics and tracing.
	instrumentationProvider *instrumentation.Provider

	// Context management
	ctx    context.Context
	cancel context.CancelFunc

	// Lifecycle management
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new ServerContext with default values.
// Use the provided functional options to customize the context.
func NewServerContext(ctx context.Context, opts ...Option) (*ServerContext, error) {
	serverCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:    serverCtx,
		cancel: cancel,
		config: NewDefaultConfig(),
		logger: logging.DefaultLogger(),
	}

	for _, opt := range opts {
		if err := opt(sc); err != nil {
			cancel()
			return nil, err
		}
	}

	if sc.executor == nil {
		sc.executor = kubectl.NewExecutor(catalog.Default())
	}

	if err := sc.validate(); err != nil {
		cancel()
		return nil, err
	}

	return sc, nil
}

// Context returns the server context for cancellation and deadlines.
func (sc *ServerContext) Context() context.Context {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.ctx
}

// Executor returns the command executor.
func (sc *ServerContext) Executor() *kubectl.Executor {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.executor
}

// Logger returns the logger interface.
func (sc *ServerContext) Logger() Logger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.logger
}

// Config returns the server configuration.
func (sc *ServerContext) Config() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// InstrumentationProvider returns the OpenTelemetry provider, or nil.
func (sc *ServerContext) InstrumentationProvider() *instrumentation.Provider {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.instrumentationProvider
}

// RunCommand executes one raw command for the given transport.
//
// namespace is the fallback used when the command has no namespace flag; an
// empty value falls back to the configured default namespace. The result is
// exactly what the executor returns; this method only adds a span, a metric
// sample and a log line around it.
func (sc *ServerContext) RunCommand(ctx context.Context, transport, raw, namespace string) kubectl.ExecutionResult {
	start := time.Now()

	sc.mu.RLock()
	executor := sc.executor
	logger := sc.logger
	provider := sc.instrumentationProvider
	if namespace == "" {
		namespace = sc.config.DefaultNamespace
	}
	sc.mu.RUnlock()

	// Parsing is repeated inside the executor; this copy only feeds telemetry.
	var cmd kubectl.Command
	if kubectl.ValidatePrefix(raw) == nil {
		cmd = kubectl.ParseWithNamespace(raw, namespace)
	}
	action := instrumentation.ClassifyAction(cmd.Action, kubectl.Actions())

	ctx, span := instrumentation.StartCommandSpan(ctx, action,
		instrumentation.NewSpanAttributeBuilder().
			WithTransport(transport).
			WithAction(cmd.Action).
			WithNamespace(cmd.Namespace).
			WithResource(cmd.Kind, cmd.Name).
			Build()...,
	)
	defer span.End()

	result := executor.ExecuteInNamespace(raw, namespace)
	duration := time.Since(start)

	status := logging.StatusSuccess
	if result.Success {
		instrumentation.SetSpanSuccess(span)
	} else {
		status = logging.StatusError
		instrumentation.SetSpanError(span, result.Err)
	}

	provider.Metrics().RecordCommand(ctx, transport,
		action,
		instrumentation.ClassifyKind(cmd.Kind),
		instrumentation.ClassifyNamespace(cmd.Namespace),
		status,
		duration,
	)

	args := []any{
		logging.KeyTransport, transport,
		logging.Operation("kubectl." + action),
		logging.Command(raw),
		logging.Action(cmd.Action),
		logging.Namespace(cmd.Namespace),
		logging.Status(status),
		logging.Duration(duration),
	}
	switch {
	case result.Success:
		logger.Debug("command executed", args...)
	case errors.Is(result.Err, kubectl.ErrInternalExecution):
		logger.Error("command failed unexpectedly", append(args, logging.Err(result.Err))...)
	default:
		logger.Info("command rejected", append(args, logging.Err(result.Err))...)
	}

	return result
}

// Shutdown gracefully shuts down the server context.
// This cancels the context and releases any resources.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.logger.Info("Shutting down server context")

	if sc.cancel != nil {
		sc.cancel()
	}

	sc.shutdown = true

	sc.logger.Info("Server context shutdown complete")
	return nil
}

// IsShutdown returns true if the server context has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// validate ensures all required dependencies are set.
func (sc *ServerContext) validate() error {
	if sc.executor == nil {
		return ErrMissingExecutor
	}
	if sc.logger == nil {
		return ErrMissingLogger
	}
	if sc.config == nil {
		return ErrMissingConfig
	}
	if sc.config.DefaultNamespace == "" {
		return ErrMissingNamespace
	}
	return nil
}

// Logger defines the interface for logging operations.
type Logger = logging.Logger

// Config holds the server configuration.
type Config struct {
	// Server settings
	ServerName string `json:"serverName"`
	Version    string `json:"version"`

	// DefaultNamespace is used when neither the command nor the request names one.
	DefaultNamespace string `json:"defaultNamespace"`

	// CatalogPath is the YAML catalog loaded at startup; empty means the built-in catalog.
	CatalogPath string `json:"catalogPath"`

	// HTTP settings
	APIPath        string   `json:"apiPath"`
	AllowedOrigins []string `json:"allowedOrigins"`

	// Logging settings
	LogLevel  string `json:"logLevel"`
	LogFormat string `json:"logFormat"`
}

// NewDefaultConfig creates a configuration with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		ServerName:       "kubectl-sandbox",
		Version:          "0.1.0",
		DefaultNamespace: catalog.DefaultNamespace,
		APIPath:          DefaultAPIPath,
		LogLevel:         "info",
		LogFormat:        logging.FormatJSON,
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c

	if c.AllowedOrigins != nil {
		clone.AllowedOrigins = make([]string, len(c.AllowedOrigins))
		copy(clone.AllowedOrigins, c.AllowedOrigins)
	}

	return &clone
}
