package server

import (
	"errors"

	"github.com/giantswarm/kubectl-sandbox/internal/catalog"
	"github.com/giantswarm/kubectl-sandbox/internal/instrumentation"
	"github.com/giantswarm/kubectl-sandbox/internal/kubectl"
)

// Option is a functional option for configuring ServerContext.
type Option func(*ServerContext) error

// WithExecutor sets the command executor for the ServerContext.
func WithExecutor(executor *kubectl.Executor) Option {
	return func(sc *ServerContext) error {
		if executor == nil {
			return ErrMissingExecutor
		}
		sc.executor = executor
		return nil
	}
}

// WithCatalog builds the executor over c.
func WithCatalog(c *catalog.Catalog) Option {
	return func(sc *ServerContext) error {
		if c == nil {
			return ErrMissingCatalog
		}
		sc.executor = kubectl.NewExecutor(c)
		return nil
	}
}

// WithLogger sets the logger for the ServerContext.
func WithLogger(logger Logger) Option {
	return func(sc *ServerContext) error {
		if logger == nil {
			return ErrMissingLogger
		}
		sc.logger = logger
		return nil
	}
}

// WithConfig sets the configuration for the ServerContext.
func WithConfig(config *Config) Option {
	return func(sc *ServerContext) error {
		if config == nil {
			return ErrMissingConfig
		}
		sc.config = config.Clone()
		return nil
	}
}

// WithServerName sets the server name in the configuration.
func WithServerName(name string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.ServerName = name
		return nil
	}
}

// WithDefaultNamespace sets the namespace used when a command names none.
func WithDefaultNamespace(namespace string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.DefaultNamespace = namespace
		return nil
	}
}

// WithLogLevel sets the logging level.
func WithLogLevel(level string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.LogLevel = level
		return nil
	}
}

// WithInstrumentationProvider sets the OpenTelemetry instrumentation provider.
func WithInstrumentationProvider(provider *instrumentation.Provider) Option {
	return func(sc *ServerContext) error {
		sc.instrumentationProvider = provider
		return nil
	}
}

// Error definitions for ServerContext validation and operations.
var (
	ErrMissingExecutor  = errors.New("command executor is required")
	ErrMissingCatalog   = errors.New("catalog is required")
	ErrMissingLogger    = errors.New("logger is required")
	ErrMissingConfig    = errors.New("configuration is required")
	ErrMissingNamespace = errors.New("default namespace is required")
)
