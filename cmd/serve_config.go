package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/giantswarm/kubectl-sandbox/internal/catalog"
	"github.com/giantswarm/kubectl-sandbox/internal/logging"
	"github.com/giantswarm/kubectl-sandbox/internal/server"
	"github.com/giantswarm/kubectl-sandbox/internal/server/middleware"
)

// Transport type constants for the serve command.
const (
	transportHTTP  = "http"
	transportStdio = "stdio"
)

// envValueTrue is the string value used to enable boolean environment variables.
const envValueTrue = "true"

// Environment variables read when the matching flag is not set.
const (
	envCatalog        = "KUBECTL_SANDBOX_CATALOG"
	envNamespace      = "KUBECTL_SANDBOX_NAMESPACE"
	envAllowedOrigins = "ALLOWED_ORIGINS"
	envEnableHSTS     = "ENABLE_HSTS"
	envLogFormat      = "LOG_FORMAT"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultMCPEndpoint     = "/mcp"
	defaultMaxRequestBytes = 1 << 20

	// defaultShutdownTimeout bounds how long in-flight requests may take
	// once a shutdown signal arrives.
	defaultShutdownTimeout = 30 * time.Second
)

// healthPaths are registered on the API listener and cannot be reused.
var healthPaths = []string{"/healthz", "/readyz", "/healthz/detailed"}

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	// Transport settings
	Transport string
	HTTPAddr  string

	// Endpoint paths
	APIPath     string
	MCPEndpoint string

	// Metrics server
	MetricsAddr    string
	MetricsEnabled bool

	// Simulation settings
	CatalogPath string
	Namespace   string

	// Logging
	DebugMode bool
	LogFormat string

	// HTTP hardening
	AllowedOrigins  string
	EnableHSTS      bool
	MaxRequestBytes int64
}

// loadServeEnvVars fills settings from environment variables.
// Environment variables only override flag values when the flag was not explicitly set.
func loadServeEnvVars(cmd *cobra.Command, config *ServeConfig) {
	if !cmd.Flags().Changed("catalog") {
		loadEnvIfEmpty(&config.CatalogPath, envCatalog)
	}

	if !cmd.Flags().Changed("namespace") {
		if ns := os.Getenv(envNamespace); ns != "" {
			config.Namespace = ns
		}
	}

	if !cmd.Flags().Changed("allowed-origins") {
		loadEnvIfEmpty(&config.AllowedOrigins, envAllowedOrigins)
	}

	if !cmd.Flags().Changed("log-format") {
		if format := os.Getenv(envLogFormat); format != "" {
			config.LogFormat = format
		}
	}

	// This properly handles the case where user explicitly sets --enable-hsts=false
	if !cmd.Flags().Changed("enable-hsts") {
		if os.Getenv(envEnableHSTS) == envValueTrue {
			config.EnableHSTS = true
		}
	}
}

// loadEnvIfEmpty loads an environment variable into a string pointer if it's empty.
func loadEnvIfEmpty(target *string, envKey string) {
	if *target == "" {
		*target = os.Getenv(envKey)
	}
}

// Validate checks the configuration before anything is started.
func (c ServeConfig) Validate() error {
	switch c.Transport {
	case transportHTTP, transportStdio:
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: %s, %s)", c.Transport, transportHTTP, transportStdio)
	}

	if strings.TrimSpace(c.Namespace) == "" {
		return errors.New("namespace must not be empty")
	}

	switch strings.ToLower(c.LogFormat) {
	case logging.FormatJSON, logging.FormatText:
	default:
		return fmt.Errorf("invalid log format %q: must be %q or %q", c.LogFormat, logging.FormatJSON, logging.FormatText)
	}

	if c.Transport != transportHTTP {
		return nil
	}

	if err := validateEndpointPath(c.APIPath, "--api-path"); err != nil {
		return err
	}
	if err := validateEndpointPath(c.MCPEndpoint, "--mcp-endpoint"); err != nil {
		return err
	}
	if c.APIPath == c.MCPEndpoint {
		return fmt.Errorf("--api-path and --mcp-endpoint must differ (both are %s)", c.APIPath)
	}

	if c.MaxRequestBytes < 0 {
		return fmt.Errorf("--max-request-bytes must not be negative (got %d)", c.MaxRequestBytes)
	}

	if _, err := middleware.ValidateAllowedOrigins(c.AllowedOrigins); err != nil {
		return fmt.Errorf("invalid allowed origins: %w", err)
	}

	return nil
}

func validateEndpointPath(path, flag string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("%s must start with / (got %q)", flag, path)
	}
	for _, reserved := range healthPaths {
		if path == reserved {
			return fmt.Errorf("%s cannot use the reserved path %s", flag, reserved)
		}
	}
	return nil
}

// logLevel returns the level name for NewLogger.
func (c ServeConfig) logLevel() string {
	if c.DebugMode {
		return "debug"
	}
	return "info"
}

// serverConfig maps the serve settings onto the ServerContext configuration.
func (c ServeConfig) serverConfig(version string) (*server.Config, error) {
	origins, err := middleware.ValidateAllowedOrigins(c.AllowedOrigins)
	if err != nil {
		return nil, fmt.Errorf("invalid allowed origins: %w", err)
	}

	cfg := server.NewDefaultConfig()
	if version != "" {
		cfg.Version = version
	}
	cfg.DefaultNamespace = c.Namespace
	cfg.CatalogPath = c.CatalogPath
	cfg.APIPath = c.APIPath
	cfg.AllowedOrigins = origins
	cfg.LogLevel = c.logLevel()
	cfg.LogFormat = strings.ToLower(c.LogFormat)
	return cfg, nil
}

// loadCatalog returns the catalog at path, or the built-in one when path is empty.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded catalog", "path", path)
	return c, nil
}
