package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/kubectl-sandbox/internal/catalog"
	"github.com/giantswarm/kubectl-sandbox/internal/instrumentation"
	"github.com/giantswarm/kubectl-sandbox/internal/logging"
	"github.com/giantswarm/kubectl-sandbox/internal/server"
	kubectltools "github.com/giantswarm/kubectl-sandbox/internal/tools/kubectl"
)

// newServeCmd creates the Cobra command for starting the sandbox server.
func newServeCmd() *cobra.Command {
	var config ServeConfig

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the kubectl sandbox server",
		Long: `Start the kubectl sandbox server. Commands are answered from an in-memory
catalog of pods, services, deployments and nodes; no real cluster is contacted.

Supports two transport types:
  - http: the JSON kubectl API, the Model Context Protocol streamable HTTP
    endpoint and health probes on one listener (default)
  - stdio: Model Context Protocol over standard input/output

With the http transport a separate metrics listener serves /metrics when
instrumentation is enabled (INSTRUMENTATION_ENABLED=true).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loadServeEnvVars(cmd, &config)
			return runServe(config)
		},
	}

	cmd.Flags().StringVar(&config.Transport, "transport", transportHTTP, "Transport type: http or stdio")
	cmd.Flags().StringVar(&config.HTTPAddr, "http-addr", defaultHTTPAddr, "HTTP server address (for http transport)")
	cmd.Flags().StringVar(&config.APIPath, "api-path", server.DefaultAPIPath, "kubectl API endpoint path (for http transport)")
	cmd.Flags().StringVar(&config.MCPEndpoint, "mcp-endpoint", defaultMCPEndpoint, "MCP streamable HTTP endpoint path (for http transport)")
	cmd.Flags().StringVar(&config.MetricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address (for http transport)")
	cmd.Flags().BoolVar(&config.MetricsEnabled, "metrics", true, "Serve Prometheus metrics on --metrics-addr when instrumentation is enabled")
	cmd.Flags().StringVar(&config.CatalogPath, "catalog", "", "YAML or JSON catalog file (can also be set via KUBECTL_SANDBOX_CATALOG env var; default: built-in catalog)")
	cmd.Flags().StringVar(&config.Namespace, "namespace", catalog.DefaultNamespace, "Namespace used when a command names none (can also be set via KUBECTL_SANDBOX_NAMESPACE env var)")
	cmd.Flags().BoolVar(&config.DebugMode, "debug", false, "Enable debug logging (default: false)")
	cmd.Flags().StringVar(&config.LogFormat, "log-format", logging.FormatJSON, "Log format: json or text (can also be set via LOG_FORMAT env var)")
	cmd.Flags().StringVar(&config.AllowedOrigins, "allowed-origins", "", "Comma separated CORS origins for the kubectl API (can also be set via ALLOWED_ORIGINS env var; default: any origin)")
	cmd.Flags().BoolVar(&config.EnableHSTS, "enable-hsts", false, "Send Strict-Transport-Security behind a TLS terminating proxy (can also be set via ENABLE_HSTS env var)")
	cmd.Flags().Int64Var(&config.MaxRequestBytes, "max-request-bytes", defaultMaxRequestBytes, "Maximum kubectl API request body size in bytes (0 disables the limit)")

	return cmd
}

// runServe contains the main server logic with support for multiple transports
func runServe(config ServeConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	// Logs always go to stderr; stdout belongs to the stdio transport.
	logger, err := logging.NewLogger(config.logLevel(), config.LogFormat, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	slog.SetDefault(logger)

	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize OpenTelemetry instrumentation provider
	instrumentationConfig := instrumentation.DefaultConfig()
	instrumentationConfig.ServiceVersion = rootCmd.Version
	instrumentationProvider, err := instrumentation.NewProvider(shutdownCtx, instrumentationConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if shutdownErr := instrumentationProvider.Shutdown(context.Background()); shutdownErr != nil {
			slog.Error("error during instrumentation shutdown", logging.Err(shutdownErr))
		}
	}()

	if instrumentationProvider.Enabled() {
		slog.Info("OpenTelemetry instrumentation enabled",
			"metrics_exporter", instrumentationConfig.MetricsExporter,
			"tracing_exporter", instrumentationConfig.TracingExporter)
	}

	c, err := loadCatalog(config.CatalogPath)
	if err != nil {
		return err
	}

	serverConfig, err := config.serverConfig(rootCmd.Version)
	if err != nil {
		return err
	}

	serverContext, err := server.NewServerContext(shutdownCtx,
		server.WithConfig(serverConfig),
		server.WithCatalog(c),
		server.WithLogger(logging.NewSlogAdapter(logger)),
		server.WithInstrumentationProvider(instrumentationProvider),
	)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			slog.Error("error during server context shutdown", logging.Err(err))
		}
	}()

	mcpSrv, err := newMCPServer(serverContext)
	if err != nil {
		return err
	}

	// Start the appropriate server based on transport type
	switch config.Transport {
	case transportStdio:
		return runStdioServer(shutdownCtx, mcpSrv, os.Stdin, os.Stdout)
	case transportHTTP:
		return runHTTPServer(shutdownCtx, config, mcpSrv, serverContext)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: %s, %s)", config.Transport, transportHTTP, transportStdio)
	}
}

// newMCPServer creates the MCP server with every tool registered.
func newMCPServer(sc *server.ServerContext) (*mcpserver.MCPServer, error) {
	mcpSrv := mcpserver.NewMCPServer(sc.Config().ServerName, sc.Config().Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
	)

	if err := kubectltools.RegisterKubectlTools(mcpSrv, sc); err != nil {
		return nil, fmt.Errorf("failed to register kubectl tools: %w", err)
	}

	return mcpSrv, nil
}
