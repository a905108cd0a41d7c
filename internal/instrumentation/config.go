package instrumentation

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Exporter names accepted in Config.
const (
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName is the name of the service (default: kubectl-sandbox)
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Enabled determines if instrumentation is active (default: false for zero overhead)
	// Set to true via INSTRUMENTATION_ENABLED=true to enable metrics and tracing
	Enabled bool

	// MetricsExporter specifies the metrics exporter type
	// Options: "prometheus", "otlp", "stdout" (default: "prometheus")
	MetricsExporter string

	// TracingExporter specifies the tracing exporter type
	// Options: "otlp", "stdout", "none" (default: "none")
	TracingExporter string

	// OTLPEndpoint is the OTLP collector endpoint
	// Example: "http://localhost:4318"
	OTLPEndpoint string

	// OTLPInsecure controls whether to use insecure HTTP for OTLP export.
	// Only meant for local collectors.
	OTLPInsecure bool

	// TraceSamplingRate is the sampling rate for traces (0.0 to 1.0, default: 0.1)
	TraceSamplingRate float64

	// PrometheusEndpoint is the path for the Prometheus metrics endpoint (default: "/metrics")
	PrometheusEndpoint string

	// DetailedLabels adds the namespace label to command metrics.
	DetailedLabels bool
}

// DefaultConfig reads the instrumentation settings from the environment.
// Unset or unparsable variables fall back to the defaults.
func DefaultConfig() Config {
	return Config{
		ServiceName:        envOr("OTEL_SERVICE_NAME", "kubectl-sandbox", parseString),
		ServiceVersion:     "unknown",
		Enabled:            envOr("INSTRUMENTATION_ENABLED", false, strconv.ParseBool),
		MetricsExporter:    envOr("METRICS_EXPORTER", ExporterPrometheus, parseString),
		TracingExporter:    envOr("TRACING_EXPORTER", ExporterNone, parseString),
		OTLPEndpoint:       envOr("OTEL_EXPORTER_OTLP_ENDPOINT", "", parseString),
		OTLPInsecure:       envOr("OTEL_EXPORTER_OTLP_INSECURE", false, strconv.ParseBool),
		TraceSamplingRate:  envOr("OTEL_TRACES_SAMPLER_ARG", 0.1, parseFloat),
		PrometheusEndpoint: envOr("PROMETHEUS_ENDPOINT", "/metrics", parseString),
		DetailedLabels:     envOr("METRICS_DETAILED_LABELS", false, strconv.ParseBool),
	}
}

// Validate checks the exporter names, the sampling rate and the scrape path.
func (c *Config) Validate() error {
	switch c.MetricsExporter {
	case ExporterPrometheus, ExporterOTLP, ExporterStdout:
	default:
		return fmt.Errorf("unsupported metrics exporter %q", c.MetricsExporter)
	}
	switch c.TracingExporter {
	case ExporterOTLP, ExporterStdout, ExporterNone, "":
	default:
		return fmt.Errorf("unsupported tracing exporter %q", c.TracingExporter)
	}
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %v", c.TraceSamplingRate)
	}
	if c.PrometheusEndpoint != "" && !strings.HasPrefix(c.PrometheusEndpoint, "/") {
		return fmt.Errorf("prometheus endpoint must start with /, got %q", c.PrometheusEndpoint)
	}
	return nil
}

func envOr[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := parse(raw)
	if err != nil {
		return fallback
	}
	return value
}

func parseString(s string) (string, error) { return s, nil }

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

// Constants for metric label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"

	// Metric recording interval for push exporters.
	DefaultMetricInterval = 10 * time.Second
)
