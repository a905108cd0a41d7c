package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrAction    = "action"
	attrKind      = "kind"
	attrNamespace = "namespace"
	attrTool      = "tool"
	attrTransport = "transport"
)

var durationBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5}

// Metrics provides methods for recording observability metrics.
// A zero Metrics is valid and records nothing.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	// Command metrics
	commandsTotal   metric.Int64Counter
	commandDuration metric.Float64Histogram

	// MCP tool metrics
	toolCallsTotal metric.Int64Counter

	// detailedLabels adds the namespace label to command metrics.
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.commandsTotal, err = meter.Int64Counter(
		"kubectl_commands_total",
		metric.WithDescription("Total number of simulated kubectl commands"),
		metric.WithUnit("{command}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubectl_commands_total counter: %w", err)
	}

	m.commandDuration, err = meter.Float64Histogram(
		"kubectl_command_duration_seconds",
		metric.WithDescription("Simulated kubectl command duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubectl_command_duration_seconds histogram: %w", err)
	}

	m.toolCallsTotal, err = meter.Int64Counter(
		"mcp_tool_calls_total",
		metric.WithDescription("Total number of MCP tool calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_calls_total counter: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m == nil || m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	)

	m.httpRequestsTotal.Add(ctx, 1, attrs)
	m.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordCommand records one executed command.
//
// Callers pass labels already bounded with ClassifyAction, ClassifyKind and
// ClassifyNamespace; the namespace label is only attached with detailedLabels.
func (m *Metrics) RecordCommand(ctx context.Context, transport, action, kind, namespace, status string, duration time.Duration) {
	if m == nil || m.commandsTotal == nil || m.commandDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTransport, transport),
		attribute.String(attrAction, action),
		attribute.String(attrKind, kind),
		attribute.String(attrStatus, status),
	}
	if m.detailedLabels {
		attrs = append(attrs, attribute.String(attrNamespace, namespace))
	}

	m.commandsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.commandDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordToolCall records one MCP tool call.
func (m *Metrics) RecordToolCall(ctx context.Context, tool, status string) {
	if m == nil || m.toolCallsTotal == nil {
		return
	}

	m.toolCallsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	))
}
