// Package instrumentation provides OpenTelemetry instrumentation for the
// kubectl sandbox.
//
// # Metrics
//
//   - http_requests_total: HTTP requests by method, path, and status
//   - http_request_duration_seconds: HTTP request durations
//   - kubectl_commands_total: commands by transport, action, kind, and status
//   - kubectl_command_duration_seconds: command durations
//   - mcp_tool_calls_total: MCP tool calls by tool and status
//
// Action, kind and namespace come from user input. Callers fold them through
// ClassifyAction, ClassifyKind and ClassifyNamespace before recording, and the
// namespace label is only attached when METRICS_DETAILED_LABELS is set.
//
// # Tracing
//
// Spans are created for MCP tool invocations (StartToolSpan) and for each
// command execution (StartCommandSpan). Tracing is off unless
// TRACING_EXPORTER is "otlp" or "stdout".
//
// # Configuration
//
// Instrumentation is disabled by default. DefaultConfig reads:
//
//	INSTRUMENTATION_ENABLED=true
//	METRICS_EXPORTER=prometheus|otlp|stdout
//	TRACING_EXPORTER=none|otlp|stdout
//	OTEL_EXPORTER_OTLP_ENDPOINT=http://localhost:4318
//	OTEL_TRACES_SAMPLER_ARG=0.1
//	METRICS_DETAILED_LABELS=true
//
// # Audit
//
// AuditLogger writes one structured record per MCP tool call, with the raw
// command, resolved namespace and trace correlation IDs.
package instrumentation
