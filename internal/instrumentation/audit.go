package instrumentation

import (
	"context"
	"log/slog"
	"time"
)

// ToolInvocation captures one MCP tool call for audit logging.
type ToolInvocation struct {
	Tool      string
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	// Command is the raw command text, when the tool takes one.
	Command string

	Namespace    string
	ResourceType string
	ResourceName string

	TraceID string
	SpanID  string
}

// NewToolInvocation starts timing a call to tool.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{
		Tool:      tool,
		StartTime: time.Now(),
	}
}

// WithCommand records the raw command text.
func (ti *ToolInvocation) WithCommand(command string) *ToolInvocation {
	ti.Command = command
	return ti
}

// WithResource records the resolved namespace and target.
func (ti *ToolInvocation) WithResource(namespace, resourceType, resourceName string) *ToolInvocation {
	ti.Namespace = namespace
	ti.ResourceType = resourceType
	ti.ResourceName = resourceName
	return ti
}

// WithSpanContext copies trace and span IDs from ctx, if it carries a valid span.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	ti.TraceID = GetTraceID(ctx)
	ti.SpanID = GetSpanID(ctx)
	return ti
}

// Complete stops the timer and records the outcome.
func (ti *ToolInvocation) Complete(success bool, err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = success
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// CompleteSuccess is Complete(true, nil).
func (ti *ToolInvocation) CompleteSuccess() *ToolInvocation {
	return ti.Complete(true, nil)
}

// CompleteWithError is Complete(false, err).
func (ti *ToolInvocation) CompleteWithError(err error) *ToolInvocation {
	return ti.Complete(false, err)
}

// Status returns StatusSuccess or StatusError.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns attributes with bounded values, safe to aggregate on.
func (ti *ToolInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.String("namespace_class", ClassifyNamespace(ti.Namespace)),
		slog.String("resource_type", ClassifyKind(ti.ResourceType)),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	return attrs
}

// LogAuditAttrs returns the full audit record, including the raw command.
func (ti *ToolInvocation) LogAuditAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.Time("start_time", ti.StartTime),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
		slog.String("status", ti.Status()),
	}
	if ti.Command != "" {
		attrs = append(attrs, slog.String("command", ti.Command))
	}
	if ti.Namespace != "" {
		attrs = append(attrs, slog.String("namespace", ti.Namespace))
	}
	if ti.ResourceType != "" {
		attrs = append(attrs, slog.String("resource_type", ti.ResourceType))
	}
	if ti.ResourceName != "" {
		attrs = append(attrs, slog.String("resource_name", ti.ResourceName))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", ti.SpanID))
	}
	return attrs
}

// AuditLogger writes tool invocations as structured audit records.
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger returns an AuditLogger writing to logger, or to
// slog.Default() when logger is nil.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger}
}

// LogToolInvocation writes one audit record. Failed calls are logged at warn.
func (a *AuditLogger) LogToolInvocation(ctx context.Context, ti *ToolInvocation) {
	if a == nil || ti == nil {
		return
	}
	level := slog.LevelInfo
	if !ti.Success {
		level = slog.LevelWarn
	}
	a.logger.LogAttrs(ctx, level, "tool_invocation", ti.LogAuditAttrs()...)
}

// TraceIDFromContext returns the trace ID of the span in ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	return GetTraceID(ctx)
}
