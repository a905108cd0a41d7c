// Package tools provides shared utilities and types for MCP tool implementations.
package tools

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/kubectl-sandbox/internal/instrumentation"
	"github.com/giantswarm/kubectl-sandbox/internal/kubectl"
	"github.com/giantswarm/kubectl-sandbox/internal/logging"
	"github.com/giantswarm/kubectl-sandbox/internal/server"
)

// ToolHandler is the signature for MCP tool handler functions that take ServerContext.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error)

// WrapWithAuditLogging wraps a tool handler with tracing, a tool call metric
// and an audit record.
//
// The wrapper:
//   - starts a server span named after the tool
//   - captures the command, namespace and target from the request arguments
//   - derives success from the Go error and from result.IsError
//   - writes one audit record through the provider's AuditLogger
//
// Without an instrumentation provider only the span is recorded.
func WrapWithAuditLogging(
	toolName string,
	handler ToolHandler,
	sc *server.ServerContext,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, span := instrumentation.StartToolSpan(ctx, toolName,
			instrumentation.NewSpanAttributeBuilder().WithTransport(server.TransportMCP).Build()...,
		)
		defer span.End()

		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx)
		extractAuditInfoFromArgs(invocation, request.GetArguments())

		result, err := handler(ctx, request, sc)
		if err != nil {
			logging.WithTool(slog.Default(), toolName).Warn("tool handler failed", logging.Err(err))
		}

		switch {
		case err != nil:
			invocation.CompleteWithError(err)
		case result != nil && result.IsError:
			// MCP tool errors are returned in the result, not as Go errors
			invocation.Complete(false, errors.New(resultText(result)))
		default:
			invocation.CompleteSuccess()
		}

		status := logging.StatusSuccess
		if invocation.Success {
			instrumentation.SetSpanSuccess(span)
		} else {
			status = logging.StatusError
			instrumentation.SetSpanError(span, errors.New(invocation.Error))
		}

		provider := sc.InstrumentationProvider()
		provider.Metrics().RecordToolCall(ctx, toolName, status)
		provider.AuditLogger().LogToolInvocation(ctx, invocation)

		return result, err
	}
}

// extractAuditInfoFromArgs records the command and the target it resolves
// to. For a kubectl command the namespace is resolved the way the parser
// resolves it, falling back to "default" when neither the command nor the
// arguments name one.
func extractAuditInfoFromArgs(invocation *instrumentation.ToolInvocation, args map[string]interface{}) {
	command := StringArg(args, ArgCommand)
	namespace := StringArg(args, ArgNamespace)

	if command == "" || kubectl.ValidatePrefix(command) != nil {
		if command != "" {
			invocation.WithCommand(logging.TruncateCommand(command))
		}
		if namespace != "" {
			invocation.WithResource(namespace, "", "")
		}
		return
	}

	cmd := kubectl.ParseWithNamespace(command, namespace)
	invocation.WithCommand(logging.TruncateCommand(command)).
		WithResource(cmd.Namespace, cmd.Kind, cmd.Name)
}

// resultText returns the first text content of a tool result.
func resultText(result *mcp.CallToolResult) string {
	for _, content := range result.Content {
		if text, ok := content.(mcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}
