package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/giantswarm/kubectl-sandbox/internal/instrumentation"
	"github.com/giantswarm/kubectl-sandbox/internal/server"
)

// createTestProvider returns a disabled provider whose audit records are
// written as JSON into the returned buffer.
func createTestProvider(t *testing.T) (*instrumentation.Provider, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	provider, err := instrumentation.NewProvider(context.Background(), instrumentation.Config{Enabled: false})
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return provider, &buf
}

func createTestServerContext(t *testing.T, provider *instrumentation.Provider) *server.ServerContext {
	t.Helper()

	opts := []server.Option{}
	if provider != nil {
		opts = append(opts, server.WithInstrumentationProvider(provider))
	}
	sc, err := server.NewServerContext(context.Background(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func createTestRequest(args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Name = "test_tool"
	request.Params.Arguments = args
	return request
}

// auditRecords returns the tool_invocation records written to buf.
func auditRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["msg"] == "tool_invocation" {
			records = append(records, entry)
		}
	}
	return records
}

func installTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = tp.Shutdown(context.Background())
	})
	return exporter
}

func successHandler(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("success"), nil
}

func TestWrapWithAuditLogging_HandlesSuccess(t *testing.T) {
	provider, buf := createTestProvider(t)
	sc := createTestServerContext(t, provider)

	wrapped := WrapWithAuditLogging("test_tool", successHandler, sc)

	result, err := wrapped(context.Background(), createTestRequest(nil))

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	records := auditRecords(t, buf)
	require.Len(t, records, 1)
	assert.Equal(t, "INFO", records[0]["level"])
	assert.Equal(t, "test_tool", records[0]["tool"])
	assert.Equal(t, true, records[0]["success"])
}

func TestWrapWithAuditLogging_HandlesGoError(t *testing.T) {
	provider, buf := createTestProvider(t)
	sc := createTestServerContext(t, provider)

	expectedErr := errors.New("handler error")
	handler := func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
		return nil, expectedErr
	}

	wrapped := WrapWithAuditLogging("test_tool", handler, sc)

	result, err := wrapped(context.Background(), createTestRequest(nil))

	require.Error(t, err)
	assert.Equal(t, expectedErr, err)
	assert.Nil(t, result)

	records := auditRecords(t, buf)
	require.Len(t, records, 1)
	assert.Equal(t, "WARN", records[0]["level"])
	assert.Equal(t, false, records[0]["success"])
	assert.Equal(t, "handler error", records[0]["error"])
}

func TestWrapWithAuditLogging_HandlesMCPToolError(t *testing.T) {
	provider, buf := createTestProvider(t)
	sc := createTestServerContext(t, provider)

	handler := func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("tool error message"), nil
	}

	wrapped := WrapWithAuditLogging("test_tool", handler, sc)

	result, err := wrapped(context.Background(), createTestRequest(nil))

	require.NoError(t, err) // No Go error
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	records := auditRecords(t, buf)
	require.Len(t, records, 1)
	assert.Equal(t, false, records[0]["success"])
	assert.Equal(t, "tool error message", records[0]["error"])
}

func TestWrapWithAuditLogging_RecordsCommandTarget(t *testing.T) {
	provider, buf := createTestProvider(t)
	sc := createTestServerContext(t, provider)

	wrapped := WrapWithAuditLogging("kubectl_execute", successHandler, sc)

	_, err := wrapped(context.Background(), createTestRequest(map[string]interface{}{
		"command": "kubectl describe po web-app -n staging",
	}))
	require.NoError(t, err)

	records := auditRecords(t, buf)
	require.Len(t, records, 1)
	assert.Equal(t, "kubectl describe po web-app -n staging", records[0]["command"])
	assert.Equal(t, "staging", records[0]["namespace"])
	assert.Equal(t, "pods", records[0]["resource_type"])
	assert.Equal(t, "web-app", records[0]["resource_name"])
}

func TestWrapWithAuditLogging_RecordsSpan(t *testing.T) {
	exporter := installTestTracer(t)
	sc := createTestServerContext(t, nil)

	handler := func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("boom"), nil
	}
	wrapped := WrapWithAuditLogging("kubectl_execute", handler, sc)

	_, err := wrapped(context.Background(), createTestRequest(nil))
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "tool.kubectl_execute", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "boom", spans[0].Status.Description)
}

func TestWrapWithAuditLogging_NoProvider(t *testing.T) {
	// Create server context without instrumentation provider
	sc := createTestServerContext(t, nil)

	wrapped := WrapWithAuditLogging("test_tool", successHandler, sc)

	result, err := wrapped(context.Background(), createTestRequest(nil))

	// Should still work, just without audit logging
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)
}

func TestExtractAuditInfoFromArgs(t *testing.T) {
	tests := []struct {
		name            string
		args            map[string]interface{}
		expectCommand   string
		expectNamespace string
		expectResType   string
		expectResName   string
	}{
		{
			name:            "get with alias",
			args:            map[string]interface{}{"command": "kubectl get svc"},
			expectCommand:   "kubectl get svc",
			expectNamespace: "default",
			expectResType:   "services",
		},
		{
			name: "namespace argument as fallback",
			args: map[string]interface{}{
				"command":   "kubectl get pods",
				"namespace": "jobs",
			},
			expectCommand:   "kubectl get pods",
			expectNamespace: "jobs",
			expectResType:   "pods",
		},
		{
			name: "namespace flag wins",
			args: map[string]interface{}{
				"command":   "kubectl delete pod web-app --namespace=prod",
				"namespace": "jobs",
			},
			expectCommand:   "kubectl delete pod web-app --namespace=prod",
			expectNamespace: "prod",
			expectResType:   "pods",
			expectResName:   "web-app",
		},
		{
			name:          "unknown resource keeps no kind",
			args:          map[string]interface{}{"command": "kubectl get widgets"},
			expectCommand: "kubectl get widgets",
			// namespace still resolves
			expectNamespace: "default",
		},
		{
			name:          "foreign command",
			args:          map[string]interface{}{"command": "helm list", "namespace": "jobs"},
			expectCommand: "helm list",
			// only the argument is known
			expectNamespace: "jobs",
		},
		{
			name: "empty args",
			args: map[string]interface{}{},
		},
		{
			name: "wrong types",
			args: map[string]interface{}{"command": 42, "namespace": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invocation := instrumentation.NewToolInvocation("test")
			extractAuditInfoFromArgs(invocation, tt.args)

			assert.Equal(t, tt.expectCommand, invocation.Command)
			assert.Equal(t, tt.expectNamespace, invocation.Namespace)
			assert.Equal(t, tt.expectResType, invocation.ResourceType)
			assert.Equal(t, tt.expectResName, invocation.ResourceName)
		})
	}
}

func TestResultText(t *testing.T) {
	assert.Equal(t, "hello", resultText(mcp.NewToolResultText("hello")))
	assert.Equal(t, "", resultText(&mcp.CallToolResult{}))
}
