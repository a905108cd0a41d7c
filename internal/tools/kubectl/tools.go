package kubectltools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/kubectl-sandbox/internal/server"
	"github.com/giantswarm/kubectl-sandbox/internal/tools"
)

// Tool names.
const (
	ToolExecute      = "kubectl_execute"
	ToolAPIResources = "kubectl_api_resources"
)

// RegisterKubectlTools registers the simulated kubectl tools with the MCP server
func RegisterKubectlTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// kubectl_execute tool
	opts := []mcp.ToolOption{
		mcp.WithDescription("Execute a kubectl command against the simulated cluster. " +
			"Supports get, describe, apply, delete, cluster-info, version and api-resources. " +
			"No real cluster is contacted and nothing is mutated."),
	}
	opts = append(opts, tools.CommandParams(`e.g. "kubectl get pods web-app -n default"`)...)
	executeTool := mcp.NewTool(ToolExecute, opts...)

	s.AddTool(executeTool, tools.WrapWithAuditLogging(ToolExecute, handleExecute, sc))

	// kubectl_api_resources tool
	apiResourcesTool := mcp.NewTool(ToolAPIResources,
		mcp.WithDescription("List the resource kinds the simulated cluster serves, with their aliases and apiVersion"),
	)

	s.AddTool(apiResourcesTool, tools.WrapWithAuditLogging(ToolAPIResources, handleAPIResources, sc))

	return nil
}
