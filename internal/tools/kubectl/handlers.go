package kubectltools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/kubectl-sandbox/internal/catalog"
	"github.com/giantswarm/kubectl-sandbox/internal/server"
	"github.com/giantswarm/kubectl-sandbox/internal/tools"
)

// APIResource is one entry of the kubectl_api_resources output.
type APIResource struct {
	Name       string   `json:"name"`
	Singular   string   `json:"singular"`
	ShortNames []string `json:"shortNames,omitempty"`
	APIVersion string   `json:"apiVersion"`
	Namespaced bool     `json:"namespaced"`
	Kind       string   `json:"kind"`
}

// handleExecute runs one command. A failed command is a tool error result
// carrying the kubectl-style message; it is never a Go error.
func handleExecute(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	command := tools.StringArg(args, tools.ArgCommand)
	if command == "" {
		return mcp.NewToolResultError("command is required"), nil
	}
	namespace := tools.StringArg(args, tools.ArgNamespace)

	result := sc.RunCommand(ctx, server.TransportMCP, command, namespace)
	if !result.Success {
		return mcp.NewToolResultError(result.Error), nil
	}

	return mcp.NewToolResultText(result.Output), nil
}

// handleAPIResources lists the registered kinds as JSON.
func handleAPIResources(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	kinds := catalog.Kinds()
	resources := make([]APIResource, 0, len(kinds))
	for _, k := range kinds {
		resources = append(resources, APIResource{
			Name:       k.Name,
			Singular:   k.Singular,
			ShortNames: k.ShortNames,
			APIVersion: k.APIVersion(),
			Namespaced: k.Namespaced,
			Kind:       k.Kind,
		})
	}

	jsonData, err := json.MarshalIndent(resources, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal api resources: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
