package tools

import (
	mcp "github.com/mark3labs/mcp-go/mcp"
)

// Argument names shared by tools that run commands.
const (
	ArgCommand   = "command"
	ArgNamespace = "namespace"
)

// CommandParams returns the tool options for the required command argument
// and the optional namespace fallback.
//
// Usage in tool registration:
//
//	opts := []mcp.ToolOption{
//	    mcp.WithDescription("..."),
//	}
//	opts = append(opts, tools.CommandParams(`e.g. "kubectl get pods"`)...)
//	tool := mcp.NewTool("tool_name", opts...)
func CommandParams(example string) []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString(ArgCommand,
			mcp.Required(),
			mcp.Description("Full kubectl command, "+example),
		),
		mcp.WithString(ArgNamespace,
			mcp.Description("Namespace to use when the command has no -n/--namespace flag (optional)"),
		),
	}
}

// StringArg returns the named argument, or "" when it is missing or not a string.
func StringArg(args map[string]interface{}, name string) string {
	value, _ := args[name].(string)
	return value
}
