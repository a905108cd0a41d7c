// Package cmd provides the command-line interface for kubectl-sandbox.
//
// This package implements a Cobra-based CLI with these subcommands:
//   - serve: Starts the server (default behavior when no subcommand is provided)
//   - exec: Runs one simulated kubectl command and prints the result
//   - version: Displays the application version
//   - self-update: Updates the binary to the latest version from GitHub releases
//
// Command Structure:
//
//	kubectl-sandbox [flags]                          # Starts the server (default)
//	kubectl-sandbox serve [flags]                    # Explicitly starts the server
//	kubectl-sandbox exec kubectl get pods            # Runs one command
//	kubectl-sandbox version                          # Shows version information
//	kubectl-sandbox self-update                      # Updates to latest release
//
// The serve command supports two transports:
//   - http: kubectl JSON API, MCP streamable HTTP endpoint and health probes (default)
//   - stdio: MCP over standard input/output
//
// Transport Configuration Examples:
//
//	kubectl-sandbox serve --http-addr :8080 --api-path /api/kubectl --mcp-endpoint /mcp
//	kubectl-sandbox serve --transport stdio --catalog ./catalog.yaml
//
// Most serve flags can also be set through environment variables; a flag set
// on the command line always wins.
package cmd
