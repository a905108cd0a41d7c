// Package kubectltools exposes the simulated kubectl as MCP tools.
//
// kubectl_execute runs a command through the same ServerContext path as the
// HTTP API, so both transports return identical output for identical input.
// kubectl_api_resources describes the kinds the catalog serves.
package kubectltools
