package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// runStdioServer answers MCP requests read from in and writes responses to
// out. It returns nil when the client closes in or ctx is cancelled.
func runStdioServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, in io.Reader, out io.Writer) error {
	stdioSrv := mcpserver.NewStdioServer(mcpSrv)
	// out carries JSON-RPC only, so transport errors go to the slog handler.
	stdioSrv.SetErrorLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelError))

	slog.Info("stdio transport listening for MCP requests")

	err := stdioSrv.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio transport stopped with error: %w", err)
	}

	slog.Info("stdio transport stopped")
	return nil
}
