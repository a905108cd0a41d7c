// Package logging provides structured logging utilities for kubectl-sandbox.
//
// This package centralizes logging patterns so every component writes the
// same attribute keys using the standard library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "kubectl.execute")
//	logger.Info("command executed",
//	    logging.Action("get"),
//	    logging.ResourceType("pods"),
//	    logging.Namespace("default"))
//
// Command text is truncated before it is logged, and client addresses have
// their IPs redacted through SanitizeHost.
package logging
