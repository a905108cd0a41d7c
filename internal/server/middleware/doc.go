// Package middleware provides HTTP middleware for the sandbox HTTP server:
// security headers, CORS for the kubectl API, request size limits and
// request metrics.
package middleware
