// Package httpserver wraps net/http.Server with graceful shutdown on context
// cancellation or SIGINT/SIGTERM.
package httpserver
