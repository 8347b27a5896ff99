// Package logger builds configured log/slog loggers with sensible defaults:
// JSON output at info level for production, text output at debug level for
// development. Attr helpers keep attribute keys consistent across packages.
package logger
