// Package logger provides structured logging for leasedesk.
//
// It wraps log/slog:
//
//   - logger.go: Logger interface, handlers, dynamic level
//   - context.go: request ids and command views carried by a context
//   - redact.go: redaction of passwords, tokens and Authorization values
//
// The CLI logs to stderr at warn level unless --verbose is given.
package logger
