// Package shutdown runs close hooks once, in reverse registration order,
// either on a normal exit or when SIGINT/SIGTERM arrives.
package shutdown
