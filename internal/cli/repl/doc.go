// Package repl is the line loop behind "leasedesk-cli shell".
//
// It reads lines, splits them into arguments with shell-style quoting,
// keeps a persistent history and hands each line to an Executor. The
// built-ins are exit, quit, history and complete.
package repl
