package repl

import (
	"sort"
	"strings"
)

var builtins = []string{"exit", "quit", "history", "complete"}

// Completer suggests command paths for a prefix.
type Completer struct {
	commands []string
}

// NewCompleter creates a completer over command paths such as
// "contract list". The shell built-ins are always included.
func NewCompleter(commands []string) *Completer {
	seen := make(map[string]bool)
	var all []string
	for _, c := range append(append([]string(nil), commands...), builtins...) {
		if !seen[c] {
			seen[c] = true
			all = append(all, c)
		}
	}
	sort.Strings(all)
	return &Completer{commands: all}
}

// Complete returns the command paths starting with prefix.
func (c *Completer) Complete(prefix string) []string {
	var out []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			out = append(out, cmd)
		}
	}
	return out
}
