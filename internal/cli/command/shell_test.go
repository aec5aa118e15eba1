package command

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yndnr/leasedesk-go/internal/cli/output"
	"github.com/yndnr/leasedesk-go/internal/core/domain"
)

func TestShell_ResumesAfterLogin(t *testing.T) {
	input := strings.Join([]string{
		"contract list",
		"login --email ana@example.com --password secret",
		"exit",
	}, "\n") + "\n"
	env := newTestEnv(t, withStdin(input))
	env.acceptSignIn(t)
	env.server.reply("GET /api/v1/contracts", http.StatusOK, sampleContracts())

	if err := env.run("shell"); err != nil {
		t.Fatalf("shell error = %v", err)
	}

	reqs := env.server.requests()
	if len(reqs) != 2 || reqs[0] != "POST /api/v1/sessions" || reqs[1] != "GET /api/v1/contracts" {
		t.Fatalf("requests = %v", reqs)
	}
	stderr := env.stderr.String()
	contains(t, "stderr", stderr, "[info] "+MsgSignInFirst)
	contains(t, "stderr", stderr, "resuming: contract list")
	contains(t, "stdout", env.stdout.String(), "Apto 12")
	contains(t, "stdout", env.stdout.String(), "leasedesk (ana@example.com)> ")
	if env.rt.Sessions.State() != domain.StateAuthenticated {
		t.Error("session should be authenticated")
	}
}

func TestShell_ErrorsDoNotStopTheLoop(t *testing.T) {
	input := "contract list\nnope\nversion\n"
	env := newTestEnv(t, signedIn(), withStdin(input))
	env.server.handle("GET /api/v1/contracts", func(w http.ResponseWriter, _ *http.Request) {
		errorResponse(w, http.StatusUnauthorized, "expired")
	})

	if err := env.run("shell"); err != nil {
		t.Fatalf("shell error = %v", err)
	}
	contains(t, "stderr", env.stderr.String(), "[error] "+domain.MsgSessionExpired)
	contains(t, "stdout", env.stdout.String(), "version")
	contains(t, "stdout", env.stdout.String(), "leasedesk> ")
}

func TestShell_HistorySkipsPasswords(t *testing.T) {
	env := newTestEnv(t, withStdin("version\nlogin -e ana@example.com --password secret\n"))
	env.acceptSignIn(t)

	if err := env.run("shell"); err != nil {
		t.Fatalf("shell error = %v", err)
	}
	if err := env.rt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(filepath.Dir(env.rt.ConfigPath), historyFile))
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "version" {
		t.Errorf("history = %q, want only %q", got, "version")
	}
}

func TestShell_NoNesting(t *testing.T) {
	env := newTestEnv(t, withStdin("shell\n"))

	if err := env.run("shell"); err != nil {
		t.Fatalf("shell error = %v", err)
	}
	contains(t, "stdout", env.stdout.String(), "Error: already in a shell")
}

func TestShell_ReloadConfig(t *testing.T) {
	env := newTestEnv(t)
	s := newShell(env.rt)

	if err := os.WriteFile(env.rt.ConfigPath, []byte("output: yaml\nlog:\n  level: warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	s.reloadConfig(env.rt.ConfigPath)
	if got := env.rt.Output(); got != output.FormatYAML {
		t.Errorf("output = %q, want yaml", got)
	}

	// A broken file keeps the previous settings.
	if err := os.WriteFile(env.rt.ConfigPath, []byte("output: xml\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	s.reloadConfig(env.rt.ConfigPath)
	if got := env.rt.Output(); got != output.FormatYAML {
		t.Errorf("output = %q, want yaml kept", got)
	}
}

func TestCommandPaths(t *testing.T) {
	paths := commandPaths(App().Commands)
	want := map[string]bool{"help": false, "login": false, "contract list": false, "report payments": false, "order create": false}
	for _, p := range paths {
		if _, ok := want[p]; ok {
			want[p] = true
		}
	}
	for p, seen := range want {
		if !seen {
			t.Errorf("missing %q in %v", p, paths)
		}
	}
}
