package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestRedactSensitive_Keys(t *testing.T) {
	tests := []struct {
		key      string
		value    string
		redacted bool
	}{
		{"password", "secret", true},
		{"Password", "hunter2", true},
		{"token", "abc", true},
		{"session_token", "abc", true},
		{"Authorization", "xyz", true},
		{"client_secret", "s", true},
		{"email", "a@b.com", false},
		{"status", "401", false},
		{"token", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := redactSensitive(slog.String(tt.key, tt.value)).Value.String()
			if tt.redacted && got != redactedValue {
				t.Errorf("%s=%q not redacted", tt.key, got)
			}
			if !tt.redacted && got != tt.value {
				t.Errorf("%s=%q changed to %q", tt.key, tt.value, got)
			}
		})
	}
}

func TestRedactSensitive_BearerValue(t *testing.T) {
	got := redactSensitive(slog.String("header", "Bearer abc.def.ghi")).Value.String()
	if got != "Bearer "+redactedValue {
		t.Errorf("bearer value = %q", got)
	}
}

func TestRedactSensitive_Group(t *testing.T) {
	a := slog.Group("request", slog.String("authorization", "Bearer x"), slog.String("path", "/api/v1/people"))
	got := redactSensitive(a)

	attrs := got.Value.Group()
	if attrs[0].Value.String() == "Bearer x" {
		t.Error("nested authorization not redacted")
	}
	if attrs[1].Value.String() != "/api/v1/people" {
		t.Errorf("path = %q", attrs[1].Value.String())
	}
}

func TestRedaction_EndToEnd(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "debug", Format: "text", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	l.Debug("sign in", "email", "a@b.com", "password", "secret")

	out := buf.String()
	if strings.Contains(out, "password=secret") {
		t.Errorf("password leaked: %s", out)
	}
	if !strings.Contains(out, "email=a@b.com") {
		t.Errorf("email missing: %s", out)
	}
}

func TestMaskToken(t *testing.T) {
	if got := MaskToken("abcdefghijkl"); got != "abc...jkl" {
		t.Errorf("MaskToken = %q", got)
	}
	if got := MaskToken("short"); got != "***" {
		t.Errorf("MaskToken(short) = %q", got)
	}
}

func TestIsSensitiveKey(t *testing.T) {
	if !IsSensitiveKey("X-Auth-Token") {
		t.Error("X-Auth-Token should be sensitive")
	}
	if IsSensitiveKey("request_id") {
		t.Error("request_id should not be sensitive")
	}
}
