package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/joestump/workflows/internal/auth"
)

func TestRolesCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newRolesCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("roles: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 19 {
		t.Fatalf("got %d lines, want header + 18 roles:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[1], "Generalist") {
		t.Errorf("first role line = %q, want Generalist", lines[1])
	}
}

func TestTokenCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newTokenCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("token: %v", err)
	}

	var token, digest string
	for _, line := range strings.Split(out.String(), "\n") {
		if v, ok := strings.CutPrefix(line, "token:  "); ok {
			token = v
		}
		if v, ok := strings.CutPrefix(line, "config: WORKFLOWS_API_TOKENS="+auth.HashPrefix); ok {
			digest = v
		}
	}
	if token == "" || digest == "" {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	if auth.HashToken(token) != digest {
		t.Error("printed digest does not match the token")
	}
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out.String(), "workflows dev") {
		t.Errorf("version output = %q", out.String())
	}
}
