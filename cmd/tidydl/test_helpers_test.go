package main

import (
	"bytes"
	"strings"
	"testing"

	"tidydl/internal/config"
	"tidydl/internal/testsupport"
)

// writeTestConfig persists a test configuration and returns its path for
// --config.
func writeTestConfig(t *testing.T, opts ...testsupport.ConfigOption) *config.Config {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	if err := cfg.Save(); err != nil {
		t.Fatalf("save config: %v", err)
	}
	return cfg
}

// runCLI executes the root command with a fresh command context per call.
func runCLI(t *testing.T, args []string, stdin string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, fragment string) {
	t.Helper()
	if !strings.Contains(output, fragment) {
		t.Fatalf("expected output to contain %q, got:\n%s", fragment, output)
	}
}
