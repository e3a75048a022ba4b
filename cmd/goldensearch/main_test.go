// Package main provides tests for the goldensearch CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/goldensearch/internal/cli"
	"github.com/leapstack-labs/goldensearch/internal/cli/config"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()

	cmd := cli.NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func statePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "state.db")
}

func TestVersionCommand(t *testing.T) {
	output, _, err := run(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(output, "goldensearch v") {
		t.Errorf("version output should contain 'goldensearch v', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	output, _, err := run(t, "--help")
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	expectedCommands := []string{"match", "hunt", "chsh", "scan", "verify", "identities", "casimir", "bell", "history"}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestCHSHCommandJSON(t *testing.T) {
	output, _, err := run(t, "chsh", "-o", "json", "--state", statePath(t))
	if err != nil {
		t.Fatalf("chsh command error = %v", err)
	}

	var result struct {
		Result struct {
			MaxScore float64 `json:"max_score"`
			Tested   int     `json:"tested"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, output)
	}
	if result.Result.Tested != 8100 {
		t.Errorf("tested = %d, want 8100", result.Result.Tested)
	}
	if d := result.Result.MaxScore - 2.3819660112501052; d > 1e-10 || d < -1e-10 {
		t.Errorf("max score = %v, want 4-φ", result.Result.MaxScore)
	}
}

func TestMatchCommandMarkdown(t *testing.T) {
	output, _, err := run(t, "match", "0.75", "--output", "markdown", "--state", statePath(t))
	if err != nil {
		t.Fatalf("match command error = %v", err)
	}
	if !strings.Contains(output, "3/4") {
		t.Errorf("match output should contain '3/4', got: %s", output)
	}
	if strings.Contains(output, "\x1b[") {
		t.Errorf("markdown output should not contain ANSI codes: %q", output)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "goldensearch.yaml")
	content := "output: json\nstate_path: runs/state.db\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	output, _, err := run(t, "--config", cfgPath, "verify", "--sector", "leptons", "--save")
	if err != nil {
		t.Fatalf("verify command error = %v", err)
	}
	if !strings.Contains(output, `"run_id"`) {
		t.Errorf("verify output should be JSON with a run_id, got: %s", output)
	}
	if _, err := os.Stat(filepath.Join(dir, "runs", "state.db")); err != nil {
		t.Errorf("state database should be created next to the config file: %v", err)
	}
}

func TestVerboseLogging(t *testing.T) {
	_, errOutput, err := run(t, "-v", "-o", "json", "--state", statePath(t), "verify", "--save")
	if err != nil {
		t.Fatalf("verify command error = %v", err)
	}
	if !strings.Contains(errOutput, "level=DEBUG") {
		t.Errorf("verbose run should log debug records to stderr, got: %s", errOutput)
	}
}

func TestInvalidOutputMode(t *testing.T) {
	_, _, err := run(t, "bell", "-o", "html", "--state", statePath(t))
	if err == nil {
		t.Fatal("expected error for invalid output mode")
	}
	if !strings.Contains(err.Error(), "invalid output mode") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	output, _, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion command error = %v", err)
	}
	if !strings.Contains(output, "goldensearch") {
		t.Errorf("bash completion should mention goldensearch")
	}
}
