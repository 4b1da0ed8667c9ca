//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Endpoint  string
	Token     string
	Workspace string
	BinPath   string
	Verbose   bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Endpoint:  os.Getenv("ASANA_ENDPOINT"),
		Token:     os.Getenv("ASANA_TOKEN"),
		Workspace: os.Getenv("ASANA_WORKSPACE"),
		BinPath:   getBinaryPath(),
		Verbose:   os.Getenv("ASANA_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the asana binary
func getBinaryPath() string {
	if path := os.Getenv("ASANA_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../asana",
		"./asana",
		"../asana",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "asana" // Fallback to PATH
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	if config.Token == "" {
		t.Skip("ASANA_TOKEN not set, skipping integration test")
	}

	if config.Workspace == "" {
		t.Skip("ASANA_WORKSPACE not set, skipping integration test")
	}

	if _, err := os.Stat(config.BinPath); os.IsNotExist(err) {
		t.Skipf("asana binary not found at %s, skipping integration test", config.BinPath)
	}
}

// CommandRunner provides utilities for running asana commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes an asana command and returns output. The token and workspace
// are passed through flags so tests never touch the user's config file.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	fullArgs := append([]string{
		"--token", runner.config.Token,
		"--workspace", runner.config.Workspace,
	}, args...)

	cmd := exec.Command(runner.config.BinPath, fullArgs...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// CleanupPortfolio attempts to delete a test portfolio by GID
func (runner *CommandRunner) CleanupPortfolio(gid string) {
	stdout, stderr, err := runner.Run("portfolios", "delete", gid, "--force")
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for portfolio %s: %s\nStderr: %s", gid, stdout, stderr)
	}
}

// ExtractGID pulls the GID out of a "... with GID <gid>" success message
func ExtractGID(output string) string {
	marker := "with GID "

	index := strings.LastIndex(output, marker)
	if index < 0 {
		return ""
	}

	return strings.TrimSpace(output[index+len(marker):])
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	output = strings.TrimSpace(output)
	if !strings.HasPrefix(output, "{") && !strings.HasPrefix(output, "[") {
		t.Errorf("Output does not appear to be JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output is valid YAML
func AssertYAMLOutput(t *testing.T, output string) {
	output = strings.TrimSpace(output)
	if strings.Contains(output, "---") || strings.Contains(output, ":") {
		return // Looks like YAML
	}

	t.Errorf("Output does not appear to be YAML: %s", output)
}
