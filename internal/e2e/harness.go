// Package e2e provides infrastructure for end-to-end CLI tests: a harness
// that runs agentsync against an isolated repository and captures output.
package e2e

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/klauern/agentsync/internal/cli"
)

// Result contains the outcome of running a CLI command.
type Result struct {
	// Stdout contains the captured standard output.
	Stdout string
	// Err is the error returned by the CLI command, if any.
	Err error
	// ExitCode mirrors main: 0 for success, 1 for any returned error.
	ExitCode int
}

// Success returns true if the command completed without error.
func (r *Result) Success() bool {
	return r.Err == nil
}

// Harness runs CLI commands inside an isolated config home and repository.
type Harness struct {
	t       *testing.T
	homeDir string
	repo    *Fixture
}

// NewHarness creates a harness with an empty repository and an isolated
// AGENTSYNC_HOME, so user config never leaks into a test.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	h := &Harness{
		t:       t,
		homeDir: t.TempDir(),
		repo:    NewFixture(t, t.TempDir()),
	}
	t.Setenv("AGENTSYNC_HOME", h.homeDir)
	for _, key := range []string{
		"AGENTSYNC_MAPPING_FILE",
		"AGENTSYNC_SYNC_MODE",
		"AGENTSYNC_VALIDATION_PATTERNS",
		"AGENTSYNC_OUTPUT_FORMAT",
	} {
		t.Setenv(key, "")
	}
	return h
}

// HomeDir returns the isolated config directory.
func (h *Harness) HomeDir() string {
	return h.homeDir
}

// Repo returns the fixture for the repository the CLI operates on.
func (h *Harness) Repo() *Fixture {
	return h.repo
}

// Run executes agentsync with args against the harness repository. Colors
// are always disabled so output can be matched literally.
func (h *Harness) Run(args ...string) *Result {
	h.t.Helper()

	full := append([]string{"agentsync", "--no-color", "--dir", h.repo.Root()}, args...)

	oldStdout := os.Stdout
	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		h.t.Fatalf("failed to create stdout pipe: %v", err)
	}
	os.Stdout = stdoutW

	// Drain concurrently; a large report would otherwise fill the pipe
	// buffer and block the command.
	var stdoutBuf bytes.Buffer
	var copyErr error
	copyDone := make(chan struct{})
	go func() {
		defer close(copyDone)
		_, copyErr = io.Copy(&stdoutBuf, stdoutR)
	}()

	cmdErr := cli.Run(context.Background(), full)

	if err := stdoutW.Close(); err != nil {
		h.t.Fatalf("failed to close stdout pipe writer: %v", err)
	}
	os.Stdout = oldStdout

	<-copyDone
	if copyErr != nil {
		h.t.Fatalf("failed to read captured stdout: %v", copyErr)
	}

	exitCode := 0
	if cmdErr != nil {
		exitCode = 1
	}
	return &Result{
		Stdout:   stdoutBuf.String(),
		Err:      cmdErr,
		ExitCode: exitCode,
	}
}
