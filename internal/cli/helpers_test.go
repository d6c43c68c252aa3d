package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauern/agentsync/internal/util"
)

// runCLI runs the application and returns what it printed to stdout. Log
// output on stderr is discarded.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	oldStdout, oldStderr := os.Stdout, os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("failed to open %s: %v", os.DevNull, err)
	}
	os.Stdout, os.Stderr = w, devNull

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	runErr := Run(context.Background(), append([]string{"agentsync"}, args...))

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close pipe writer: %v", err)
	}
	os.Stdout, os.Stderr = oldStdout, oldStderr
	_ = devNull.Close()

	return <-done, runErr
}

// agentDoc builds a document that passes every check.
func agentDoc(name, framework string) string {
	return "---\n" +
		"name: " + name + "\n" +
		"description: Reviews " + framework + " code\n" +
		"category: review\n" +
		"frameworks: [" + framework + "]\n" +
		"---\n" +
		"## Your Expertise\n\n" +
		strings.Repeat("Deep knowledge of component lifecycles and state. ", 3) + "\n\n" +
		"## Review Checklist\n\n- Props are typed\n"
}

// newRepo lays out a small agent library under a temp dir.
func newRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	util.WriteFile(t, filepath.Join(root, "agents", "vue", "composition.md"), agentDoc("composition", "vue"))
	util.WriteFile(t, filepath.Join(root, "agents", "vue", "note.txt"), "scratch")
	util.WriteFile(t, filepath.Join(root, "agents", "react", "hooks.md"), agentDoc("hooks", "react"))
	util.WriteFile(t, filepath.Join(root, "plugins", "vue", "agents", "old.md"), "stale")
	return root
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
