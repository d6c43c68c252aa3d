package e2e

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// AssertSuccess fails the test if the command returned an error.
func AssertSuccess(t *testing.T, r *Result) {
	t.Helper()
	if !r.Success() {
		t.Fatalf("agentsync failed: %v\nstdout: %s", r.Err, r.Stdout)
	}
}

// AssertFailed fails the test unless the command exited 1 with an error
// mentioning substr. An empty substr accepts any error.
func AssertFailed(t *testing.T, r *Result, substr string) {
	t.Helper()
	if r.Success() {
		t.Fatalf("agentsync succeeded, want failure\nstdout: %s", r.Stdout)
	}
	if r.ExitCode != 1 {
		t.Errorf("exit code = %d, want 1", r.ExitCode)
	}
	if substr != "" && !strings.Contains(r.Err.Error(), substr) {
		t.Errorf("error %q does not mention %q", r.Err, substr)
	}
}

// AssertOutputContains fails the test for every substring missing from stdout.
func AssertOutputContains(t *testing.T, r *Result, substrs ...string) {
	t.Helper()
	for _, s := range substrs {
		if !strings.Contains(r.Stdout, s) {
			t.Errorf("output missing %q\ngot: %s", s, r.Stdout)
		}
	}
}

// AssertOutputNotContains fails the test if stdout contains substr.
func AssertOutputNotContains(t *testing.T, r *Result, substr string) {
	t.Helper()
	if strings.Contains(r.Stdout, substr) {
		t.Errorf("output unexpectedly contains %q\ngot: %s", substr, r.Stdout)
	}
}

// AssertListEquals fails the test if the directory listing differs.
func AssertListEquals(t *testing.T, f *Fixture, relDir string, want ...string) {
	t.Helper()
	if got := f.List(relDir); !slices.Equal(got, want) {
		t.Errorf("%s contains %v, want %v", relDir, got, want)
	}
}

// AssertContent fails the test unless the file at relPath holds exactly want.
func AssertContent(t *testing.T, f *Fixture, relPath, want string) {
	t.Helper()
	if got := f.ReadFile(relPath); got != want {
		t.Errorf("%s = %q, want %q", relPath, got, want)
	}
}

// AssertAbsent fails the test if relPath exists.
func AssertAbsent(t *testing.T, f *Fixture, relPath string) {
	t.Helper()
	if f.Exists(relPath) {
		t.Errorf("%s exists, want absent", relPath)
	}
}

// AssertMirrored fails the test unless target holds exactly the .md files of
// source, byte for byte.
func AssertMirrored(t *testing.T, f *Fixture, source, target string) {
	t.Helper()
	var docs []string
	for _, name := range f.List(source) {
		if filepath.Ext(name) == ".md" {
			docs = append(docs, name)
		}
	}
	AssertListEquals(t, f, target, docs...)
	for _, name := range docs {
		AssertContent(t, f, target+"/"+name, f.ReadFile(source+"/"+name))
	}
}

