package e2e

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// Fixture creates and inspects files under a root directory.
type Fixture struct {
	t       *testing.T
	baseDir string
}

// NewFixture creates a new fixture helper rooted at the given directory.
func NewFixture(t *testing.T, baseDir string) *Fixture {
	t.Helper()
	return &Fixture{
		t:       t,
		baseDir: baseDir,
	}
}

// Root returns the fixture's base directory.
func (f *Fixture) Root() string {
	return f.baseDir
}

// WriteFile writes content relative to the fixture root, creating parent
// directories as needed.
func (f *Fixture) WriteFile(relPath, content string) string {
	f.t.Helper()
	fullPath := f.Path(relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		f.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o600); err != nil {
		f.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
	return fullPath
}

// Agent describes an agent definition to write with WriteAgent.
type Agent struct {
	Name        string
	Description string
	Category    string
	Frameworks  []string
	Body        string
}

// ValidAgent returns an agent that passes every schema check.
func ValidAgent(name, framework string) Agent {
	return Agent{
		Name:        name,
		Description: "Reviews " + framework + " code for " + name,
		Category:    "review",
		Frameworks:  []string{framework},
		Body: "## Your Expertise\n\n" +
			strings.Repeat("You know the "+framework+" rendering model and its pitfalls. ", 3) +
			"\n\n## Review Checklist\n\n- Effects clean up after themselves\n",
	}
}

// WriteAgent renders a as a frontmatter document at relPath. Empty fields
// are omitted from the header.
func (f *Fixture) WriteAgent(relPath string, a Agent) string {
	f.t.Helper()

	var b strings.Builder
	b.WriteString("---\n")
	if a.Name != "" {
		b.WriteString("name: " + a.Name + "\n")
	}
	if a.Description != "" {
		b.WriteString("description: " + a.Description + "\n")
	}
	if a.Category != "" {
		b.WriteString("category: " + a.Category + "\n")
	}
	if len(a.Frameworks) > 0 {
		b.WriteString("frameworks:\n")
		for _, fw := range a.Frameworks {
			b.WriteString("  - " + fw + "\n")
		}
	}
	b.WriteString("---\n")
	b.WriteString(a.Body)

	return f.WriteFile(relPath, b.String())
}

// MkdirAll creates a directory and all parent directories relative to the root.
func (f *Fixture) MkdirAll(relPath string) string {
	f.t.Helper()
	fullPath := f.Path(relPath)
	if err := os.MkdirAll(fullPath, 0o750); err != nil {
		f.t.Fatalf("failed to create directory %s: %v", fullPath, err)
	}
	return fullPath
}

// Path returns the full path for a relative path.
func (f *Fixture) Path(relPath string) string {
	return filepath.Join(f.baseDir, filepath.FromSlash(relPath))
}

// Exists returns true if the file or directory exists.
func (f *Fixture) Exists(relPath string) bool {
	f.t.Helper()
	_, err := os.Stat(f.Path(relPath))
	return err == nil
}

// ReadFile reads and returns the content of a file.
func (f *Fixture) ReadFile(relPath string) string {
	f.t.Helper()
	fullPath := f.Path(relPath)

	// #nosec G304 - fullPath is constructed from the fixture root and a test-provided path
	data, err := os.ReadFile(fullPath)
	if err != nil {
		f.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(data)
}

// List returns the sorted entry names of a directory.
func (f *Fixture) List(relDir string) []string {
	f.t.Helper()
	entries, err := os.ReadDir(f.Path(relDir))
	if err != nil {
		f.t.Fatalf("failed to list %s: %v", relDir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
