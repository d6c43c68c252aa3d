package e2e

import (
	"errors"
	"testing"
)

func TestAssertHelpers(t *testing.T) {
	r := &Result{Stdout: "✓ PASS 0 error(s), 0 warning(s)", ExitCode: 0}
	AssertSuccess(t, r)
	AssertOutputContains(t, r, "PASS", "0 warning(s)")
	AssertOutputNotContains(t, r, "FAIL")

	failed := &Result{Err: errors.New("validation failed"), ExitCode: 1}
	AssertFailed(t, failed, "validation")
	AssertFailed(t, failed, "")
}

func TestFixtureHelpers(t *testing.T) {
	f := NewFixture(t, t.TempDir())

	f.WriteAgent("agents/vue/a.md", ValidAgent("a", "vue"))
	f.WriteFile("agents/vue/b.txt", "notes")
	f.WriteFile("plugins/vue/agents/a.md", f.ReadFile("agents/vue/a.md"))

	AssertContent(t, f, "agents/vue/b.txt", "notes")
	AssertAbsent(t, f, "agents/vue/c.md")
	AssertListEquals(t, f, "agents/vue", "a.md", "b.txt")
	AssertMirrored(t, f, "agents/vue", "plugins/vue/agents")
	if !f.Exists("agents/vue") {
		t.Error("Exists(agents/vue) = false")
	}
}

func TestValidAgentRendering(t *testing.T) {
	f := NewFixture(t, t.TempDir())
	f.WriteAgent("a.md", Agent{Name: "a", Frameworks: []string{"vue", "nuxt"}, Body: "body"})

	AssertContent(t, f, "a.md", "---\nname: a\nframeworks:\n  - vue\n  - nuxt\n---\nbody")
}
