package report

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/klauern/agentsync/internal/model"
	"github.com/klauern/agentsync/internal/sync"
	"github.com/klauern/agentsync/internal/ui"
	"github.com/klauern/agentsync/internal/util"
	"github.com/klauern/agentsync/internal/validation"
)

var update = flag.Bool("update", false, "update golden files")

func TestMain(m *testing.M) {
	flag.Parse()
	util.SetUpdateGolden(*update)
	ui.DisableColors()
	os.Exit(m.Run())
}

func sampleReport(withError bool) *validation.Report {
	v := validation.New(nil, validation.DefaultOptions())
	v.ValidateContent("agents/react/warn.md", []byte("---\nname: a\ndescription: b\ncategory: plan\nframeworks: [react]\n---\nshort"))
	if withError {
		v.ValidateContent("agents/vue/bad.md", []byte("no header"))
	}
	return v.Report()
}

func TestParseFormat(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    Format
		wantErr bool
	}{
		"empty": {in: "", want: Text},
		"text":  {in: "text", want: Text},
		"json":  {in: "json", want: JSON},
		"yaml":  {in: "yaml", want: YAML},
		"xml":   {in: "xml", wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
			}
		})
	}
}

func TestValidation_TextFail(t *testing.T) {
	var buf bytes.Buffer
	outcome, err := Validation(&buf, sampleReport(true), false, Text)
	if err != nil {
		t.Fatalf("Validation() error = %v", err)
	}
	if outcome != validation.Fail {
		t.Errorf("outcome = %s, want fail", outcome)
	}

	out := buf.String()
	for _, want := range []string{
		"Validated 2 document(s)",
		"✗ agents/vue/bad.md",
		"missing frontmatter",
		"⚠ agents/react/warn.md",
		"content is too short",
		"FAIL 1 error(s), 3 warning(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestValidation_TextGolden(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Validation(&buf, sampleReport(true), false, Text); err != nil {
		t.Fatal(err)
	}
	util.GoldenFile(t, "testdata", "validation_fail", buf.String())
}

func TestValidation_WarningsOnlyPass(t *testing.T) {
	var buf bytes.Buffer
	outcome, err := Validation(&buf, sampleReport(false), false, Text)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != validation.Pass {
		t.Errorf("outcome = %s, want pass", outcome)
	}
	if !strings.Contains(buf.String(), "PASS 0 error(s), 3 warning(s)") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	buf.Reset()
	outcome, _ = Validation(&buf, sampleReport(false), true, Text)
	if outcome != validation.Fail {
		t.Error("strict mode should fail on warnings")
	}
}

func TestValidation_JSON(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Validation(&buf, sampleReport(true), false, JSON); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Result   string             `json:"result"`
		Files    int                `json:"files"`
		Errors   []model.Diagnostic `json:"errors"`
		Warnings []model.Diagnostic `json:"warnings"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if doc.Result != "fail" || doc.Files != 2 || len(doc.Errors) != 1 || len(doc.Warnings) != 3 {
		t.Errorf("unexpected document %+v", doc)
	}
	if doc.Errors[0].Severity != model.SeverityError {
		t.Errorf("severity = %q", doc.Errors[0].Severity)
	}
}

func TestValidation_YAMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Validation(&buf, validation.NewReport(), false, YAML); err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if doc["result"] != "pass" {
		t.Errorf("result = %v", doc["result"])
	}
	if errs, ok := doc["errors"].([]any); !ok || len(errs) != 0 {
		t.Errorf("errors = %#v, want empty list", doc["errors"])
	}
}

func sampleSync() *sync.Result {
	return &sync.Result{
		Mode: sync.ModeReplace,
		Entries: []sync.EntryResult{
			{Mapping: model.Mapping{Name: "react", Source: "agents/react", Target: "plugins/react/agents"}, Status: sync.StatusSynced, Files: []string{"a.md", "b.md"}, Removed: []string{"old.md"}},
			{Mapping: model.Mapping{Name: "vue", Source: "agents/vue", Target: "plugins/vue/agents"}, Status: sync.StatusEmpty},
			{Mapping: model.Mapping{Name: "svelte", Source: "agents/svelte", Target: "plugins/svelte/agents"}, Status: sync.StatusSkipped},
		},
	}
}

func TestSync_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := Sync(&buf, sampleSync(), Text); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"✓ React 2 document(s) -> plugins/react/agents",
		"⚠ Vue no documents in agents/vue",
		"- Svelte source missing: agents/svelte",
		"Synced 2 document(s) across 1 framework(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "+ a.md") {
		t.Error("file listing is only shown for dry runs")
	}
}

func TestSync_DryRunListsChanges(t *testing.T) {
	res := sampleSync()
	res.DryRun = true

	var buf bytes.Buffer
	if err := Sync(&buf, res, Text); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"+ a.md", "- old.md", "Would sync"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestSync_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Sync(&buf, sampleSync(), JSON); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Total   int            `json:"total"`
		Counts  map[string]int `json:"counts"`
		Entries []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
			Synced int    `json:"synced"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Total != 2 || len(doc.Entries) != 3 || doc.Entries[2].Status != "skipped" {
		t.Errorf("unexpected document %+v", doc)
	}
	if len(doc.Counts) != 3 || doc.Counts["react"] != 2 || doc.Counts["svelte"] != 0 {
		t.Errorf("counts = %v, want one entry per mapping", doc.Counts)
	}
}

func TestVerify(t *testing.T) {
	statuses := []sync.TargetStatus{
		{Mapping: model.Mapping{Name: "react", Target: "plugins/react/agents"}, Exists: true, Count: 4},
		{Mapping: model.Mapping{Name: "vue", Target: "plugins/vue/agents"}},
	}

	var buf bytes.Buffer
	if err := Verify(&buf, statuses, Text); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "React: 4 document(s) in plugins/react/agents") {
		t.Errorf("missing react count:\n%s", out)
	}
	if !strings.Contains(out, "Vue: target missing") {
		t.Errorf("missing vue notice:\n%s", out)
	}

	buf.Reset()
	if err := Verify(&buf, statuses, YAML); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "count: 4") {
		t.Errorf("unexpected YAML:\n%s", buf.String())
	}
}

func TestMappings(t *testing.T) {
	mappings := []model.Mapping{
		{Name: "react", Source: "agents/react", Target: "plugins/react/agents"},
		{Name: "vue", Source: "agents/vue", Target: "plugins/vue/agents"},
	}

	var buf bytes.Buffer
	if err := Mappings(&buf, mappings, Text); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "FRAMEWORK") || !strings.Contains(out, "Total: 2 mapping(s)") {
		t.Errorf("unexpected table:\n%s", out)
	}
	if strings.Index(out, "react") > strings.Index(out, "vue") {
		t.Error("table order must be preserved")
	}

	buf.Reset()
	if err := Mappings(&buf, nil, JSON); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty JSON table = %q", buf.String())
	}
}
