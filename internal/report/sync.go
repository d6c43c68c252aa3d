package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauern/agentsync/internal/model"
	"github.com/klauern/agentsync/internal/sync"
	"github.com/klauern/agentsync/internal/ui"
)

type syncEntryDoc struct {
	Name      string   `json:"name" yaml:"name"`
	Source    string   `json:"source" yaml:"source"`
	Target    string   `json:"target" yaml:"target"`
	Status    string   `json:"status" yaml:"status"`
	Synced    int      `json:"synced" yaml:"synced"`
	Files     []string `json:"files,omitempty" yaml:"files,omitempty"`
	Unchanged []string `json:"unchanged,omitempty" yaml:"unchanged,omitempty"`
	Removed   []string `json:"removed,omitempty" yaml:"removed,omitempty"`
}

type syncDoc struct {
	Mode    string         `json:"mode" yaml:"mode"`
	DryRun  bool           `json:"dry_run" yaml:"dry_run"`
	Total   int            `json:"total" yaml:"total"`
	Counts  map[string]int `json:"counts" yaml:"counts"`
	Entries []syncEntryDoc `json:"entries" yaml:"entries"`
}

// Sync renders a sync result: one line per mapping entry and a total.
func Sync(w io.Writer, res *sync.Result, format Format) error {
	if format != Text {
		doc := syncDoc{Mode: string(res.Mode), DryRun: res.DryRun, Total: res.Total(), Counts: res.Counts(), Entries: []syncEntryDoc{}}
		for _, e := range res.Entries {
			doc.Entries = append(doc.Entries, syncEntryDoc{
				Name:      e.Mapping.Name,
				Source:    e.Mapping.Source,
				Target:    e.Mapping.Target,
				Status:    string(e.Status),
				Synced:    e.Synced(),
				Files:     e.Files,
				Unchanged: e.Unchanged,
				Removed:   e.Removed,
			})
		}
		return encode(w, format, doc)
	}

	var b strings.Builder
	for _, e := range res.Entries {
		name := ui.Bold(title(e.Mapping.Name))
		switch e.Status {
		case sync.StatusSkipped:
			fmt.Fprintf(&b, "%s %s\n", ui.StatusSkipped(name), ui.Dim("source missing: "+e.Mapping.Source))
		case sync.StatusEmpty:
			fmt.Fprintf(&b, "%s %s\n", ui.StatusWarning(name), ui.Dim("no documents in "+e.Mapping.Source))
		default:
			fmt.Fprintf(&b, "%s %d document(s) -> %s\n", ui.StatusSuccess(name), e.Synced(), ui.Dim(e.Mapping.Target))
		}
		if res.DryRun {
			for _, f := range e.Files {
				fmt.Fprintf(&b, "    + %s\n", f)
			}
			for _, f := range e.Removed {
				fmt.Fprintf(&b, "    - %s\n", f)
			}
		}
	}
	fmt.Fprintf(&b, "\n%s\n", res.Summary())

	_, err := io.WriteString(w, b.String())
	return err
}

type verifyDoc struct {
	Name   string `json:"name" yaml:"name"`
	Target string `json:"target" yaml:"target"`
	Exists bool   `json:"exists" yaml:"exists"`
	Count  int    `json:"count" yaml:"count"`
}

// Verify renders the per-target document counts from sync.Engine.VerifyTargets.
func Verify(w io.Writer, statuses []sync.TargetStatus, format Format) error {
	if format != Text {
		docs := make([]verifyDoc, 0, len(statuses))
		for _, s := range statuses {
			docs = append(docs, verifyDoc{Name: s.Mapping.Name, Target: s.Mapping.Target, Exists: s.Exists, Count: s.Count})
		}
		return encode(w, format, docs)
	}

	var b strings.Builder
	b.WriteString(ui.Header("Target verification") + "\n")
	for _, s := range statuses {
		name := title(s.Mapping.Name)
		switch {
		case !s.Exists:
			fmt.Fprintf(&b, "  %s\n", ui.StatusWarning(name+": target missing "+ui.Dim(s.Mapping.Target)))
		case s.Err != nil:
			fmt.Fprintf(&b, "  %s\n", ui.StatusWarning(fmt.Sprintf("%s: %v", name, s.Err)))
		default:
			fmt.Fprintf(&b, "  %s\n", ui.StatusSuccess(fmt.Sprintf("%s: %d document(s) in %s", name, s.Count, ui.Dim(s.Mapping.Target))))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Mappings renders a mapping table.
func Mappings(w io.Writer, mappings []model.Mapping, format Format) error {
	if format != Text {
		if mappings == nil {
			mappings = []model.Mapping{}
		}
		return encode(w, format, mappings)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-32s %-32s\n", "FRAMEWORK", "SOURCE", "TARGET")
	fmt.Fprintf(&b, "%-12s %-32s %-32s\n",
		strings.Repeat("-", 12),
		strings.Repeat("-", 32),
		strings.Repeat("-", 32))
	for _, m := range mappings {
		fmt.Fprintf(&b, "%-12s %-32s %-32s\n", m.Name, m.Source, m.Target)
	}
	fmt.Fprintf(&b, "\nTotal: %d mapping(s)\n", len(mappings))

	_, err := io.WriteString(w, b.String())
	return err
}
