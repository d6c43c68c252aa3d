package sync

import (
	"fmt"
	"strings"

	"github.com/klauern/agentsync/internal/model"
)

// Status describes what happened to a mapping entry during a run.
type Status string

const (
	// StatusSynced means the target now mirrors a non-empty source.
	StatusSynced Status = "synced"
	// StatusEmpty means the source exists but holds no documents; the target
	// was emptied.
	StatusEmpty Status = "empty"
	// StatusSkipped means the source directory does not exist.
	StatusSkipped Status = "skipped"
)

// EntryResult is the outcome for one mapping entry.
type EntryResult struct {
	// Mapping is the entry that was processed
	Mapping model.Mapping
	// Status summarizes the outcome
	Status Status
	// Files lists the document file names now present in the target
	Files []string
	// Unchanged lists files left in place because their content matched
	// (incremental mode only)
	Unchanged []string
	// Removed lists target entries deleted during the run
	Removed []string
}

// Synced returns the number of documents mirrored into the target.
func (er EntryResult) Synced() int {
	return len(er.Files)
}

// Result contains the outcome of a SyncAll run.
type Result struct {
	// Mode is the mode the run used
	Mode Mode
	// DryRun indicates no changes were written
	DryRun bool
	// Entries holds one result per mapping entry, in table order
	Entries []EntryResult
}

// Total returns the number of documents synced across all entries.
func (r *Result) Total() int {
	total := 0
	for _, e := range r.Entries {
		total += e.Synced()
	}
	return total
}

// Counts returns the per-entry synced counts keyed by mapping name.
func (r *Result) Counts() map[string]int {
	out := make(map[string]int, len(r.Entries))
	for _, e := range r.Entries {
		out[e.Mapping.Name] = e.Synced()
	}
	return out
}

// Summary returns a one-line description of the run.
func (r *Result) Summary() string {
	var synced, empty, skipped int
	for _, e := range r.Entries {
		switch e.Status {
		case StatusSynced:
			synced++
		case StatusEmpty:
			empty++
		case StatusSkipped:
			skipped++
		}
	}

	parts := []string{fmt.Sprintf("%d document(s) across %d framework(s)", r.Total(), synced)}
	if empty > 0 {
		parts = append(parts, fmt.Sprintf("%d empty", empty))
	}
	if skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", skipped))
	}
	prefix := "Synced"
	if r.DryRun {
		prefix = "Would sync"
	}
	return prefix + " " + strings.Join(parts, ", ")
}

// TargetStatus reports what VerifyTargets found for one entry.
type TargetStatus struct {
	Mapping model.Mapping
	// Exists is false when the target directory is missing
	Exists bool
	// Count is the number of documents present
	Count int
	// Err holds a read failure; it is informational only
	Err error
}
