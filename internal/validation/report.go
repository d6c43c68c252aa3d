package validation

import (
	"slices"
	"sort"
	"sync"

	"github.com/klauern/agentsync/internal/model"
)

// Outcome is the overall result of a validation run.
type Outcome string

const (
	Pass Outcome = "pass"
	Fail Outcome = "fail"
)

// Report accumulates diagnostics for one validation run. It is safe for
// concurrent use.
type Report struct {
	mu       sync.Mutex
	errors   []model.Diagnostic
	warnings []model.Diagnostic
	files    []string
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{}
}

// Add records a diagnostic in the collection matching its severity.
func (r *Report) Add(d model.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// an unrecognized severity counts against the run
	if d.Severity == model.SeverityError || !d.Severity.IsValid() {
		r.errors = append(r.errors, d)
	} else {
		r.warnings = append(r.warnings, d)
	}
}

// markChecked records that a document was examined.
func (r *Report) markChecked(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = append(r.files, path)
}

// Errors returns the error diagnostics ordered by file.
func (r *Report) Errors() []model.Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedCopy(r.errors)
}

// Warnings returns the warning diagnostics ordered by file.
func (r *Report) Warnings() []model.Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedCopy(r.warnings)
}

// Files returns the paths of every document checked, sorted.
func (r *Report) Files() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := slices.Clone(r.files)
	sort.Strings(out)
	return out
}

// ForFile returns all diagnostics recorded for path, errors first.
func (r *Report) ForFile(path string) []model.Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Diagnostic
	for _, set := range [][]model.Diagnostic{r.errors, r.warnings} {
		for _, d := range set {
			if d.File == path {
				out = append(out, d)
			}
		}
	}
	return out
}

// HasErrors returns true if any error diagnostic was recorded.
func (r *Report) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors) > 0
}

// Outcome returns Fail if any error was recorded. With strict set, warnings
// fail the run as well.
func (r *Report) Outcome(strict bool) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errors) > 0 || (strict && len(r.warnings) > 0) {
		return Fail
	}
	return Pass
}

// Reset clears all state so the report can serve a fresh run.
func (r *Report) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = nil
	r.warnings = nil
	r.files = nil
}

// sortedCopy orders diagnostics by file while keeping per-file check order.
func sortedCopy(in []model.Diagnostic) []model.Diagnostic {
	out := slices.Clone(in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out
}
