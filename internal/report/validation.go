package report

import (
	"fmt"
	"io"

	"github.com/klauern/agentsync/internal/model"
	"github.com/klauern/agentsync/internal/ui"
	"github.com/klauern/agentsync/internal/validation"
)

// validationDoc is the machine-readable form of a validation run.
type validationDoc struct {
	Result   validation.Outcome `json:"result" yaml:"result"`
	Files    int                `json:"files" yaml:"files"`
	Errors   []model.Diagnostic `json:"errors" yaml:"errors"`
	Warnings []model.Diagnostic `json:"warnings" yaml:"warnings"`
}

// Validation renders every diagnostic in r followed by the pass/fail line.
// It returns the run outcome so callers can set the exit status.
func Validation(w io.Writer, r *validation.Report, strict bool, format Format) (validation.Outcome, error) {
	outcome := r.Outcome(strict)
	errs, warns := r.Errors(), r.Warnings()

	if format != Text {
		doc := validationDoc{
			Result:   outcome,
			Files:    len(r.Files()),
			Errors:   nonNil(errs),
			Warnings: nonNil(warns),
		}
		return outcome, encode(w, format, doc)
	}

	files := r.Files()
	if _, err := fmt.Fprintf(w, "Validated %d document(s)\n", len(files)); err != nil {
		return outcome, err
	}

	for _, path := range files {
		diags := r.ForFile(path)
		if len(diags) == 0 {
			continue
		}
		mark := ui.StatusWarning(path)
		for _, d := range diags {
			if d.Severity == model.SeverityError {
				mark = ui.StatusError(path)
				break
			}
		}
		if _, err := fmt.Fprintf(w, "\n%s\n", mark); err != nil {
			return outcome, err
		}
		for _, d := range diags {
			label := ui.Warning("warning")
			if d.Severity == model.SeverityError {
				label = ui.Error("error  ")
			}
			if _, err := fmt.Fprintf(w, "    %s  %s\n", label, d.Message); err != nil {
				return outcome, err
			}
		}
	}

	summary := fmt.Sprintf("%d error(s), %d warning(s)", len(errs), len(warns))
	var line string
	switch {
	case outcome == validation.Fail:
		line = ui.StatusError(ui.Bold("FAIL") + " " + summary)
	case len(warns) > 0:
		line = ui.StatusWarning(ui.Bold("PASS") + " " + summary)
	default:
		line = ui.StatusSuccess(ui.Bold("PASS") + " " + summary)
	}
	_, err := fmt.Fprintf(w, "\n%s\n", line)
	return outcome, err
}

func nonNil(d []model.Diagnostic) []model.Diagnostic {
	if d == nil {
		return []model.Diagnostic{}
	}
	return d
}
