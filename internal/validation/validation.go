// Package validation checks agent documents against the frontmatter schema
// and accumulates error and warning diagnostics for a run.
package validation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/klauern/agentsync/internal/frontmatter"
	"github.com/klauern/agentsync/internal/logging"
	"github.com/klauern/agentsync/internal/model"
	"github.com/klauern/agentsync/internal/schema"
)

// ErrValidationFailed is returned by callers once a run has recorded errors
// and its report has been printed.
var ErrValidationFailed = errors.New("validation failed")

// Options configures a Validator.
type Options struct {
	// BaseDir resolves relative glob patterns. Empty means the working directory.
	BaseDir string
	// Workers bounds how many documents are validated at once. Values below 1
	// mean sequential.
	Workers int
}

// DefaultOptions returns sequential validation relative to the working directory.
func DefaultOptions() Options {
	return Options{Workers: 1}
}

// Validator runs schema checks and records the findings in its Report.
type Validator struct {
	schema *schema.Schema
	opts   Options
	report *Report
}

// New creates a Validator. A nil schema selects schema.Default().
func New(s *schema.Schema, opts Options) *Validator {
	if s == nil {
		s = schema.Default()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Validator{schema: s, opts: opts, report: NewReport()}
}

// Report returns the accumulated diagnostics for the current run.
func (v *Validator) Report() *Report {
	return v.report
}

// Reset starts a fresh run.
func (v *Validator) Reset() {
	v.report.Reset()
}

// ValidateFile reads and validates a single document. A read failure is
// recorded as an error diagnostic for that file.
func (v *Validator) ValidateFile(path string) bool {
	// #nosec G304 - path comes from the operator's glob patterns
	data, err := os.ReadFile(path)
	if err != nil {
		v.report.markChecked(path)
		v.report.Add(model.Diagnostic{
			File:     path,
			Message:  fmt.Sprintf("cannot read file: %v", err),
			Severity: model.SeverityError,
		})
		return false
	}
	return v.ValidateContent(path, data)
}

// ValidateContent validates raw document content attributed to path. It
// returns true iff no error diagnostic was recorded for it by this call.
func (v *Validator) ValidateContent(path string, data []byte) bool {
	v.report.markChecked(path)

	res := frontmatter.Split(data)
	if !res.Found {
		v.fail(path, frontmatter.ErrMissing.Error())
		return false
	}

	fields, err := frontmatter.Decode(res.Header)
	if err != nil {
		v.fail(path, err.Error())
		return false
	}

	doc := model.Document{Path: path, Frontmatter: fields, Body: res.Body}
	valid := true
	for _, d := range v.schema.Check(doc) {
		v.report.Add(d)
		logging.Debug(d.Message, logging.Path(path), logging.Severity(string(d.Severity)))
		if d.Severity == model.SeverityError {
			valid = false
		}
	}

	logging.Debug("validated document",
		logging.Document(doc.Name()),
		logging.Path(path),
		"valid", valid,
	)
	return valid
}

func (v *Validator) fail(path, msg string) {
	v.report.Add(model.Diagnostic{File: path, Message: msg, Severity: model.SeverityError})
}

// ValidateMany expands patterns, deduplicates the matches, and validates each
// document. Patterns that match nothing are logged as notices. Document
// problems never produce a returned error; only a malformed pattern or a
// cancelled context does.
func (v *Validator) ValidateMany(ctx context.Context, patterns []string) error {
	files, err := Discover(v.opts.BaseDir, patterns)
	if err != nil {
		return err
	}

	logging.WithContext(ctx).Info("validating documents",
		logging.Operation("validate"),
		logging.Count(len(files)),
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(v.opts.Workers)
	for _, path := range files {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			v.ValidateFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
