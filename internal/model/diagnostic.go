package model

import "fmt"

// Severity classifies a diagnostic.
type Severity string

const (
	// SeverityError fails the validation run.
	SeverityError Severity = "error"
	// SeverityWarning is informational only.
	SeverityWarning Severity = "warning"
)

// IsValid returns true if the severity is recognized
func (s Severity) IsValid() bool {
	return s == SeverityError || s == SeverityWarning
}

// Diagnostic is a single issue found in an agent document.
type Diagnostic struct {
	File     string   `json:"file" yaml:"file"`
	Message  string   `json:"message" yaml:"message"`
	Severity Severity `json:"severity" yaml:"severity"`
}

// String returns "<file>: <message>".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.File, d.Message)
}
