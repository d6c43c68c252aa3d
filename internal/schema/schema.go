// Package schema defines the frontmatter contract agent documents must meet.
package schema

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/klauern/agentsync/internal/model"
)

// DefaultMinBodyLength is the body length below which a document is
// considered thin.
const DefaultMinBodyLength = 100

// DefaultSections returns the section headings every agent body should contain.
func DefaultSections() []string {
	return []string{"## Your Expertise", "## Review Checklist"}
}

// DefaultFrameworks returns the built-in framework vocabulary.
func DefaultFrameworks() []string {
	return []string{
		"react", "vue", "angular", "svelte",
		"next.js", "nuxt", "remix", "quasar",
		"javascript", "typescript",
	}
}

// Schema describes the checks applied to a parsed document.
type Schema struct {
	// Required lists frontmatter keys that must be present and truthy
	Required []string
	// Categories is the closed category enum
	Categories *Vocabulary
	// Frameworks is the open framework vocabulary
	Frameworks *Vocabulary
	// MinBodyLength is the minimum trimmed body length in characters
	MinBodyLength int
	// Sections lists literal markers the body should contain
	Sections []string
}

// Default returns the standard agent document schema.
func Default() *Schema {
	categories := make([]string, 0, 4)
	for _, c := range model.AllCategories() {
		categories = append(categories, string(c))
	}
	return &Schema{
		Required:      model.RequiredFields(),
		Categories:    NewVocabulary(model.FieldCategory, PolicyError, categories...),
		Frameworks:    NewVocabulary(model.FieldFrameworks, PolicyWarn, DefaultFrameworks()...),
		MinBodyLength: DefaultMinBodyLength,
		Sections:      DefaultSections(),
	}
}

// Check runs the field and content checks against an already-parsed document
// and returns every finding. It never stops early.
func (s *Schema) Check(doc model.Document) []model.Diagnostic {
	var out []model.Diagnostic
	add := func(sev model.Severity, format string, args ...any) {
		out = append(out, model.Diagnostic{
			File:     doc.Path,
			Message:  fmt.Sprintf(format, args...),
			Severity: sev,
		})
	}

	for _, field := range s.Required {
		if IsFalsy(doc.Frontmatter[field]) {
			add(model.SeverityError, "missing required field %q", field)
		}
	}

	if v := doc.Frontmatter[model.FieldCategory]; !IsFalsy(v) && s.Categories != nil {
		if str, ok := v.(string); !ok || !s.Categories.Contains(str) {
			add(s.Categories.Severity(), "invalid category %q (must be one of: %s)",
				fmt.Sprint(v), strings.Join(s.Categories.Values(), ", "))
		}
	}

	if v := doc.Frontmatter[model.FieldFrameworks]; !IsFalsy(v) && s.Frameworks != nil {
		list, ok := v.([]any)
		if !ok {
			add(model.SeverityError, "field %q must be a list, got %s", model.FieldFrameworks, kindOf(v))
		} else {
			for _, item := range list {
				str, isString := item.(string)
				if isString && s.Frameworks.Contains(str) {
					continue
				}
				add(s.Frameworks.Severity(), "unknown framework %q (known: %s)",
					fmt.Sprint(item), strings.Join(s.Frameworks.Values(), ", "))
			}
		}
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(doc.Body)); n < s.MinBodyLength {
		add(model.SeverityWarning, "content is too short (%d characters, minimum %d)", n, s.MinBodyLength)
	}

	for _, section := range s.Sections {
		if !strings.Contains(doc.Body, section) {
			add(model.SeverityWarning, "missing recommended section %q", section)
		}
	}

	return out
}

// IsFalsy reports whether a decoded YAML value counts as absent: nil, false,
// zero numbers, empty strings, and empty sequences or mappings.
func IsFalsy(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	}
	return false
}

// kindOf names a decoded YAML value's shape for error messages.
func kindOf(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case map[string]any:
		return "mapping"
	case bool:
		return "boolean"
	case int, int64, uint64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
