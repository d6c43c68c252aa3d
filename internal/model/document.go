package model

import "path/filepath"

// Frontmatter field names every agent document must declare.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldFrameworks  = "frameworks"
)

// RequiredFields returns the required frontmatter keys in check order.
func RequiredFields() []string {
	return []string{FieldName, FieldDescription, FieldCategory, FieldFrameworks}
}

// Document is a parsed agent definition.
type Document struct {
	// Path is where the document was read from
	Path string
	// Frontmatter holds the decoded metadata header
	Frontmatter map[string]any
	// Body is the content following the header block
	Body string
}

// Name returns the document's declared name, falling back to the file name
// without extension.
func (d Document) Name() string {
	if s, ok := d.Frontmatter[FieldName].(string); ok && s != "" {
		return s
	}
	base := filepath.Base(d.Path)
	return base[:len(base)-len(filepath.Ext(base))]
}
