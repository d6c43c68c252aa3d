// Package frontmatter splits agent documents into their YAML header and body.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Delimiter marks the start and end of the header block.
const Delimiter = "---"

// ErrMissing is returned by Parse when the content does not open with a
// delimited header block.
var ErrMissing = errors.New("missing frontmatter")

// Result contains the raw header and remaining content of a document.
type Result struct {
	// Header contains the bytes between the delimiters, with \r\n normalized
	Header []byte
	// Body contains everything after the closing delimiter line
	Body string
	// Found indicates whether a complete header block was present
	Found bool
}

// Split extracts the header block from content. The opening delimiter must be
// the very first line; the closing delimiter is the next line consisting only
// of the delimiter. Without both, Found is false and Body is the full content.
func Split(content []byte) Result {
	notFound := Result{Body: string(content)}

	rest, ok := cutDelimiterLine(content)
	if !ok {
		return notFound
	}

	offset := 0
	for offset <= len(rest) {
		line := rest[offset:]
		end := bytes.IndexByte(line, '\n')
		next := len(rest) + 1
		if end >= 0 {
			line = line[:end]
			next = offset + end + 1
		}
		if string(bytes.TrimSuffix(line, []byte("\r"))) == Delimiter {
			header := bytes.ReplaceAll(rest[:offset], []byte("\r\n"), []byte("\n"))
			var body string
			if next < len(rest) {
				body = string(rest[next:])
			}
			return Result{Header: header, Body: body, Found: true}
		}
		offset = next
	}

	return notFound
}

// cutDelimiterLine strips an opening "---" line, reporting whether one was present.
func cutDelimiterLine(content []byte) ([]byte, bool) {
	for _, open := range []string{Delimiter + "\n", Delimiter + "\r\n"} {
		if rest, ok := bytes.CutPrefix(content, []byte(open)); ok {
			return rest, true
		}
	}
	return nil, false
}

// Decode parses a header block as a YAML mapping. An empty header decodes to
// an empty map.
func Decode(header []byte) (map[string]any, error) {
	fields := make(map[string]any)
	if len(bytes.TrimSpace(header)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(header, &fields); err != nil {
		return nil, fmt.Errorf("invalid YAML frontmatter: %w", err)
	}
	if fields == nil {
		fields = make(map[string]any)
	}
	return fields, nil
}

// Parse splits and decodes content in one step. It returns ErrMissing when no
// header block is present.
func Parse(content []byte) (map[string]any, string, error) {
	res := Split(content)
	if !res.Found {
		return nil, res.Body, ErrMissing
	}
	fields, err := Decode(res.Header)
	if err != nil {
		return nil, res.Body, err
	}
	return fields, res.Body, nil
}
