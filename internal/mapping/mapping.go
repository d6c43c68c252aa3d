// Package mapping holds the framework mapping table that drives sync and
// validation: an ordered list of (name, source, target) entries.
package mapping

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/klauern/agentsync/internal/model"
	"github.com/klauern/agentsync/internal/util"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// Table is an ordered list of mapping entries. Order is significant: sync
// processes entries front to back.
type Table []model.Mapping

// Default returns the built-in table. Adding a framework means appending one
// entry here.
func Default() Table {
	return Table{
		{Name: "react", Source: "agents/react", Target: "plugins/react/agents"},
		{Name: "vue", Source: "agents/vue", Target: "plugins/vue/agents"},
		{Name: "angular", Source: "agents/angular", Target: "plugins/angular/agents"},
		{Name: "svelte", Source: "agents/svelte", Target: "plugins/svelte/agents"},
		{Name: "nextjs", Source: "agents/nextjs", Target: "plugins/nextjs/agents"},
		{Name: "nuxt", Source: "agents/nuxt", Target: "plugins/nuxt/agents"},
		{Name: "remix", Source: "agents/remix", Target: "plugins/remix/agents"},
		{Name: "quasar", Source: "agents/quasar", Target: "plugins/quasar/agents"},
	}
}

// Validate checks that every entry is complete and names are unique.
func (t Table) Validate() error {
	seen := make(map[string]int, len(t))
	for i := range t {
		m := t[i]
		err := validation.ValidateStruct(&m,
			validation.Field(&m.Name, validation.Required, validation.Match(namePattern)),
			validation.Field(&m.Source, validation.Required),
			validation.Field(&m.Target, validation.Required),
		)
		if err != nil {
			return fmt.Errorf("mapping %d (%s): %w", i, m.Name, err)
		}
		if prev, ok := seen[m.Name]; ok {
			return fmt.Errorf("mapping %d: duplicate name %q (first declared at %d)", i, m.Name, prev)
		}
		seen[m.Name] = i
	}
	return nil
}

// Names returns the entry names in table order.
func (t Table) Names() []string {
	out := make([]string, len(t))
	for i, m := range t {
		out[i] = m.Name
	}
	return out
}

// Lookup returns the entry with the given name.
func (t Table) Lookup(name string) (model.Mapping, bool) {
	for _, m := range t {
		if m.Name == name {
			return m, true
		}
	}
	return model.Mapping{}, false
}

// Filter keeps only the named entries, preserving table order. An empty
// names list returns the table unchanged; an unknown name is an error.
func (t Table) Filter(names ...string) (Table, error) {
	if len(names) == 0 {
		return t, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := t.Lookup(n); !ok {
			return nil, fmt.Errorf("unknown mapping %q (available: %s)", n, strings.Join(t.Names(), ", "))
		}
		want[n] = true
	}
	out := make(Table, 0, len(want))
	for _, m := range t {
		if want[m.Name] {
			out = append(out, m)
		}
	}
	return out, nil
}

// Resolve returns a copy with ~ expanded and relative paths joined to baseDir.
func (t Table) Resolve(baseDir string) Table {
	out := make(Table, len(t))
	for i, m := range t {
		out[i] = model.Mapping{
			Name:   m.Name,
			Source: util.ExpandPath(m.Source, baseDir),
			Target: util.ExpandPath(m.Target, baseDir),
		}
	}
	return out
}

// Relative returns a copy with paths under baseDir shown relative to it.
// Paths outside baseDir are left as they are.
func (t Table) Relative(baseDir string) Table {
	out := make(Table, len(t))
	for i, m := range t {
		out[i] = model.Mapping{
			Name:   m.Name,
			Source: relativeTo(baseDir, m.Source),
			Target: relativeTo(baseDir, m.Target),
		}
	}
	return out
}

func relativeTo(baseDir, path string) string {
	rel, err := filepath.Rel(baseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}

// Entries returns the table as a plain slice.
func (t Table) Entries() []model.Mapping {
	return []model.Mapping(t)
}

// tomlFile is the on-disk layout of a mapping file:
//
//	[[mapping]]
//	name = "react"
//	source = "agents/react"
//	target = "plugins/react/agents"
type tomlFile struct {
	Mapping []model.Mapping `toml:"mapping"`
}

// LoadTOML reads a mapping table from a TOML file and validates it.
func LoadTOML(path string) (Table, error) {
	// #nosec G304 - path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %q: %w", path, err)
	}
	return ParseTOML(data)
}

// ParseTOML decodes and validates a TOML mapping table.
func ParseTOML(data []byte) (Table, error) {
	var f tomlFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in mapping file: %v", undecoded)
	}
	t := Table(f.Mapping)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
