package model

import "fmt"

// Mapping pairs a framework's canonical agent directory with the
// distribution directory it is synced into.
type Mapping struct {
	// Name identifies the framework (unique within a table)
	Name string `yaml:"name" toml:"name" json:"name"`
	// Source is the directory holding the canonical agent documents
	Source string `yaml:"source" toml:"source" json:"source"`
	// Target is the directory fully owned by the sync engine
	Target string `yaml:"target" toml:"target" json:"target"`
}

// String returns a human-readable "name: source -> target" form.
func (m Mapping) String() string {
	return fmt.Sprintf("%s: %s -> %s", m.Name, m.Source, m.Target)
}
