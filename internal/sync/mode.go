package sync

import (
	"fmt"
	"strings"
)

// Mode selects how a target directory is brought in line with its source.
type Mode string

const (
	// ModeReplace empties the target and copies every document.
	ModeReplace Mode = "replace"
	// ModeIncremental only touches files whose content differs.
	ModeIncremental Mode = "incremental"
)

// IsValid returns true if the mode is recognized.
func (m Mode) IsValid() bool {
	return m == ModeReplace || m == ModeIncremental
}

// AllModes returns every supported mode.
func AllModes() []Mode {
	return []Mode{ModeReplace, ModeIncremental}
}

// ParseMode converts a string to a Mode. An empty string selects ModeReplace.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeReplace, nil
	}
	m := Mode(s)
	if !m.IsValid() {
		valid := make([]string, 0, 2)
		for _, v := range AllModes() {
			valid = append(valid, string(v))
		}
		return "", fmt.Errorf("unknown sync mode %q (valid: %s)", s, strings.Join(valid, ", "))
	}
	return m, nil
}
