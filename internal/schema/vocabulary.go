package schema

import "github.com/klauern/agentsync/internal/model"

// Policy decides how a value outside a vocabulary is reported.
type Policy int

const (
	// PolicyError rejects unknown values (closed enum).
	PolicyError Policy = iota
	// PolicyWarn tolerates unknown values with a warning (open vocabulary).
	PolicyWarn
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyError:
		return "error"
	case PolicyWarn:
		return "warn"
	default:
		return "unknown"
	}
}

// Vocabulary is an ordered set of allowed values for a frontmatter field.
type Vocabulary struct {
	// Field is the frontmatter key this vocabulary constrains
	Field  string
	Policy Policy
	order  []string
	values map[string]struct{}
}

// NewVocabulary creates a vocabulary with the given policy and initial values.
func NewVocabulary(field string, policy Policy, values ...string) *Vocabulary {
	v := &Vocabulary{
		Field:  field,
		Policy: policy,
		values: make(map[string]struct{}, len(values)),
	}
	v.Register(values...)
	return v
}

// Register adds values to the vocabulary. Duplicates and empty strings are ignored.
func (v *Vocabulary) Register(values ...string) {
	for _, s := range values {
		if s == "" {
			continue
		}
		if _, ok := v.values[s]; ok {
			continue
		}
		v.values[s] = struct{}{}
		v.order = append(v.order, s)
	}
}

// Contains reports whether s is a known value.
func (v *Vocabulary) Contains(s string) bool {
	_, ok := v.values[s]
	return ok
}

// Values returns the known values in registration order.
func (v *Vocabulary) Values() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

// Severity maps the policy to the diagnostic severity for unknown values.
func (v *Vocabulary) Severity() model.Severity {
	if v.Policy == PolicyWarn {
		return model.SeverityWarning
	}
	return model.SeverityError
}
