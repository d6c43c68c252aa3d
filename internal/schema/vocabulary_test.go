package schema

import (
	"testing"

	"github.com/klauern/agentsync/internal/model"
)

func TestVocabulary(t *testing.T) {
	v := NewVocabulary("frameworks", PolicyWarn, "react", "vue", "react", "")

	if got := v.Values(); len(got) != 2 || got[0] != "react" || got[1] != "vue" {
		t.Errorf("Values() = %v, want [react vue]", got)
	}
	if !v.Contains("vue") {
		t.Error("expected vue to be known")
	}
	if v.Contains("Vue") {
		t.Error("lookup should be case sensitive")
	}

	v.Register("solid")
	if !v.Contains("solid") {
		t.Error("expected registered value to be known")
	}

	if v.Severity() != model.SeverityWarning {
		t.Errorf("Severity() = %s, want warning", v.Severity())
	}
	v.Policy = PolicyError
	if v.Severity() != model.SeverityError {
		t.Errorf("Severity() = %s, want error", v.Severity())
	}
}

func TestValuesReturnsCopy(t *testing.T) {
	v := NewVocabulary("category", PolicyError, "plan")
	vals := v.Values()
	vals[0] = "mutated"
	if !v.Contains("plan") || v.Values()[0] != "plan" {
		t.Error("Values() must not expose internal state")
	}
}

func TestPolicyString(t *testing.T) {
	if PolicyError.String() != "error" || PolicyWarn.String() != "warn" {
		t.Errorf("unexpected policy names %q %q", PolicyError, PolicyWarn)
	}
}
