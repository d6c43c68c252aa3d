//nolint:revive // var-naming - package name is meaningful
package util

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to path, creating parent directories. Fixtures
// such as agents/<framework>/<doc>.md can be laid out in one call.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// AssertNoError stops the test on a non-nil err.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertEqual reports a mismatch without stopping the test.
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

// GoldenFile compares got with testdata/<name>.golden. With -update the
// golden file is rewritten instead, so report layouts can be refreshed after
// an intentional change.
func GoldenFile(t *testing.T, testdataDir, name, got string) {
	t.Helper()
	golden := filepath.Join(testdataDir, filepath.FromSlash(name)+".golden")

	if updateGolden {
		WriteFile(t, golden, got)
		return
	}

	// #nosec G304 - golden lives under the caller's testdata directory
	want, err := os.ReadFile(golden)
	if err != nil {
		t.Fatalf("read %s: %v (run the tests with -update to create it)", golden, err)
	}
	if got != string(want) {
		t.Errorf("%s differs from golden\n--- got ---\n%s\n--- want ---\n%s", name, got, want)
	}
}

var updateGolden bool

// SetUpdateGolden is called from TestMain with the value of -update.
func SetUpdateGolden(update bool) {
	updateGolden = update
}

// UpdateGolden reports whether golden files are being rewritten.
func UpdateGolden() bool {
	return updateGolden
}
