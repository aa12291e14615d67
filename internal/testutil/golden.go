// Package testutil provides shared test helpers for golden file testing.
package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

// Update is a flag that, when set, regenerates golden files from current output.
// Usage: go test ./... -update
var Update = flag.Bool("update", false, "update golden files")

// DiffFunc produces patch text from an original and a modified file.
type DiffFunc func(oldText, newText string) string

// RunGolden runs a single golden file test in the given directory.
// It reads old.txt and new.txt, applies diffFn, and compares against
// expected.patch.
func RunGolden(t *testing.T, dir string, diffFn DiffFunc) {
	t.Helper()

	oldText := readFile(t, filepath.Join(dir, "old.txt"))
	newText := readFile(t, filepath.Join(dir, "new.txt"))
	expectedPath := filepath.Join(dir, "expected.patch")

	actual := diffFn(oldText, newText)

	if *Update {
		if err := os.WriteFile(expectedPath, []byte(actual), 0o644); err != nil {
			t.Fatalf("failed to update golden file %s: %v", expectedPath, err)
		}
		t.Logf("updated golden file: %s", expectedPath)
		return
	}

	expected := readFile(t, expectedPath)
	if actual != expected {
		t.Errorf("output mismatch for %s:\n--- expected\n%s\n--- actual\n%s", dir, expected, actual)
	}
}

// RunGoldenDir walks all subdirectories under testdataDir and runs
// RunGolden for each as a subtest.
func RunGoldenDir(t *testing.T, testdataDir string, diffFn DiffFunc) {
	t.Helper()

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		t.Fatalf("failed to read testdata dir %s: %v", testdataDir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		t.Run(entry.Name(), func(t *testing.T) {
			RunGolden(t, filepath.Join(testdataDir, entry.Name()), diffFn)
		})
	}
}

// ReadGoldenPair returns the old.txt and new.txt contents of a golden case.
func ReadGoldenPair(t *testing.T, dir string) (oldText, newText string) {
	t.Helper()
	return readFile(t, filepath.Join(dir, "old.txt")), readFile(t, filepath.Join(dir, "new.txt"))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
