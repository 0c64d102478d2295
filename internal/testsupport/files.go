package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// MkdirAll creates a directory tree, failing the test on error.
func MkdirAll(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

// WriteFile creates a file with the given content.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	MkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteAgedFile creates a file whose modification time lies the given number
// of days in the past.
func WriteAgedFile(t testing.TB, path, content string, ageDays int) {
	t.Helper()
	WriteFile(t, path, content)
	stamp := time.Now().AddDate(0, 0, -ageDays)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}
