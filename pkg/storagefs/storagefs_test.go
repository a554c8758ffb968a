package storagefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileLockedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users", "martin.json")

	if err := WriteFileLocked(path, []byte(`{"username":"martin"}`)); err != nil {
		t.Fatalf("WriteFileLocked: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != `{"username":"martin"}` {
		t.Fatalf("got %q", got)
	}

	// overwrite
	if err := WriteFileLocked(path, []byte(`{"username":"martin2"}`)); err != nil {
		t.Fatalf("WriteFileLocked overwrite: %v", err)
	}
	got, _ = os.ReadFile(path)
	if string(got) != `{"username":"martin2"}` {
		t.Fatalf("overwrite got %q", got)
	}

	// no leftover temp files
	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if len(e.Name()) >= 5 && e.Name()[:5] == ".tmp-" {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}

func TestAppendFileLocked(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "admin_audit.log")

	if err := AppendFileLocked(path, []byte("line1\n")); err != nil {
		t.Fatalf("append 1: %v", err)
	}
	if err := AppendFileLocked(path, []byte("line2\n")); err != nil {
		t.Fatalf("append 2: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "line1\nline2\n" {
		t.Fatalf("got %q", got)
	}
}

func TestReadFileCheckedRejectsOversized(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.json")
	os.WriteFile(path, []byte("0123456789"), 0o644)

	if _, err := ReadFileChecked(path, 5); err == nil {
		t.Error("expected size-limit error")
	}
	if _, err := ReadFileChecked(path, 100); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
