package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSafeWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	if err := SafeWriteFile(path, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != `{"a":1}` {
		t.Fatalf("read back %q, %v", b, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("temp file left behind: %v %v", entries, err)
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "manifest.json")
	if err := WriteJSON(path, map[string]string{"id": "run"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "{\n  \"id\": \"run\"\n}\n" {
		t.Fatalf("unexpected file: %q", b)
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"rows": 3})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "{\n  \"rows\": 3\n}" {
		t.Fatalf("unexpected json: %s", b)
	}
}

func TestFindUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := EnsureDir(nested); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "manifest.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := FindUp(nested, "manifest.json")
	if err != nil {
		t.Fatalf("FindUp: %v", err)
	}
	if got != root {
		t.Fatalf("got %s, want %s", got, root)
	}
	if _, err := FindUp(nested, "missing.json"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
