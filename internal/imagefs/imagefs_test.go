package imagefs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestOSListIsSortedAndShallow(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.png", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "nested", "deeper"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested", "d.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := OS{}.List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"a.png", "b.png", "c.txt", "nested"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(entries), len(want), entries)
	}
	for i, name := range want {
		if entries[i].Name != name {
			t.Fatalf("entry %d = %q, want %q", i, entries[i].Name, name)
		}
		if entries[i].Path != filepath.Join(dir, name) {
			t.Fatalf("entry %d path = %q", i, entries[i].Path)
		}
	}
	if !entries[3].IsDir {
		t.Fatal("expected nested to be reported as a directory")
	}
}

func TestOSMkdirIsSingleLevel(t *testing.T) {
	base := t.TempDir()
	if err := (OS{}).Mkdir(filepath.Join(base, "missing", "out")); err == nil {
		t.Fatal("expected error when parent directory is missing")
	}
	if err := (OS{}).Mkdir(filepath.Join(base, "out")); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
}

func TestOSCreateTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(path, []byte("previous contents"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := OS{}.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := io.WriteString(w, "new"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("content = %q, want new", got)
	}
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if ok, err := IsDir(OS{}, dir); err != nil || !ok {
		t.Fatalf("IsDir(dir) = %v, %v", ok, err)
	}
	if ok, err := IsDir(OS{}, file); err != nil || ok {
		t.Fatalf("IsDir(file) = %v, %v", ok, err)
	}
	if ok, err := IsDir(OS{}, filepath.Join(dir, "absent")); err != nil || ok {
		t.Fatalf("IsDir(absent) = %v, %v", ok, err)
	}
	if _, err := (OS{}).Stat(filepath.Join(dir, "absent")); !errors.Is(err, ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}
