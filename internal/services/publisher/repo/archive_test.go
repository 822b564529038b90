package repo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileIsEmptySet(t *testing.T) {
	a := NewFileArchive(filepath.Join(t.TempDir(), "archive.txt"))
	set, err := a.Load()
	if err != nil {
		t.Fatalf("Load err = %v", err)
	}
	if len(set) != 0 {
		t.Fatalf("Load = %d entries, want 0", len(set))
	}
}

func TestAppendThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.txt")
	a := NewFileArchive(path)

	// empty append is a no-op and must not create the file
	if err := a.Append(nil); err != nil {
		t.Fatalf("Append(nil) err = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("empty append created the file")
	}

	first := []string{
		"tg://proxy?server=1.2.3.4&port=443&secret=deadbeef",
		"tg://proxy?server=5.6.7.8&port=1080",
	}
	if err := a.Append(first); err != nil {
		t.Fatalf("Append err = %v", err)
	}

	set, err := a.Load()
	if err != nil {
		t.Fatalf("Load err = %v", err)
	}
	for _, k := range first {
		if _, ok := set[k]; !ok {
			t.Fatalf("Load missing %q", k)
		}
	}
	if len(set) != len(first) {
		t.Fatalf("Load = %d entries, want %d", len(set), len(first))
	}
}

func TestAppend_NeverRewrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.txt")
	a := NewFileArchive(path)

	if err := a.Append([]string{"k1"}); err != nil {
		t.Fatalf("Append err = %v", err)
	}
	if err := a.Append([]string{"k2", "k3"}); err != nil {
		t.Fatalf("Append err = %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if got, want := string(b), "k1\nk2\nk3\n"; got != want {
		t.Fatalf("file = %q, want %q", got, want)
	}
}

func TestLoad_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.txt")
	if err := os.WriteFile(path, []byte("k1\n\n  \nk2\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	set, err := NewFileArchive(path).Load()
	if err != nil {
		t.Fatalf("Load err = %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("Load = %d entries, want 2", len(set))
	}
}

func TestLoad_UnreadableReturnsEmptySetAndError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not bind as root")
	}
	path := filepath.Join(t.TempDir(), "archive.txt")
	if err := os.WriteFile(path, []byte("k1\n"), 0o000); err != nil {
		t.Fatalf("seed: %v", err)
	}
	set, err := NewFileArchive(path).Load()
	if err == nil {
		t.Fatalf("Load should surface the read failure")
	}
	if !strings.Contains(err.Error(), "unreadable") {
		t.Fatalf("Load err = %v", err)
	}
	if len(set) != 0 {
		t.Fatalf("Load = %d entries, want empty set on error", len(set))
	}
}
