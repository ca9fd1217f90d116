package texts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadBuiltin(t *testing.T) {
	label, content, err := Load(t.TempDir(), "")
	if err != nil {
		t.Fatalf("load builtin: %v", err)
	}
	if label != BuiltinName {
		t.Fatalf("expected builtin label, got %q", label)
	}
	if content == "" {
		t.Fatalf("expected builtin content")
	}
}

func TestLoadByNameTrimsTrailingWhitespace(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "quotes.txt"), []byte("practice makes perfect\n"), 0o644); err != nil {
		t.Fatalf("write text: %v", err)
	}
	label, content, err := Load(dir, "quotes")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if label != "quotes" {
		t.Fatalf("unexpected label %q", label)
	}
	if strings.HasSuffix(content, "\n") {
		t.Fatalf("expected trailing newline trimmed, got %q", content)
	}
}

func TestLoadByPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.txt")
	if err := os.WriteFile(path, []byte("alpha beta"), 0o644); err != nil {
		t.Fatalf("write text: %v", err)
	}
	label, content, err := Load("unused-dir", path)
	if err != nil {
		t.Fatalf("load by path: %v", err)
	}
	if label != "custom" || content != "alpha beta" {
		t.Fatalf("unexpected result: %q %q", label, content)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "empty.txt"), []byte("\n\n"), 0o644); err != nil {
		t.Fatalf("write text: %v", err)
	}
	if _, _, err := Load(dir, "empty"); err == nil {
		t.Fatalf("expected error for whitespace-only text")
	}
}

func TestListIncludesBuiltinAndFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"quotes.txt", "prose.txt", "notes.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	names, err := List(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{BuiltinName, "prose", "quotes"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestListMissingDir(t *testing.T) {
	names, err := List(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir must not be an error: %v", err)
	}
	if len(names) != 1 || names[0] != BuiltinName {
		t.Fatalf("expected only builtin, got %v", names)
	}
}
