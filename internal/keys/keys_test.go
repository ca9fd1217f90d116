package keys

import "testing"

func TestEmptyAllowListAcceptsEverything(t *testing.T) {
	p := NewPolicy(nil)
	for _, key := range []string{"a", "Z", "7", "tab", "\t", "!"} {
		if !p.Allowed(key) {
			t.Fatalf("expected %q allowed with empty allow-list", key)
		}
	}
}

func TestAllowListFiltersKeys(t *testing.T) {
	p := NewPolicy([]string{"a", "s", "d", "f"})
	if !p.Allowed("a") {
		t.Fatalf("expected listed key allowed")
	}
	if !p.Allowed("A") {
		t.Fatalf("expected allow-list to be case-insensitive")
	}
	if p.Allowed("g") {
		t.Fatalf("expected unlisted key rejected")
	}
}

func TestPracticeCriticalKeysAlwaysAllowed(t *testing.T) {
	p := NewPolicy([]string{"a"})
	for _, key := range []string{" ", "space", ",", ".", "backspace", "delete", "enter", "return", "\n", "\r"} {
		if !p.Allowed(key) {
			t.Fatalf("expected %q allowed regardless of allow-list", key)
		}
	}
}

func TestTabNormalization(t *testing.T) {
	p := NewPolicy([]string{"tab"})
	if !p.Allowed("\t") {
		t.Fatalf("expected literal tab to match named tab")
	}
	if !p.Allowed("Tab") {
		t.Fatalf("expected named tab to be case-insensitive")
	}
	if p.Allowed("x") {
		t.Fatalf("expected unlisted key rejected")
	}
}

func TestAllowedRune(t *testing.T) {
	p := NewPolicy([]string{"q"})
	if !p.AllowedRune('q') {
		t.Fatalf("expected listed rune allowed")
	}
	if p.AllowedRune('w') {
		t.Fatalf("expected unlisted rune rejected")
	}
	if !p.AllowedRune(' ') {
		t.Fatalf("expected space rune always allowed")
	}
}
