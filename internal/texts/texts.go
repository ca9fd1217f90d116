// Package texts loads reference texts for practice sessions.
package texts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// BuiltinName selects the built-in reference text.
const BuiltinName = "default"

const builtinText = "The quick brown fox jumps over the lazy dog while the typist " +
	"keeps a steady rhythm and fixes every slip before moving on."

// Load resolves a text by name and returns its label and content with
// trailing whitespace trimmed. The name may be a file in dir (with or
// without the .txt suffix), a path, or BuiltinName.
func Load(dir, name string) (label, content string, err error) {
	if name == "" || name == BuiltinName {
		return BuiltinName, builtinText, nil
	}
	path := name
	if !strings.ContainsRune(name, os.PathSeparator) {
		candidate := filepath.Join(dir, name)
		if !strings.HasSuffix(candidate, ".txt") {
			candidate += ".txt"
		}
		path = candidate
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	content = strings.TrimRight(string(raw), " \t\n\r")
	if content == "" {
		return "", "", fmt.Errorf("reference text is empty: %s", path)
	}
	label = strings.TrimSuffix(filepath.Base(path), ".txt")
	return label, content, nil
}

// List returns the names of available texts in dir, sorted, including the
// built-in text.
func List(dir string) ([]string, error) {
	names := []string{BuiltinName}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return names, nil
		}
		return nil, fmt.Errorf("failed to read texts directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".txt") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".txt"))
	}
	sort.Strings(names)
	return names, nil
}
