// Package keys decides which keys a practice session accepts.
package keys

import "strings"

// Keys that stay available no matter what the allow-list says. Space,
// comma, period, backspace, and enter are practice-critical: without them
// the user cannot separate words or fix mistakes.
var alwaysAllowed = map[string]struct{}{
	" ":         {},
	"space":     {},
	",":         {},
	".":         {},
	"backspace": {},
	"delete":    {},
	"enter":     {},
	"return":    {},
	"\n":        {},
	"\r":        {},
}

// Policy filters input keys against an optional allow-list.
type Policy struct {
	allowed map[string]struct{}
}

// NewPolicy builds a Policy from configured key names. An empty list means
// every key is permitted.
func NewPolicy(names []string) *Policy {
	p := &Policy{}
	for _, name := range names {
		canon := Normalize(name)
		if canon == "" {
			continue
		}
		if p.allowed == nil {
			p.allowed = map[string]struct{}{}
		}
		p.allowed[canon] = struct{}{}
	}
	return p
}

// Allowed reports whether the key may reach the tracker. The key is either
// a literal character or a keyboard event name such as "enter" or "tab".
func (p *Policy) Allowed(key string) bool {
	canon := Normalize(key)
	if _, ok := alwaysAllowed[canon]; ok {
		return true
	}
	if len(p.allowed) == 0 {
		return true
	}
	_, ok := p.allowed[canon]
	return ok
}

// AllowedRune is Allowed for a single literal character.
func (p *Policy) AllowedRune(r rune) bool {
	return p.Allowed(string(r))
}

// Normalize maps a key to its canonical lower-case form. Tab is both a
// literal character and a named key, so both spellings collapse to "tab".
func Normalize(key string) string {
	if key == "\t" {
		return "tab"
	}
	return strings.ToLower(key)
}
