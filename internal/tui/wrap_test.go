package tui

import (
	"testing"

	"keydrill/internal/track"
)

func statesFor(target, input string) ([]rune, []track.State) {
	tr := track.New(target)
	tr.ApplyInput([]rune(input))
	return tr.Target(), tr.States()
}

func TestBuildStyledRunesCursor(t *testing.T) {
	target, states := statesFor("ab", "a")
	cursorIndex := 1

	runes := buildStyledRunes(target, states, cursorIndex)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined cursor for second rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	target, states := statesFor("ab", "ax")

	runes := buildStyledRunes(target, states, -1)
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style showing the target rune")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	target, states := statesFor("a b", "ax")

	runes := buildStyledRunes(target, states, 2)
	if runes[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected bullet for mistyped space, got %q", runes[1].s)
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	target, states := statesFor("one two", "o")

	runes := buildStyledRunes(target, states, 1)
	if runes[0].s != correctStyle.Render("o") {
		t.Fatalf("expected correct style for typed rune")
	}
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style inside current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	target, states := statesFor("one two three", "")
	runes := buildStyledRunes(target, states, -1)

	wrapped := wrapStyledRunes(runes, 7)
	lines := 1
	for _, r := range wrapped {
		if r == '\n' {
			lines++
		}
	}
	if lines < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %q", wrapped)
	}
}

func TestFindWords(t *testing.T) {
	words := findWords([]rune("one two"))
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[0].start != 0 || words[0].end != 3 {
		t.Fatalf("unexpected first word range: %+v", words[0])
	}
	if words[1].start != 4 || words[1].end != 7 {
		t.Fatalf("unexpected second word range: %+v", words[1])
	}
}
