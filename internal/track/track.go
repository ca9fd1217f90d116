// Package track owns the per-position diff state of a typing attempt.
package track

import (
	"strings"
	"time"
)

// State classifies one reference position.
type State int

// Position states. Every position starts Pending and is set by forward
// typing; backspace returns it to Pending.
const (
	Pending State = iota
	Correct
	Incorrect
)

// Tracker compares the live input buffer against a fixed reference text.
// Callers hand it the whole buffer value on every change, not deltas.
type Tracker struct {
	target []rune
	states []State
	input  []rune

	totalInputs int
	totalErrors int

	startedAt time.Time
	now       func() time.Time
}

// New builds a Tracker for the given reference text. Trailing whitespace
// should already be trimmed by the text source.
func New(reference string) *Tracker {
	return NewWithClock(reference, time.Now)
}

// NewWithClock is New with an injectable clock, for tests.
func NewWithClock(reference string, now func() time.Time) *Tracker {
	target := []rune(reference)
	return &Tracker{
		target: target,
		states: make([]State, len(target)),
		now:    now,
	}
}

// ApplyInput applies the full current value of the input buffer. Forward
// typing marks new positions and bumps counters; shrinking the buffer
// resets the vacated positions to Pending without touching counters.
// Characters beyond the reference length are ignored. A same-length call
// is a no-op apart from storing the value.
func (t *Tracker) ApplyInput(newValue []rune) {
	if len(newValue) > len(t.target) {
		newValue = newValue[:len(t.target)]
	}
	switch {
	case len(newValue) > len(t.input):
		if t.startedAt.IsZero() {
			t.startedAt = t.now()
		}
		for i := len(t.input); i < len(newValue); i++ {
			t.totalInputs++
			if newValue[i] == t.target[i] {
				t.states[i] = Correct
			} else {
				t.states[i] = Incorrect
				t.totalErrors++
			}
		}
	case len(newValue) < len(t.input):
		for i := len(newValue); i < len(t.states); i++ {
			t.states[i] = Pending
		}
	}
	t.input = append(t.input[:0:0], newValue...)
}

// Reset restores the initial state for a fresh attempt.
func (t *Tracker) Reset() {
	for i := range t.states {
		t.states[i] = Pending
	}
	t.input = nil
	t.totalInputs = 0
	t.totalErrors = 0
	t.startedAt = time.Time{}
}

// Target returns the reference runes.
func (t *Tracker) Target() []rune { return t.target }

// Input returns the current typed prefix.
func (t *Tracker) Input() []rune { return t.input }

// States returns the per-position classification, one entry per target rune.
func (t *Tracker) States() []State { return t.states }

// TotalInputs counts every accepted forward keystroke. Backspace never
// decrements it.
func (t *Tracker) TotalInputs() int { return t.totalInputs }

// TotalErrors counts every incorrect forward keystroke ever made, including
// positions that were later corrected.
func (t *Tracker) TotalErrors() int { return t.totalErrors }

// ErrorsLeft counts positions that are currently incorrect.
func (t *Tracker) ErrorsLeft() int {
	n := 0
	for _, s := range t.states {
		if s == Incorrect {
			n++
		}
	}
	return n
}

// StartedAt returns the time of the first forward keystroke, or the zero
// time before any typing happened.
func (t *Tracker) StartedAt() time.Time { return t.startedAt }

// Started reports whether the session clock is running.
func (t *Tracker) Started() bool { return !t.startedAt.IsZero() }

// Complete reports whether the attempt is finished: every visible slot is
// consumed. Trailing whitespace is exempt since reference texts may end in
// a newline that display trims.
func (t *Tracker) Complete() bool {
	return Complete(t.target, t.input)
}

// Complete reports whether typed fills reference, ignoring trailing
// whitespace on both sides.
func Complete(reference, typed []rune) bool {
	return trimmedLen(typed) == trimmedLen(reference)
}

func trimmedLen(runes []rune) int {
	return len([]rune(strings.TrimRight(string(runes), " \t\n\r")))
}
