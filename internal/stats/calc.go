// Package stats contains statistics calculations and reporting.
package stats

import (
	"strings"
	"time"

	"keydrill/internal/model"
	"keydrill/internal/track"
)

// Snapshot computes live metrics for the current state of a tracker. It is
// valid at any time: before the first keystroke every rate is zero rather
// than undefined, so "no attempt yet" renders as a zero state.
func Snapshot(t *track.Tracker, now time.Time) model.Snapshot {
	snap := model.Snapshot{
		CharsTyped: len(t.Input()),
		CharsTotal: len(t.Target()),
	}
	if !t.Started() {
		return snap
	}
	seconds := now.Sub(t.StartedAt()).Seconds()
	snap.Seconds = seconds
	snap.TotalErrors = t.TotalErrors()
	snap.ErrorsLeft = t.ErrorsLeft()
	snap.Accuracy = accuracy(t.TotalInputs(), t.TotalErrors())
	snap.SpeedWPM = speedWPM(WordCount(string(t.Target())), seconds)
	return snap
}

// Final computes the one-time completion report. The second return is false
// when the clock never started, which only happens for an empty reference
// completed with zero keystrokes; there are no statistics to report then.
func Final(t *track.Tracker, now time.Time) (model.Report, bool) {
	if !t.Started() {
		return model.Report{}, false
	}
	seconds := now.Sub(t.StartedAt()).Seconds()
	return model.Report{
		TotalErrors: t.TotalErrors(),
		ErrorsLeft:  t.ErrorsLeft(),
		Seconds:     seconds,
		Accuracy:    accuracy(t.TotalInputs(), t.TotalErrors()),
		SpeedWPM:    speedWPM(WordCount(string(t.Target())), seconds),
	}, true
}

// WordCount counts whitespace-delimited tokens in the trimmed reference
// text. Speed is fixed by the reference, not by what was actually typed.
func WordCount(reference string) int {
	return len(strings.Fields(strings.TrimSpace(reference)))
}

func accuracy(totalInputs, totalErrors int) float64 {
	if totalInputs <= 0 {
		return 0
	}
	return float64(totalInputs-totalErrors) / float64(totalInputs) * 100
}

func speedWPM(words int, seconds float64) float64 {
	minutes := seconds / 60
	if minutes <= 0 {
		return 0
	}
	return float64(words) / minutes
}
