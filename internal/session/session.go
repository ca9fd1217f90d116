// Package session orchestrates one typing attempt from first keystroke to
// saved report.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"keydrill/internal/keys"
	"keydrill/internal/model"
	"keydrill/internal/stats"
	"keydrill/internal/track"
)

// Phase is the controller's lifecycle state.
type Phase int

// Lifecycle phases. Input is only accepted while Active; Complete is
// terminal until an explicit Restart.
const (
	Idle Phase = iota
	Active
	Complete
)

// Sink receives the final report of a completed session. Saving is
// fire-and-forget: a sink failure never rolls back the Complete phase.
type Sink interface {
	Save(rec model.SessionRecord, rep model.Report) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(rec model.SessionRecord, rep model.Report) error

// Save implements Sink.
func (f SinkFunc) Save(rec model.SessionRecord, rep model.Report) error {
	return f(rec, rep)
}

// Controller owns all state of a single typing session. One controller
// instance per concurrent session; it is not safe for concurrent use.
type Controller struct {
	policy *keys.Policy
	sink   Sink
	now    func() time.Time

	phase   Phase
	tracker *track.Tracker
	label   string
	id      string

	final    model.Report
	hasFinal bool
	saveErr  error

	timerGen int
}

// New builds a controller in the Idle phase.
func New(policy *keys.Policy, sink Sink) *Controller {
	return NewWithClock(policy, sink, time.Now)
}

// NewWithClock is New with an injectable clock, for tests.
func NewWithClock(policy *keys.Policy, sink Sink, now func() time.Time) *Controller {
	if policy == nil {
		policy = keys.NewPolicy(nil)
	}
	return &Controller{policy: policy, sink: sink, now: now}
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// ID returns the session identifier, set on LoadReference.
func (c *Controller) ID() string { return c.id }

// Label returns the display name of the loaded reference text.
func (c *Controller) Label() string { return c.label }

// Tracker exposes the diff state for rendering. Callers must not mutate
// through it.
func (c *Controller) Tracker() *track.Tracker { return c.tracker }

// LoadReference initializes the session with a reference text. Valid only
// from Idle. Trailing whitespace is trimmed before tracking so completion
// and length comparisons ignore it.
func (c *Controller) LoadReference(label, text string) error {
	if c.phase != Idle {
		return fmt.Errorf("reference already loaded")
	}
	c.label = label
	c.id = uuid.NewString()
	c.tracker = track.NewWithClock(trimTrailing(text), c.now)
	c.phase = Active
	c.checkComplete()
	return nil
}

// SubmitInput feeds the whole current input buffer into the session.
// Characters the key policy rejects are stripped before they reach the
// tracker; input outside the Active phase is ignored.
func (c *Controller) SubmitInput(raw string) {
	if c.phase != Active {
		return
	}
	c.tracker.ApplyInput(c.filter(raw))
	c.checkComplete()
}

// Restart abandons the current attempt and begins a fresh one on the same
// reference text. Valid from Active or Complete.
func (c *Controller) Restart() error {
	if c.phase == Idle {
		return fmt.Errorf("no reference loaded")
	}
	c.tracker.Reset()
	c.id = uuid.NewString()
	c.final = model.Report{}
	c.hasFinal = false
	c.saveErr = nil
	c.timerGen++
	c.phase = Active
	c.checkComplete()
	return nil
}

// Snapshot returns live metrics for display.
func (c *Controller) Snapshot() model.Snapshot {
	if c.tracker == nil {
		return model.Snapshot{}
	}
	return stats.Snapshot(c.tracker, c.now())
}

// Final returns the completion report. The second return is false before
// completion, and for completions with zero keystrokes.
func (c *Controller) Final() (model.Report, bool) {
	return c.final, c.hasFinal
}

// SaveErr reports whether handing the final report to the sink failed.
// The session stays Complete either way; callers surface the error.
func (c *Controller) SaveErr() error { return c.saveErr }

// TimerGen identifies the current live-refresh timer chain. It changes on
// every Restart so stale ticks from a previous attempt are discarded.
func (c *Controller) TimerGen() int { return c.timerGen }

// ShouldTick reports whether the live-refresh timer should be running.
func (c *Controller) ShouldTick() bool {
	return c.phase == Active && c.tracker != nil && c.tracker.Started()
}

func (c *Controller) filter(raw string) []rune {
	filtered := make([]rune, 0, len(raw))
	for _, r := range raw {
		if c.policy.AllowedRune(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func (c *Controller) checkComplete() {
	if c.phase != Active || !c.tracker.Complete() {
		return
	}
	c.phase = Complete
	c.timerGen++
	endedAt := c.now()
	rep, ok := stats.Final(c.tracker, endedAt)
	if !ok {
		return
	}
	c.final = rep
	c.hasFinal = true
	if c.sink == nil {
		return
	}
	rec := model.SessionRecord{
		ID:          c.id,
		StartedAt:   c.tracker.StartedAt(),
		EndedAt:     endedAt,
		Text:        c.label,
		CharsTotal:  len(c.tracker.Target()),
		Words:       stats.WordCount(string(c.tracker.Target())),
		TotalInputs: c.tracker.TotalInputs(),
		TotalErrors: c.tracker.TotalErrors(),
		ErrorsLeft:  c.tracker.ErrorsLeft(),
		DurationMs:  endedAt.Sub(c.tracker.StartedAt()).Milliseconds(),
	}
	c.saveErr = c.sink.Save(rec, rep)
}

func trimTrailing(text string) string {
	for len(text) > 0 {
		switch text[len(text)-1] {
		case ' ', '\t', '\n', '\r':
			text = text[:len(text)-1]
		default:
			return text
		}
	}
	return text
}
