// Package model defines shared data structures.
package model

import "time"

// Recognized real-time stats fields for footer display.
const (
	FieldSpeed      = "speed"
	FieldAccuracy   = "accuracy"
	FieldTime       = "time"
	FieldErrors     = "errors"
	FieldErrorsLeft = "errors-left"
	FieldChars      = "chars"
)

// StatsFields lists every recognized real-time stats field, in display order.
var StatsFields = []string{FieldSpeed, FieldAccuracy, FieldTime, FieldErrors, FieldErrorsLeft, FieldChars}

// KnownStatsField reports whether name is a recognized stats field.
func KnownStatsField(name string) bool {
	for _, f := range StatsFields {
		if f == name {
			return true
		}
	}
	return false
}

// Config defines practice settings.
type Config struct {
	Text        string
	TextsDir    string
	Keys        []string
	ShowStats   bool
	StatsFields []string
	RefreshMs   int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Text        string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// Snapshot is a point-in-time statistics read for live display.
type Snapshot struct {
	SpeedWPM    float64
	Accuracy    float64
	Seconds     float64
	TotalErrors int
	ErrorsLeft  int
	CharsTyped  int
	CharsTotal  int
}

// Report is the one-time final statistics computation handed to persistence.
type Report struct {
	TotalErrors int
	ErrorsLeft  int
	Seconds     float64
	Accuracy    float64
	SpeedWPM    float64
}

// SessionRecord captures a completed typing session for the history store.
type SessionRecord struct {
	ID          string
	StartedAt   time.Time
	EndedAt     time.Time
	Text        string
	CharsTotal  int
	Words       int
	TotalInputs int
	TotalErrors int
	ErrorsLeft  int
	DurationMs  int64
}
