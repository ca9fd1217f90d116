package report

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"keydrill/internal/model"
)

var sample = model.Report{
	TotalErrors: 4,
	ErrorsLeft:  1,
	Seconds:     75.5,
	Accuracy:    91.67,
	SpeedWPM:    42.4,
}

func TestFormatLayout(t *testing.T) {
	generated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	out := Format(sample, generated, "abc-123")
	lines := strings.Split(out, "\n")
	want := []string{
		"Total Errors Made: 4",
		"Errors Left (Unfixed): 1",
		"Total Time: 75.50 seconds",
		"Accuracy: 91.67%",
		"Speed: 42.40 words per minute",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("line %d: got %q, want %q", i, lines[i], w)
		}
	}
	if !strings.Contains(out, "Generated: "+generated.Format(time.RFC1123)) {
		t.Fatalf("missing generated trailer:\n%s", out)
	}
	if !strings.Contains(out, "Session: abc-123") {
		t.Fatalf("missing session trailer:\n%s", out)
	}
}

func TestParseRoundTrip(t *testing.T) {
	generated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	saved, err := Parse(Format(sample, generated, "abc-123"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if saved.Report != (model.Report{TotalErrors: 4, ErrorsLeft: 1, Seconds: 75.5, Accuracy: 91.67, SpeedWPM: 42.4}) {
		t.Fatalf("unexpected report: %+v", saved.Report)
	}
	if !saved.Generated.Equal(generated) {
		t.Fatalf("expected generated %v, got %v", generated, saved.Generated)
	}
	if saved.SessionID != "abc-123" {
		t.Fatalf("expected session id, got %q", saved.SessionID)
	}
}

func TestParseToleratesSurroundingText(t *testing.T) {
	content := strings.Join([]string{
		"=== typing session report ===",
		"Some banner text.",
		"Total Errors Made: 2",
		"Errors Left (Unfixed): 0",
		"note in the middle",
		"Total Time: 12.00 seconds",
		"Accuracy: 96.00%",
		"Speed: 30.00 words per minute",
		"trailing junk",
	}, "\n")
	saved, err := Parse(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if saved.Report.TotalErrors != 2 || saved.Report.SpeedWPM != 30 {
		t.Fatalf("unexpected report: %+v", saved.Report)
	}
}

func TestParseMissingField(t *testing.T) {
	if _, err := Parse("Total Errors Made: 2\n"); err == nil {
		t.Fatalf("expected error for incomplete report")
	}
}

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.txt")
	generated := time.Now().Truncate(time.Second)
	if err := Write(path, sample, generated, "id-1"); err != nil {
		t.Fatalf("write: %v", err)
	}
	saved, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if saved.Report.TotalErrors != sample.TotalErrors || saved.SessionID != "id-1" {
		t.Fatalf("unexpected round trip: %+v", saved)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(12.5); got != "12.50 seconds" {
		t.Fatalf("unexpected short duration: %q", got)
	}
	if got := FormatDuration(75.5); got != "1m 15.50s" {
		t.Fatalf("unexpected long duration: %q", got)
	}
}
