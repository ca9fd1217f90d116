package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"keydrill/internal/model"
)

func sampleRecords() []model.SessionRecord {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []model.SessionRecord{
		{
			EndedAt:     base,
			Text:        "quotes",
			Words:       10,
			TotalInputs: 50,
			TotalErrors: 5,
			ErrorsLeft:  1,
			DurationMs:  60000,
		},
		{
			EndedAt:     base.Add(time.Hour),
			Text:        "quotes",
			Words:       20,
			TotalInputs: 100,
			TotalErrors: 2,
			DurationMs:  60000,
		},
	}
}

func TestRecordMetrics(t *testing.T) {
	wpm, acc := RecordMetrics(sampleRecords()[0])
	if wpm != 10 {
		t.Fatalf("expected 10 WPM, got %f", wpm)
	}
	if acc != 90 {
		t.Fatalf("expected 90%% accuracy, got %f", acc)
	}
}

func TestRecordMetricsZeroDuration(t *testing.T) {
	wpm, acc := RecordMetrics(model.SessionRecord{Words: 5})
	if wpm != 0 || acc != 0 {
		t.Fatalf("expected zero metrics for empty record, got %f/%f", wpm, acc)
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{2, 4, 6, 8}
	out := MovingAverage(values, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("window 2 at %d: got %f, want %f", i, out[i], want[i])
		}
	}
	copied := MovingAverage(values, 1)
	for i := range values {
		if copied[i] != values[i] {
			t.Fatalf("window 1 must copy values")
		}
	}
}

func TestSparkline(t *testing.T) {
	line := Sparkline([]float64{0, 5, 10})
	if len(line) != 3 {
		t.Fatalf("expected 3 chars, got %q", line)
	}
	if line[0] != sparkChars[0] || line[2] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("expected min/max at ends, got %q", line)
	}
	flat := Sparkline([]float64{4, 4, 4})
	if len(flat) != 3 {
		t.Fatalf("expected flat sparkline of 3 chars, got %q", flat)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sampleRecords()); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 2", "Avg Speed: 15.00 WPM", "Best Speed: 20.00 WPM", "Avg Accuracy: 94.00%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("expected empty notice, got %q", buf.String())
	}
}

func TestRenderHistoryTable(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistoryTable(&buf, sampleRecords()); err != nil {
		t.Fatalf("render table: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Ended") || !strings.Contains(out, "quotes") {
		t.Fatalf("unexpected table output:\n%s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected header and two rows, got %d lines", len(lines))
	}
}

func TestRenderCurvesClipsToWidth(t *testing.T) {
	records := make([]model.SessionRecord, 30)
	for i := range records {
		records[i] = model.SessionRecord{Words: 10 + i, TotalInputs: 50, DurationMs: 60000}
	}
	var buf bytes.Buffer
	if err := RenderCurves(&buf, records, 1, 10); err != nil {
		t.Fatalf("render curves: %v", err)
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "[") {
			start := strings.Index(line, "[")
			end := strings.Index(line, "]")
			if end-start-1 != 10 {
				t.Fatalf("expected sparkline clipped to 10 chars: %q", line)
			}
		}
	}
}

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Text", "WPM", "Errors"}
	rows := [][]string{
		{"quotes", "97.5", "12"},
		{"prose", "8.0", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Text    WPM Errors" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "quotes 97.5     12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "prose   8.0      3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
