package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"keydrill/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
)

// RecordMetrics computes WPM and accuracy for a stored session.
func RecordMetrics(rec model.SessionRecord) (wpm, accuracy float64) {
	minutes := float64(rec.DurationMs) / 60000.0
	if minutes > 0 {
		wpm = float64(rec.Words) / minutes
	}
	if rec.TotalInputs > 0 {
		accuracy = float64(rec.TotalInputs-rec.TotalErrors) / float64(rec.TotalInputs) * 100
	}
	return wpm, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// TerminalWidth returns the stdout width, falling back when stdout is not
// a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderSummary prints an aggregate summary for stored sessions.
func RenderSummary(w io.Writer, records []model.SessionRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalWPM, totalAcc, totalSeconds float64
	bestWPM := 0.0
	for _, rec := range records {
		wpm, acc := RecordMetrics(rec)
		totalWPM += wpm
		totalAcc += acc
		totalSeconds += float64(rec.DurationMs) / 1000
		if wpm > bestWPM {
			bestWPM = wpm
		}
	}
	count := float64(len(records))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(records)),
		fmt.Sprintf("Avg Speed: %.2f WPM", totalWPM/count),
		fmt.Sprintf("Best Speed: %.2f WPM", bestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", totalAcc/count),
		fmt.Sprintf("Total Practice Time: %.1f s", totalSeconds),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistoryTable prints one row per stored session.
func RenderHistoryTable(w io.Writer, records []model.SessionRecord) error {
	if len(records) == 0 {
		return nil
	}
	headers := []string{"Ended", "Text", "WPM", "Accuracy", "Errors", "Unfixed", "Duration"}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		wpm, acc := RecordMetrics(rec)
		rows = append(rows, []string{
			rec.EndedAt.Format("2006-01-02 15:04"),
			rec.Text,
			fmt.Sprintf("%.1f", wpm),
			fmt.Sprintf("%.2f%%", acc),
			fmt.Sprintf("%d", rec.TotalErrors),
			fmt.Sprintf("%d", rec.ErrorsLeft),
			fmt.Sprintf("%.1fs", float64(rec.DurationMs)/1000),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCurves prints moving-average sparklines for speed and accuracy,
// clipped to the given width.
func RenderCurves(w io.Writer, records []model.SessionRecord, window, width int) error {
	if len(records) == 0 {
		return nil
	}
	wpms := make([]float64, len(records))
	accs := make([]float64, len(records))
	for i, rec := range records {
		wpms[i], accs[i] = RecordMetrics(rec)
	}
	wpms = MovingAverage(wpms, window)
	accs = MovingAverage(accs, window)
	if width > 0 {
		wpms = clipTail(wpms, width)
		accs = clipTail(accs, width)
	}
	series := []struct {
		name   string
		values []float64
	}{
		{"Speed", wpms},
		{"Accuracy", accs},
	}
	if _, err := fmt.Fprintln(w, "Learning Curves"); err != nil {
		return err
	}
	for _, s := range series {
		minVal, maxVal := minMax(s.values)
		if _, err := fmt.Fprintf(w, "%-8s [%s] %.1f..%.1f\n", s.name, Sparkline(s.values), minVal, maxVal); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func clipTail(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return values
	}
	return values[len(values)-width:]
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}
