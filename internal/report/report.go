// Package report writes and parses the plain-text session report.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"keydrill/internal/model"
)

// Saved holds a parsed report plus its optional trailer fields.
type Saved struct {
	Report    model.Report
	Generated time.Time
	SessionID string
}

var (
	totalErrorsRe = regexp.MustCompile(`Total Errors Made:\s*(\d+)`)
	errorsLeftRe  = regexp.MustCompile(`Errors Left \(Unfixed\):\s*(\d+)`)
	totalTimeRe   = regexp.MustCompile(`Total Time:\s*([\d.]+)\s*seconds`)
	accuracyRe    = regexp.MustCompile(`Accuracy:\s*([\d.]+)%`)
	speedRe       = regexp.MustCompile(`Speed:\s*([\d.]+)\s*words per minute`)
	generatedRe   = regexp.MustCompile(`Generated:\s*(.+)`)
	sessionRe     = regexp.MustCompile(`Session:\s*(\S+)`)
)

// Format renders a report in the fixed five-line layout, followed by a
// trailer with the generation time and session id.
func Format(r model.Report, generated time.Time, sessionID string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Errors Made: %d\n", r.TotalErrors)
	fmt.Fprintf(&b, "Errors Left (Unfixed): %d\n", r.ErrorsLeft)
	fmt.Fprintf(&b, "Total Time: %.2f seconds\n", r.Seconds)
	fmt.Fprintf(&b, "Accuracy: %.2f%%\n", r.Accuracy)
	fmt.Fprintf(&b, "Speed: %.2f words per minute\n", r.SpeedWPM)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Generated: %s\n", generated.Format(time.RFC1123))
	if sessionID != "" {
		fmt.Fprintf(&b, "Session: %s\n", sessionID)
	}
	return b.String()
}

// Parse recovers the five metric fields by labeled-line matching. Extra
// surrounding text is tolerated; a missing metric line is an error.
func Parse(content string) (Saved, error) {
	var saved Saved

	n, err := matchInt(totalErrorsRe, content, "Total Errors Made")
	if err != nil {
		return Saved{}, err
	}
	saved.Report.TotalErrors = n

	n, err = matchInt(errorsLeftRe, content, "Errors Left (Unfixed)")
	if err != nil {
		return Saved{}, err
	}
	saved.Report.ErrorsLeft = n

	f, err := matchFloat(totalTimeRe, content, "Total Time")
	if err != nil {
		return Saved{}, err
	}
	saved.Report.Seconds = f

	f, err = matchFloat(accuracyRe, content, "Accuracy")
	if err != nil {
		return Saved{}, err
	}
	saved.Report.Accuracy = f

	f, err = matchFloat(speedRe, content, "Speed")
	if err != nil {
		return Saved{}, err
	}
	saved.Report.SpeedWPM = f

	if m := generatedRe.FindStringSubmatch(content); m != nil {
		if ts, err := time.Parse(time.RFC1123, strings.TrimSpace(m[1])); err == nil {
			saved.Generated = ts
		}
	}
	if m := sessionRe.FindStringSubmatch(content); m != nil {
		saved.SessionID = m[1]
	}
	return saved, nil
}

func matchInt(re *regexp.Regexp, content, label string) (int, error) {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return 0, fmt.Errorf("report is missing %q", label)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", label, m[1], err)
	}
	return n, nil
}

func matchFloat(re *regexp.Regexp, content, label string) (float64, error) {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return 0, fmt.Errorf("report is missing %q", label)
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", label, m[1], err)
	}
	return f, nil
}

// Write persists a formatted report atomically at path.
func Write(path string, r model.Report, generated time.Time, sessionID string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "stats-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp report: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.WriteString(Format(r, generated, sessionID)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close report: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Read loads and parses a saved report from path.
func Read(path string) (Saved, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Saved{}, fmt.Errorf("failed to read report: %w", err)
	}
	return Parse(string(content))
}

// FormatDuration renders seconds the way the report reader prints them:
// plain seconds under a minute, minutes and seconds above.
func FormatDuration(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%.2f seconds", seconds)
	}
	minutes := int(seconds) / 60
	return fmt.Sprintf("%dm %.2fs", minutes, seconds-float64(minutes*60))
}
