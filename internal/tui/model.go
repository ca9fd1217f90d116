// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"keydrill/internal/model"
	"keydrill/internal/session"
	"keydrill/internal/track"
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	doneTitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	errorNoteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

type tickMsg struct {
	gen int
}

// Model implements the Bubble Tea practice UI around a session controller.
type Model struct {
	cfg  model.Config
	ctrl *session.Controller

	refresh time.Duration
	ticking bool

	width  int
	height int
}

// NewModel constructs a practice TUI model. The controller must already
// have its reference text loaded.
func NewModel(cfg model.Config, ctrl *session.Controller) *Model {
	refresh := time.Duration(cfg.RefreshMs) * time.Millisecond
	if refresh <= 0 {
		refresh = 100 * time.Millisecond
	}
	return &Model{cfg: cfg, ctrl: ctrl, refresh: refresh}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		// Every tick ends its chain; a fresh one starts only while the
		// session is active, so chains from a completed or restarted
		// attempt die here instead of leaking across sessions.
		m.ticking = false
		if msg.gen != m.ctrl.TimerGen() {
			// Tick scheduled for a previous attempt; its chain ends here
			// and the next keystroke arms a fresh one.
			return m, nil
		}
		return m, m.startTick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab:
		if m.ctrl.Phase() == session.Complete {
			if err := m.ctrl.Restart(); err == nil {
				return m, nil
			}
		}
		m.typeRunes([]rune{'\t'})
	case tea.KeyBackspace, tea.KeyDelete:
		m.backspace()
	case tea.KeySpace:
		m.typeRunes([]rune{' '})
	case tea.KeyEnter:
		m.typeRunes([]rune{'\n'})
	case tea.KeyRunes:
		m.typeRunes(msg.Runes)
	}
	return m, m.startTick()
}

// typeRunes appends to the accepted prefix and resubmits the whole buffer.
// The controller's prefix is canonical, so policy-rejected characters never
// linger in the display buffer.
func (m *Model) typeRunes(runes []rune) {
	if m.ctrl.Phase() != session.Active {
		return
	}
	buf := append([]rune(nil), m.ctrl.Tracker().Input()...)
	buf = append(buf, runes...)
	m.ctrl.SubmitInput(string(buf))
}

func (m *Model) backspace() {
	if m.ctrl.Phase() != session.Active {
		return
	}
	buf := m.ctrl.Tracker().Input()
	if len(buf) == 0 {
		return
	}
	m.ctrl.SubmitInput(string(buf[:len(buf)-1]))
}

// startTick schedules the next live-refresh tick. Idempotent: at most one
// chain runs at a time.
func (m *Model) startTick() tea.Cmd {
	if m.ticking || !m.ctrl.ShouldTick() {
		return nil
	}
	m.ticking = true
	gen := m.ctrl.TimerGen()
	return tea.Tick(m.refresh, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	tracker := m.ctrl.Tracker()
	if tracker == nil || len(tracker.Target()) == 0 {
		return ""
	}
	var content string
	if m.ctrl.Phase() == session.Complete {
		content = m.renderDone()
	} else {
		content = m.renderPractice(tracker)
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderPractice(tracker *track.Tracker) string {
	cursorIndex := -1
	if len(tracker.Input()) < len(tracker.Target()) {
		cursorIndex = len(tracker.Input())
	}
	styledRunes := buildStyledRunes(tracker.Target(), tracker.States(), cursorIndex)
	if m.width == 0 {
		return renderStyledRunes(styledRunes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	return lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
}

func (m *Model) renderDone() string {
	lines := []string{doneTitleStyle.Render("Session complete")}
	if rep, ok := m.ctrl.Final(); ok {
		lines = append(lines,
			fmt.Sprintf("Speed: %.2f words per minute", rep.SpeedWPM),
			fmt.Sprintf("Accuracy: %.2f%%", rep.Accuracy),
			fmt.Sprintf("Total Time: %.2f seconds", rep.Seconds),
			fmt.Sprintf("Total Errors Made: %d", rep.TotalErrors),
			fmt.Sprintf("Errors Left (Unfixed): %d", rep.ErrorsLeft),
		)
	}
	if err := m.ctrl.SaveErr(); err != nil {
		lines = append(lines, errorNoteStyle.Render(fmt.Sprintf("failed to save report: %v", err)))
	}
	lines = append(lines, "", footerStyle.Render("tab restart · esc quit"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	if m.ctrl.Phase() != session.Active || !m.cfg.ShowStats {
		return ""
	}
	snap := m.ctrl.Snapshot()
	fields := m.cfg.StatsFields
	if len(fields) == 0 {
		fields = model.StatsFields
	}
	segments := make([]string, 0, len(fields))
	for _, field := range fields {
		switch field {
		case model.FieldSpeed:
			segments = append(segments, fmt.Sprintf("%.1f WPM", snap.SpeedWPM))
		case model.FieldAccuracy:
			segments = append(segments, fmt.Sprintf("%.1f%%", snap.Accuracy))
		case model.FieldTime:
			segments = append(segments, fmt.Sprintf("%.0fs", snap.Seconds))
		case model.FieldErrors:
			segments = append(segments, fmt.Sprintf("Errors %d", snap.TotalErrors))
		case model.FieldErrorsLeft:
			segments = append(segments, fmt.Sprintf("Unfixed %d", snap.ErrorsLeft))
		case model.FieldChars:
			segments = append(segments, fmt.Sprintf("%d/%d", snap.CharsTyped, snap.CharsTotal))
		}
	}
	if len(segments) == 0 {
		return ""
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
