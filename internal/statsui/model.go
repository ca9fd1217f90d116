// Package statsui provides the Bubble Tea history browser.
package statsui

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"keydrill/internal/model"
	"keydrill/internal/stats"
	"keydrill/internal/store"
)

const (
	tabOverview = iota
	tabSessions
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the Bubble Tea history UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	records []model.SessionRecord
	errMsg  string

	tabs      []string
	activeTab int
	viewport  viewport.Model
	table     table.Model

	width  int
	height int
}

// NewModel constructs a history browser over stored sessions.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store: st,
		cfg:   cfg,
		tabs:  []string{"Overview", "Sessions"},
	}
	m.viewport = viewport.New(0, 0)
	m.table = buildTable(nil)
	m.reload()
	return m
}

func (m *Model) reload() {
	records, err := m.store.ListSessions(context.Background(), m.cfg)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load sessions: %v", err)
		return
	}
	m.errMsg = ""
	m.records = records
	m.table = buildTable(records)
	m.refreshOverview()
}

func (m *Model) refreshOverview() {
	var buf bytes.Buffer
	if err := stats.RenderSummary(&buf, m.records); err != nil {
		m.errMsg = fmt.Sprintf("failed to render summary: %v", err)
		return
	}
	window := m.cfg.CurveWindow
	if window <= 0 {
		window = 1
	}
	curveWidth := m.width - 20
	if curveWidth <= 0 {
		curveWidth = 60
	}
	if err := stats.RenderCurves(&buf, m.records, window, curveWidth); err != nil {
		m.errMsg = fmt.Sprintf("failed to render curves: %v", err)
		return
	}
	m.viewport.SetContent(buf.String())
}

func buildTable(records []model.SessionRecord) table.Model {
	columns := []table.Column{
		{Title: "Ended", Width: 16},
		{Title: "Text", Width: 14},
		{Title: "WPM", Width: 7},
		{Title: "Accuracy", Width: 9},
		{Title: "Errors", Width: 7},
		{Title: "Unfixed", Width: 8},
	}
	rows := make([]table.Row, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		wpm, acc := stats.RecordMetrics(rec)
		rows = append(rows, table.Row{
			rec.EndedAt.Format("2006-01-02 15:04"),
			rec.Text,
			fmt.Sprintf("%.1f", wpm),
			fmt.Sprintf("%.2f%%", acc),
			fmt.Sprintf("%d", rec.TotalErrors),
			fmt.Sprintf("%d", rec.ErrorsLeft),
		})
	}
	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
	)
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
		contentHeight := m.height - 4
		if contentHeight < 1 {
			contentHeight = 1
		}
		m.viewport.Width = m.width
		m.viewport.Height = contentHeight
		m.table.SetHeight(contentHeight)
		m.refreshOverview()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "right":
			m.activeTab = (m.activeTab + 1) % len(m.tabs)
			return m, nil
		case "left":
			m.activeTab = (m.activeTab + len(m.tabs) - 1) % len(m.tabs)
			return m, nil
		case "r":
			m.reload()
			return m, nil
		}
	}
	var cmd tea.Cmd
	switch m.activeTab {
	case tabOverview:
		m.viewport, cmd = m.viewport.Update(msg)
	case tabSessions:
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	nav := m.renderNav()
	if m.errMsg != "" {
		return nav + "\n" + errorStyle.Render(m.errMsg)
	}
	var content string
	switch m.activeTab {
	case tabOverview:
		content = m.viewport.View()
	case tabSessions:
		content = m.table.View()
	}
	hint := headerStyle.Render("tab switch · r reload · q quit")
	return nav + "\n" + content + "\n" + hint
}

func (m *Model) renderNav() string {
	items := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			items = append(items, activeNavStyle.Render(tab))
		} else {
			items = append(items, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}
