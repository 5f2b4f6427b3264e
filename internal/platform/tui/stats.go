package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-portal/internal/storage"
)

const topScores = 5

// StatsKeyMap defines the key bindings for the stats view.
type StatsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "prev game"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel shows per-game analytics with the top scores of the
// highlighted game.
type StatsModel struct {
	report Report
	err    error
	store  *storage.Store
	top    []storage.ScoreEntry
	table  table.Model
	help   help.Model
	keys   StatsKeyMap
	width  int
	height int

	back     bool
	quitting bool
}

// NewStatsModel loads a report and builds the table.
func NewStatsModel(ctx context.Context, deps Deps, width, height int) StatsModel {
	report, err := BuildReport(ctx, deps)
	m := StatsModel{
		report: report,
		err:    err,
		store:  deps.scoreStore(),
		help:   help.New(),
		keys:   DefaultStatsKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadTop()
	return m
}

func (m *StatsModel) createTable() table.Model {
	widths := []int{18, 6, 7, 10, 12, 11, 8, 8}
	columns := make([]table.Column, len(reportHeaders))
	for i, h := range reportHeaders {
		columns[i] = table.Column{Title: h, Width: widths[i]}
	}

	rows := make([]table.Row, len(m.report.Games))
	for i, g := range m.report.Games {
		rows[i] = g.cells()
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-topScores-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// loadTop reads the best scores of the highlighted game.
func (m *StatsModel) loadTop() {
	m.top = nil
	i := m.table.Cursor()
	if m.store == nil || i < 0 || i >= len(m.report.Games) {
		return
	}
	if top, err := m.store.TopScores(m.report.Games[i].GameID, topScores); err == nil {
		m.top = top
	}
}

// Init implements tea.Model.
func (m StatsModel) Init() tea.Cmd { return nil }

// Update handles scrolling and leaving.
func (m StatsModel) Update(msg tea.Msg) (StatsModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, nil
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.loadTop()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats page.
func (m StatsModel) View() string {
	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("PORTAL STATS"), m.width))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(centerText("Stats unavailable: "+m.err.Error(), m.width))
		b.WriteString("\n")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(box.Render(m.table.View()))
	b.WriteString("\n")
	b.WriteString(dim.Render(m.report.Footer()))
	b.WriteString("\n\n")

	if i := m.table.Cursor(); i >= 0 && i < len(m.report.Games) {
		b.WriteString(titleStyle.Render("Top scores: " + m.report.Games[i].Title))
		b.WriteString("\n")
	}
	if len(m.top) == 0 {
		b.WriteString(dim.Italic(true).Render("  No scores recorded yet."))
		b.WriteString("\n")
	}
	for i, s := range m.top {
		b.WriteString(fmt.Sprintf("  #%d  %8d  %s\n", i+1, s.Score, s.CreatedAt.Format("Jan 02 15:04")))
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack reports whether the player returned to the listing.
func (m StatsModel) IsGoingBack() bool { return m.back }

// IsQuitting reports whether the player quit.
func (m StatsModel) IsQuitting() bool { return m.quitting }
