package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/analytics"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// Entry is one row of the listing page.
type Entry struct {
	registry.Descriptor
	Summary analytics.Summary
}

// LoadEntries returns the catalog in listing order: games with stats by
// popularity, then the rest in catalog order. Analytics failures fall back
// to the catalog order with empty summaries.
func LoadEntries(ctx context.Context, reg *registry.Registry, tracker *analytics.Tracker, logger *log.Logger) []Entry {
	ids := reg.IDs()
	summaries := make(map[string]analytics.Summary, len(ids))

	if tracker != nil {
		if ranked, err := tracker.RankCatalog(ctx, ids); err != nil {
			logger.Warn("rank catalog failed", "err", err)
		} else {
			ids = ranked
		}
		if list, err := tracker.Summaries(ctx, ids); err != nil {
			logger.Warn("load summaries failed", "err", err)
		} else {
			for _, s := range list {
				summaries[s.GameID] = s
			}
		}
	}

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		d, ok := reg.Lookup(id)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Descriptor: d, Summary: summaries[id]})
	}
	return entries
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	badgeStyles    = map[analytics.TrendingStatus]lipgloss.Style{
		analytics.TrendingNew:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		analytics.TrendingHot:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		analytics.TrendingRising: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

// MenuModel is the listing page.
type MenuModel struct {
	entries   []Entry
	cursor    int
	width     int
	height    int
	status    string
	keyMapper *KeyMapper

	selected   string
	wantsStats bool
	quitting   bool
}

// NewMenuModel creates a listing over entries.
func NewMenuModel(entries []Entry, width, height int) MenuModel {
	return MenuModel{
		entries:   entries,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd { return nil }

// Update handles navigation. Selecting a coming soon entry only shows a
// notice.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case MenuActionStats:
			m.wantsStats = true
		case MenuActionSelect:
			if len(m.entries) == 0 {
				break
			}
			e := m.entries[m.cursor]
			if !e.Playable() {
				m.status = e.Title + " is coming soon"
				break
			}
			m.selected = e.ID
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

// View renders the listing.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("A R C A D E   P O R T A L"), m.width))
	b.WriteString("\n\n")

	for i, e := range m.entries {
		b.WriteString(centerText(m.renderEntry(i, e), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(centerText(m.status, m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(menuDimStyle.Render("↑/↓ navigate  enter play  tab stats  q quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) renderEntry(i int, e Entry) string {
	cursor := "  "
	title := fmt.Sprintf("%-18s", e.Title)
	if i == m.cursor {
		cursor = "> "
		title = menuCurStyle.Render(title)
	}

	tag := fmt.Sprintf("%-7s", e.Category)
	switch e.Status {
	case registry.StatusBeta:
		tag += " BETA"
	case registry.StatusComingSoon:
		tag += " SOON"
	default:
		tag += "     "
	}

	var extra string
	if e.Playable() {
		if badge := e.Summary.Trending.Badge(); badge != "" {
			extra = badgeStyles[e.Summary.Trending].Render(fmt.Sprintf("%-4s", badge))
		} else {
			extra = "    "
		}
		extra += fmt.Sprintf(" %3d today", e.Summary.TodayVisits)
	}

	line := cursor + title + " " + menuDimStyle.Render(tag) + "  " + extra
	if !e.Playable() {
		return menuDimStyle.Render(line)
	}
	return line
}

// Selected returns the chosen game id, or "".
func (m MenuModel) Selected() string { return m.selected }

// WantsStats reports whether the stats view was requested.
func (m MenuModel) WantsStats() bool { return m.wantsStats }

// IsQuitting reports whether the player quit.
func (m MenuModel) IsQuitting() bool { return m.quitting }

// centerText centers text within width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
