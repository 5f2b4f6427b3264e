package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/arcade-portal/internal/analytics"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// StatsRow is one game in the stats view and the stats command.
type StatsRow struct {
	analytics.Summary
	Title     string          `json:"title"`
	Status    registry.Status `json:"status"`
	HighScore int             `json:"highScore"`
}

// Report is the full analytics snapshot.
type Report struct {
	Games  []StatsRow            `json:"games"`
	Global analytics.GlobalStats `json:"global"`
	// HotToday holds up to three ids with the most visits today.
	HotToday []string `json:"hotToday"`
}

const hotTodayLimit = 3

// BuildReport collects summaries in listing order plus high scores.
func BuildReport(ctx context.Context, deps Deps) (Report, error) {
	var r Report
	logger := deps.logger()

	if deps.Tracker != nil {
		g, err := deps.Tracker.Global(ctx)
		if err != nil {
			return r, fmt.Errorf("tui: load global stats: %w", err)
		}
		r.Global = g

		hot, err := deps.Tracker.TodayPopular(ctx, hotTodayLimit)
		if err != nil {
			logger.Warn("today popular lookup failed", "err", err)
		}
		r.HotToday = hot
	}

	store := deps.scoreStore()
	for _, e := range LoadEntries(ctx, deps.Registry, deps.Tracker, logger) {
		row := StatsRow{Summary: e.Summary, Title: e.Title, Status: e.Status}
		row.GameID = e.ID
		if row.TotalPlayTime == "" {
			row.TotalPlayTime = analytics.FormatDuration(0)
			row.AverageSessionTime = analytics.FormatDuration(0)
		}
		if store != nil {
			best, err := store.HighScore(e.ID)
			if err != nil {
				logger.Warn("high score lookup failed", "game", e.ID, "err", err)
			}
			row.HighScore = best
		}
		r.Games = append(r.Games, row)
	}
	return r, nil
}

var reportHeaders = []string{"Game", "Today", "Visits", "Play time", "Avg session", "Popularity", "Trend", "Best"}

func (r StatsRow) cells() []string {
	return []string{
		r.Title,
		strconv.Itoa(r.TodayVisits),
		strconv.Itoa(r.TotalVisits),
		r.TotalPlayTime,
		r.AverageSessionTime,
		fmt.Sprintf("%.1f", r.PopularityScore),
		string(r.Trending),
		strconv.Itoa(r.HighScore),
	}
}

// Table renders the report as a bordered text table.
func (r Report) Table() string {
	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(reportHeaders...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == ltable.HeaderRow {
				return s.Bold(true).Foreground(lipgloss.Color("229"))
			}
			return s
		})
	for _, g := range r.Games {
		t.Row(g.cells()...)
	}
	return t.String()
}

// Footer summarizes the global rollup in one line.
func (r Report) Footer() string {
	popular := r.Global.MostPopular
	if popular == "" {
		popular = "-"
	}
	line := fmt.Sprintf("Total visits: %d  Total play time: %s  Games played: %d  Most popular: %s",
		r.Global.TotalVisits, analytics.FormatDuration(float64(r.Global.TotalPlayTime)),
		r.Global.GamesPlayed, popular)
	if len(r.HotToday) > 0 {
		line += "  Hot today: " + strings.Join(r.HotToday, ", ")
	}
	return line
}
