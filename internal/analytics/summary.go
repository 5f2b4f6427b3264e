package analytics

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Summary is the read-only projection shown on listings and in `stats`.
type Summary struct {
	GameID             string         `json:"gameId"`
	TodayVisits        int            `json:"todayVisits"`
	TotalVisits        int            `json:"totalVisits"`
	TotalPlayTime      string         `json:"totalPlayTime"`
	AverageSessionTime string         `json:"averageSessionTime"`
	PopularityScore    float64        `json:"popularityScore"`
	Trending           TrendingStatus `json:"trendingStatus"`
}

// Summary projects the stats of gameID. Unvisited games are zeroed and "new".
func (t *Tracker) Summary(ctx context.Context, gameID string) (Summary, error) {
	s, err := t.Stats(ctx, gameID)
	if err != nil {
		return Summary{}, err
	}
	return summarize(gameID, s, t.now()), nil
}

// Summaries projects every id in ids, in order.
func (t *Tracker) Summaries(ctx context.Context, ids []string) ([]Summary, error) {
	all, err := t.AllStats(ctx)
	if err != nil {
		return nil, err
	}
	now := t.now()
	out := make([]Summary, 0, len(ids))
	for _, id := range ids {
		out = append(out, summarize(id, all[id], now))
	}
	return out, nil
}

func summarize(gameID string, s GameStats, now time.Time) Summary {
	return Summary{
		GameID:             gameID,
		TodayVisits:        s.VisitCountToday,
		TotalVisits:        s.VisitCount,
		TotalPlayTime:      FormatDuration(float64(s.TotalPlayTime)),
		AverageSessionTime: FormatDuration(s.AverageSessionTime),
		PopularityScore:    s.PopularityScore,
		Trending:           Trending(s, now),
	}
}

// FormatDuration renders seconds as "45s", "3m 20s" or "2h 5m".
// Fractions are truncated; negative values render as "0s".
func FormatDuration(seconds float64) string {
	total := int64(math.Floor(seconds))
	if total < 0 {
		total = 0
	}
	switch {
	case total < 60:
		return fmt.Sprintf("%ds", total)
	case total < 3600:
		return fmt.Sprintf("%dm %ds", total/60, total%60)
	default:
		return fmt.Sprintf("%dh %dm", total/3600, (total%3600)/60)
	}
}
