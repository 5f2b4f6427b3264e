// Package analytics turns visit and session events into per-game statistics,
// popularity scores and trending labels. State lives in a storage.KV as three
// JSON blobs: the per-game stats mapping, the single in-flight session and a
// cached global rollup.
package analytics

import (
	"time"

	json "github.com/goccy/go-json"
)

const dayLayout = "2006-01-02"

// Popularity weights. Product heuristics kept as-is.
const (
	weightVisits      = 0.3
	weightAvgMinutes  = 0.7
	weightTodayVisits = 0.1
)

// GameStats is the persisted record for one game.
// VisitCountToday, AverageSessionTime and PopularityScore are derived and
// refreshed on every read and write.
type GameStats struct {
	VisitCount         int            `json:"visitCount"`
	VisitCountToday    int            `json:"visitCountToday"`
	TotalPlayTime      int64          `json:"totalPlayTime"` // seconds
	AverageSessionTime float64        `json:"averageSessionTime"`
	PopularityScore    float64        `json:"popularityScore"`
	LastVisited        time.Time      `json:"lastVisited"`
	DailyVisits        map[string]int `json:"dailyVisits"`
}

// Session is the single in-flight play session.
type Session struct {
	ID        string     `json:"id"`
	GameID    string     `json:"gameId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Duration  int64      `json:"duration,omitempty"`
}

// GlobalStats is the cached rollup across all games.
type GlobalStats struct {
	TotalVisits   int       `json:"totalVisits"`
	TotalPlayTime int64     `json:"totalPlayTime"`
	GamesPlayed   int       `json:"gamesPlayed"`
	MostPopular   string    `json:"mostPopular,omitempty"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// Popularity is 0.3*visits + 0.7*(average minutes) + 0.1*today's visits.
func Popularity(visitCount int, averageSessionTime float64, visitCountToday int) float64 {
	return weightVisits*float64(visitCount) +
		weightAvgMinutes*(averageSessionTime/60) +
		weightTodayVisits*float64(visitCountToday)
}

// DayKey formats t as a dailyVisits key in t's location.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// refresh recomputes the derived fields for the day containing now.
func (s *GameStats) refresh(now time.Time) {
	s.VisitCountToday = s.DailyVisits[DayKey(now)]
	if s.VisitCount > 0 {
		s.AverageSessionTime = float64(s.TotalPlayTime) / float64(s.VisitCount)
	} else {
		s.AverageSessionTime = 0
	}
	s.PopularityScore = Popularity(s.VisitCount, s.AverageSessionTime, s.VisitCountToday)
}

// prune drops dailyVisits entries dated before now minus retentionDays.
// Keys that do not parse as dates are dropped too.
func (s *GameStats) prune(now time.Time, retentionDays int) {
	today, _ := time.ParseInLocation(dayLayout, DayKey(now), now.Location())
	cutoff := today.AddDate(0, 0, -retentionDays)

	for key := range s.DailyVisits {
		day, err := time.ParseInLocation(dayLayout, key, now.Location())
		if err != nil || day.Before(cutoff) {
			delete(s.DailyVisits, key)
		}
	}
}

func (s GameStats) visitsOn(day time.Time) int {
	return s.DailyVisits[DayKey(day)]
}

// EncodeStats serializes the stats mapping.
func EncodeStats(all map[string]GameStats) ([]byte, error) {
	return json.Marshal(all)
}

// DecodeStats parses a stats mapping. Nil maps are normalized to empty ones.
func DecodeStats(data []byte) (map[string]GameStats, error) {
	all := make(map[string]GameStats)
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	if all == nil {
		all = make(map[string]GameStats)
	}
	for id, s := range all {
		if s.DailyVisits == nil {
			s.DailyVisits = make(map[string]int)
			all[id] = s
		}
	}
	return all, nil
}
