package analytics

import "time"

// TrendingStatus labels day-over-day visit momentum.
type TrendingStatus string

const (
	TrendingNew    TrendingStatus = "new"
	TrendingHot    TrendingStatus = "hot"
	TrendingRising TrendingStatus = "rising"
	TrendingStable TrendingStatus = "stable"
)

// newGameMaxVisits is the lifetime visit count at or below which a game is
// always "new", whatever its daily numbers.
const newGameMaxVisits = 5

// Classify applies the trending rules in order: new, hot (more than twice
// yesterday), rising (more than 1.2x yesterday), stable.
func Classify(visitCount, todayVisits, yesterdayVisits int) TrendingStatus {
	switch {
	case visitCount <= newGameMaxVisits:
		return TrendingNew
	case float64(todayVisits) > 2*float64(yesterdayVisits):
		return TrendingHot
	case float64(todayVisits) > 1.2*float64(yesterdayVisits):
		return TrendingRising
	default:
		return TrendingStable
	}
}

// Trending classifies s for the day containing now.
func Trending(s GameStats, now time.Time) TrendingStatus {
	return Classify(s.VisitCount, s.visitsOn(now), s.visitsOn(now.AddDate(0, 0, -1)))
}

// Badge is a short marker for listings.
func (t TrendingStatus) Badge() string {
	switch t {
	case TrendingNew:
		return "NEW"
	case TrendingHot:
		return "HOT"
	case TrendingRising:
		return "UP"
	default:
		return ""
	}
}
