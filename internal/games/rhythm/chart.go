package rhythm

import "math/rand"

// Lane is one of the four note columns.
type Lane int

const (
	LaneLeft Lane = iota
	LaneDown
	LaneUp
	LaneRight
	laneCount
)

var laneGlyphs = [laneCount]rune{'◀', '▼', '▲', '▶'}

// Judgement is how well a note was hit.
type Judgement int

const (
	Pending Judgement = iota
	Perfect
	Good
	Miss
)

func (j Judgement) String() string {
	switch j {
	case Perfect:
		return "PERFECT"
	case Good:
		return "GOOD"
	case Miss:
		return "MISS"
	default:
		return ""
	}
}

// Note is a chart entry due at HitTick.
type Note struct {
	Lane    Lane
	HitTick int
	Result  Judgement
}

// buildChart lays out n notes one beat apart, starting after lead ticks.
// Every eighth beat is doubled on the half beat so the chart has some
// syncopation. Lanes are drawn from rng, never repeating more than twice.
func buildChart(rng *rand.Rand, n, beat, lead int) []Note {
	notes := make([]Note, 0, n)
	tick := lead
	prev, run := Lane(-1), 0
	for len(notes) < n {
		lane := Lane(rng.Intn(int(laneCount)))
		if lane == prev && run >= 2 {
			lane = (lane + 1) % laneCount
		}
		if lane == prev {
			run++
		} else {
			prev, run = lane, 1
		}
		notes = append(notes, Note{Lane: lane, HitTick: tick})

		if len(notes)%8 == 7 && len(notes) < n {
			notes = append(notes, Note{Lane: (lane + 2) % laneCount, HitTick: tick + beat/2})
			prev, run = (lane+2)%laneCount, 1
		}
		tick += beat
	}
	return notes
}
