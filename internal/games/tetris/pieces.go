package tetris

import (
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Kind identifies a tetromino.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
	kindCount
)

// Cell is a well coordinate, y grows downward.
type Cell struct {
	X, Y int
}

type shapeDef struct {
	size  int // bounding box edge
	cells []Cell
	color core.Color
	glyph rune
}

var shapeDefs = [kindCount]shapeDef{
	KindI: {4, []Cell{{0, 1}, {1, 1}, {2, 1}, {3, 1}}, core.ColorCyan, 'I'},
	KindO: {2, []Cell{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, core.ColorYellow, 'O'},
	KindT: {3, []Cell{{1, 0}, {0, 1}, {1, 1}, {2, 1}}, core.ColorMagenta, 'T'},
	KindS: {3, []Cell{{1, 0}, {2, 0}, {0, 1}, {1, 1}}, core.ColorGreen, 'S'},
	KindZ: {3, []Cell{{0, 0}, {1, 0}, {1, 1}, {2, 1}}, core.ColorRed, 'Z'},
	KindJ: {3, []Cell{{0, 0}, {0, 1}, {1, 1}, {2, 1}}, core.ColorBlue, 'J'},
	KindL: {3, []Cell{{2, 0}, {0, 1}, {1, 1}, {2, 1}}, core.ColorOrange, 'L'},
}

// rotations[k][r] are the cells of kind k after r clockwise turns.
var rotations = buildRotations()

func buildRotations() [kindCount][4][]Cell {
	var out [kindCount][4][]Cell
	for k, def := range shapeDefs {
		cells := def.cells
		for r := 0; r < 4; r++ {
			out[k][r] = cells
			next := make([]Cell, len(cells))
			for i, c := range cells {
				next[i] = Cell{X: def.size - 1 - c.Y, Y: c.X}
			}
			cells = next
		}
	}
	return out
}

// kicks are tried in order when a rotation collides.
var kicks = []Cell{{0, 0}, {-1, 0}, {1, 0}, {0, -1}, {-2, 0}, {2, 0}}

// Piece is the falling tetromino.
type Piece struct {
	Kind     Kind
	Rotation int
	X, Y     int // top-left of the bounding box
}

// Cells returns the occupied well cells.
func (p Piece) Cells() []Cell {
	base := rotations[p.Kind][p.Rotation]
	out := make([]Cell, len(base))
	for i, c := range base {
		out[i] = Cell{X: p.X + c.X, Y: p.Y + c.Y}
	}
	return out
}

// bag deals the seven kinds in shuffled rounds.
type bag struct {
	rng   *rand.Rand
	queue []Kind
}

func newBag(rng *rand.Rand) *bag {
	return &bag{rng: rng}
}

func (b *bag) next() Kind {
	if len(b.queue) == 0 {
		b.queue = make([]Kind, kindCount)
		for i := range b.queue {
			b.queue[i] = Kind(i)
		}
		b.rng.Shuffle(len(b.queue), func(i, j int) {
			b.queue[i], b.queue[j] = b.queue[j], b.queue[i]
		})
	}
	k := b.queue[0]
	b.queue = b.queue[1:]
	return k
}
