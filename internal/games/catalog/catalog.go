// Package catalog wires every game package into a registry.
package catalog

import (
	"github.com/vovakirdan/arcade-portal/internal/games/breakout"
	"github.com/vovakirdan/arcade-portal/internal/games/clicker"
	"github.com/vovakirdan/arcade-portal/internal/games/collector"
	"github.com/vovakirdan/arcade-portal/internal/games/rhythm"
	"github.com/vovakirdan/arcade-portal/internal/games/snake"
	"github.com/vovakirdan/arcade-portal/internal/games/tetris"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// New returns the portal catalog in its static listing order.
func New() *registry.Registry {
	r := registry.New()

	r.Register(registry.Descriptor{ID: "snake", Title: "Snake", Category: registry.CategoryArcade},
		func() registry.Game { return snake.New() })
	r.Register(registry.Descriptor{ID: "tetris", Title: "Tetris", Category: registry.CategoryPuzzle},
		func() registry.Game { return tetris.New() })
	r.Register(registry.Descriptor{ID: "breakout", Title: "Breakout", Category: registry.CategoryArcade},
		func() registry.Game { return breakout.New() })
	r.Register(registry.Descriptor{ID: "clicker", Title: "Cookie Clicker", Category: registry.CategoryIdle},
		func() registry.Game { return clicker.New() })
	r.Register(registry.Descriptor{ID: "rhythm", Title: "Rhythm", Category: registry.CategoryRhythm},
		func() registry.Game { return rhythm.New() })
	r.Register(registry.Descriptor{ID: "collector", Title: "Orb Collector 3D", Category: registry.Category3D, Status: registry.StatusBeta},
		func() registry.Game { return collector.New() })
	r.Register(registry.Descriptor{ID: "hexmerge", Title: "Hex Merge", Category: registry.CategoryPuzzle, Status: registry.StatusComingSoon}, nil)

	return r
}
