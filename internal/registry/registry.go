// Package registry maps game identifiers to descriptors and factories.
// The platform resolves ids through a Registry instead of importing games
// directly, and unknown ids are rejected here with ErrUnknownGame.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
)

var (
	// ErrUnknownGame is returned when an id is not in the catalog.
	ErrUnknownGame = errors.New("unknown game")
	// ErrUnavailable is returned for catalog entries that cannot be played yet.
	ErrUnavailable = errors.New("game not available")
)

// Game is the contract every arcade game implements.
// Games hold pure simulation logic; timing, input mapping and display belong
// to the platform.
type Game interface {
	// ID returns the catalog identifier, e.g. "snake".
	ID() string

	// Title returns the display name.
	Title() string

	// Reset initializes or restarts the game for the given screen and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns score, game over and pause flags.
	State() core.GameState
}

// Checker is implemented by games with environment requirements.
// A non-nil error leaves the game unmounted behind a static message.
type Checker interface {
	Check(cfg core.RuntimeConfig) error
}

// Configurable is implemented by games tuned from the portal config.
type Configurable interface {
	Configure(cfg config.Games)
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	desc    Descriptor
	factory Factory
}

// Registry is a catalog of games in declaration order.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	order   []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a game to the catalog.
// Panics on an empty or duplicate id, or a playable entry without a factory.
func (r *Registry) Register(d Descriptor, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == "" {
		panic("registry: empty game id")
	}
	if _, exists := r.entries[d.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", d.ID))
	}
	if d.Status == "" {
		d.Status = StatusAvailable
	}
	if f == nil && d.Playable() {
		panic(fmt.Sprintf("registry: game %q has no factory", d.ID))
	}

	r.entries[d.ID] = entry{desc: d, factory: f}
	r.order = append(r.order, d.ID)
}

// List returns all descriptors in declaration order.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.entries[id].desc)
	}
	return result
}

// IDs returns all game ids in declaration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Lookup returns the descriptor for id.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	return e.desc, ok
}

// Exists reports whether id is in the catalog.
func (r *Registry) Exists(id string) bool {
	_, ok := r.Lookup(id)
	return ok
}

// Create instantiates the game registered under id.
func (r *Registry) Create(id string) (Game, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownGame, id)
	}
	if !e.desc.Playable() {
		return nil, fmt.Errorf("registry: %q: %w", id, ErrUnavailable)
	}
	return e.factory(), nil
}
