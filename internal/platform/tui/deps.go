package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/analytics"
	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/host"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

// Deps are the services shared by every session of the process.
type Deps struct {
	Registry *registry.Registry
	Tracker  *analytics.Tracker // nil disables visit tracking
	Backend  *storage.Backend   // nil disables score saving
	Config   config.Portal
	Seed     int64 // zero seeds every run from the clock
	Logger   *log.Logger
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}

// newHost builds the game host for one player. SSH players record into a
// session slot named after their user; local play uses the default slot.
func (d Deps) newHost(user string) *host.Host {
	var rec host.Recorder
	if d.Tracker != nil {
		rec = d.Tracker.Slot(user)
	}
	var scores host.ScoreSink
	if d.Backend != nil {
		scores = d.Backend
	}
	return host.New(d.Registry, rec, scores, host.Options{
		Loop:   d.Config.Loop,
		Games:  d.Config.Games,
		Seed:   d.Seed,
		Logger: d.logger(),
	})
}

func (d Deps) scoreStore() *storage.Store {
	if d.Backend == nil {
		return nil
	}
	return d.Backend.Scores
}
