package registry

// Category groups games in the listing.
type Category string

const (
	CategoryArcade Category = "arcade"
	CategoryPuzzle Category = "puzzle"
	CategoryIdle   Category = "idle"
	CategoryRhythm Category = "rhythm"
	Category3D     Category = "3d"
)

// Status is the availability of a catalog entry.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusBeta       Status = "beta"
	StatusComingSoon Status = "coming_soon"
)

// Descriptor is the static catalog metadata for a game.
type Descriptor struct {
	ID       string
	Title    string
	Category Category
	Status   Status
}

// Playable reports whether the game can be launched.
func (d Descriptor) Playable() bool {
	return d.Status != StatusComingSoon
}
