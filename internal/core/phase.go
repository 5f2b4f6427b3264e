package core

// Phase is the lifecycle state shared by every game module.
//
//	Idle -> Running -> {Paused <-> Running} -> Over -> Running (restart)
//
// Failed is terminal: the module could not start and its screen is inert.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseOver
	PhaseFailed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseOver:
		return "over"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PhaseOf maps a game's reported state onto the lifecycle phase.
func PhaseOf(s GameState) Phase {
	switch {
	case s.GameOver:
		return PhaseOver
	case s.Paused:
		return PhasePaused
	default:
		return PhaseRunning
	}
}

// Active reports whether the module is mounted and accepting input.
func (p Phase) Active() bool {
	return p == PhaseRunning || p == PhasePaused || p == PhaseOver
}
