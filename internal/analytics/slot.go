package analytics

import (
	"context"
	"fmt"
	"sort"
)

// Slot is a named session slot. Local play uses the default slot, stored
// under <prefix>:current-session. Each SSH player gets a slot of their own
// so one player's visit never replaces another player's open session.
// Named slots share one mapping under <prefix>:player-sessions.
type Slot struct {
	t    *Tracker
	name string
}

// Slot returns the session slot for name. An empty name is the default slot.
func (t *Tracker) Slot(name string) *Slot {
	return &Slot{t: t, name: name}
}

// Name returns the slot name.
func (s *Slot) Name() string { return s.name }

// RecordVisit counts a visit and opens a session in this slot.
func (s *Slot) RecordVisit(ctx context.Context, gameID string) error {
	return s.t.recordVisit(ctx, s.name, gameID)
}

// EndSession closes this slot's session for gameID. See Tracker.EndSession.
func (s *Slot) EndSession(ctx context.Context, gameID string) (int64, error) {
	return s.t.endSession(ctx, s.name, gameID)
}

// ActiveSession returns the session open in this slot, if any.
func (s *Slot) ActiveSession(ctx context.Context) (Session, bool, error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	return s.t.loadSlot(ctx, s.name)
}

// DiscardPlayerSessions drops every named slot's session without crediting
// play time, in slot name order. Used when a server starts after a crash.
func (t *Tracker) DiscardPlayerSessions(ctx context.Context) ([]Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	players, err := t.loadPlayers(ctx)
	if err != nil || len(players) == 0 {
		return nil, err
	}
	if err := t.kv.Delete(ctx, t.playersKey()); err != nil {
		return nil, fmt.Errorf("analytics: clear player sessions: %w", err)
	}

	names := make([]string, 0, len(players))
	for name := range players {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Session, 0, len(names))
	for _, name := range names {
		out = append(out, players[name])
	}
	return out, nil
}

func (t *Tracker) playersKey() string { return t.prefix + ":player-sessions" }

func (t *Tracker) loadSlot(ctx context.Context, name string) (Session, bool, error) {
	if name == "" {
		return t.loadSession(ctx)
	}
	players, err := t.loadPlayers(ctx)
	if err != nil {
		return Session{}, false, err
	}
	s, ok := players[name]
	return s, ok, nil
}

func (t *Tracker) saveSlot(ctx context.Context, name string, s Session) error {
	if name == "" {
		return t.setJSON(ctx, t.sessionKey(), s)
	}
	players, err := t.loadPlayers(ctx)
	if err != nil {
		return err
	}
	players[name] = s
	return t.setJSON(ctx, t.playersKey(), players)
}

func (t *Tracker) clearSlot(ctx context.Context, name string) error {
	if name == "" {
		if err := t.kv.Delete(ctx, t.sessionKey()); err != nil {
			return fmt.Errorf("analytics: clear session: %w", err)
		}
		return nil
	}

	players, err := t.loadPlayers(ctx)
	if err != nil {
		return err
	}
	delete(players, name)
	if len(players) > 0 {
		return t.setJSON(ctx, t.playersKey(), players)
	}
	if err := t.kv.Delete(ctx, t.playersKey()); err != nil {
		return fmt.Errorf("analytics: clear player sessions: %w", err)
	}
	return nil
}

// loadPlayers drops an unreadable mapping and entries without a game.
func (t *Tracker) loadPlayers(ctx context.Context) (map[string]Session, error) {
	var players map[string]Session
	ok, err := t.getJSON(ctx, t.playersKey(), &players)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Session, len(players))
	if !ok {
		return out, nil
	}
	for name, s := range players {
		if s.GameID != "" {
			out[name] = s
		}
	}
	return out, nil
}
