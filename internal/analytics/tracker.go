package analytics

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/vovakirdan/arcade-portal/internal/storage"
)

const (
	DefaultPrefix        = "arcade"
	DefaultRetentionDays = 30
)

// Tracker records visits and sessions into a KV store.
//
// A Tracker is safe for concurrent use inside one process: every
// read-modify-write of the stats blob is serialized. The session slot holds a
// single session, and a new visit replaces whatever session was open.
type Tracker struct {
	mu        sync.Mutex
	kv        storage.KV
	now       func() time.Time
	logger    *log.Logger
	prefix    string
	retention int
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger for warnings about discarded state.
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(t *Tracker) {
		if prefix != "" {
			t.prefix = prefix
		}
	}
}

// WithRetentionDays sets how many days of daily visit counts are kept.
func WithRetentionDays(days int) Option {
	return func(t *Tracker) {
		if days > 0 {
			t.retention = days
		}
	}
}

// New creates a Tracker over kv.
func New(kv storage.KV, opts ...Option) *Tracker {
	t := &Tracker{
		kv:        kv,
		now:       time.Now,
		logger:    log.New(io.Discard),
		prefix:    DefaultPrefix,
		retention: DefaultRetentionDays,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) statsKey() string   { return t.prefix + ":game-stats" }
func (t *Tracker) sessionKey() string { return t.prefix + ":current-session" }
func (t *Tracker) globalKey() string  { return t.prefix + ":global-stats" }

// RecordVisit counts a visit to gameID and opens a new session for it in
// the default slot.
func (t *Tracker) RecordVisit(ctx context.Context, gameID string) error {
	return t.recordVisit(ctx, "", gameID)
}

func (t *Tracker) recordVisit(ctx context.Context, slot, gameID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	all, err := t.loadStats(ctx)
	if err != nil {
		return err
	}

	s := all[gameID]
	if s.DailyVisits == nil {
		s.DailyVisits = make(map[string]int)
	}
	s.VisitCount++
	s.DailyVisits[DayKey(now)]++
	s.LastVisited = now
	s.prune(now, t.retention)
	s.refresh(now)
	all[gameID] = s

	if err := t.saveStats(ctx, all); err != nil {
		return err
	}

	switch prev, ok, err := t.loadSlot(ctx, slot); {
	case err != nil:
		t.logger.Warn("read open session failed, replacing it", "slot", slot, "game", gameID, "err", err)
	case ok:
		t.logger.Warn("discarding open session", "slot", slot,
			"session", prev.ID, "game", prev.GameID, "started", prev.StartTime)
	}

	session := Session{ID: uuid.NewString(), GameID: gameID, StartTime: now}
	if err := t.saveSlot(ctx, slot, session); err != nil {
		return err
	}

	return t.saveGlobal(ctx, all, now)
}

// EndSession closes the open session for gameID and returns its length in
// whole seconds. With no open session, or one for another game, it returns 0
// and changes nothing.
func (t *Tracker) EndSession(ctx context.Context, gameID string) (int64, error) {
	return t.endSession(ctx, "", gameID)
}

func (t *Tracker) endSession(ctx context.Context, slot, gameID string) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	session, ok, err := t.loadSlot(ctx, slot)
	if err != nil || !ok || session.GameID != gameID {
		return 0, err
	}

	now := t.now()
	elapsed := int64(now.Sub(session.StartTime) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}

	all, err := t.loadStats(ctx)
	if err != nil {
		return 0, err
	}
	s := all[gameID]
	if s.DailyVisits == nil {
		s.DailyVisits = make(map[string]int)
	}
	s.TotalPlayTime += elapsed
	s.prune(now, t.retention)
	s.refresh(now)
	all[gameID] = s

	if err := t.saveStats(ctx, all); err != nil {
		return 0, err
	}
	if err := t.clearSlot(ctx, slot); err != nil {
		return 0, err
	}

	session.EndTime = &now
	session.Duration = elapsed
	t.logger.Debug("session ended", "slot", slot, "session", session.ID, "game", gameID, "seconds", elapsed)

	if err := t.saveGlobal(ctx, all, now); err != nil {
		return 0, err
	}
	return elapsed, nil
}

// Stats returns the stats for gameID. Unvisited games get a zero record.
func (t *Tracker) Stats(ctx context.Context, gameID string) (GameStats, error) {
	all, err := t.AllStats(ctx)
	if err != nil {
		return GameStats{}, err
	}
	s, ok := all[gameID]
	if !ok {
		return GameStats{DailyVisits: map[string]int{}}, nil
	}
	return s, nil
}

// AllStats returns every known game's stats with derived fields refreshed.
func (t *Tracker) AllStats(ctx context.Context) (map[string]GameStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	all, err := t.loadStats(ctx)
	if err != nil {
		return nil, err
	}
	now := t.now()
	for id, s := range all {
		s.refresh(now)
		all[id] = s
	}
	return all, nil
}

// Global returns the cached rollup, rebuilding it from the stats blob when
// the cache is missing or unreadable.
func (t *Tracker) Global(ctx context.Context) (GlobalStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var g GlobalStats
	ok, err := t.getJSON(ctx, t.globalKey(), &g)
	if err != nil {
		return GlobalStats{}, err
	}
	if ok {
		return g, nil
	}

	all, err := t.loadStats(ctx)
	if err != nil {
		return GlobalStats{}, err
	}
	return rollup(all, t.now()), nil
}

// ActiveSession returns the open session, if any.
func (t *Tracker) ActiveSession(ctx context.Context) (Session, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loadSession(ctx)
}

// DiscardSession drops the open session without crediting play time.
// Used at startup for sessions orphaned by a crashed process.
func (t *Tracker) DiscardSession(ctx context.Context) (Session, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	session, ok, err := t.loadSession(ctx)
	if err != nil || !ok {
		return session, ok, err
	}
	if err := t.kv.Delete(ctx, t.sessionKey()); err != nil {
		return Session{}, false, fmt.Errorf("analytics: clear session: %w", err)
	}
	return session, true, nil
}

// Reset deletes all analytics state.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, key := range []string{t.statsKey(), t.sessionKey(), t.playersKey(), t.globalKey()} {
		if err := t.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("analytics: reset %s: %w", key, err)
		}
	}
	return nil
}

func (t *Tracker) loadStats(ctx context.Context) (map[string]GameStats, error) {
	data, ok, err := t.kv.Get(ctx, t.statsKey())
	if err != nil {
		return nil, fmt.Errorf("analytics: load stats: %w", err)
	}
	if !ok {
		return make(map[string]GameStats), nil
	}

	all, err := DecodeStats(data)
	if err != nil {
		t.logger.Warn("stats unreadable, starting fresh", "key", t.statsKey(), "err", err)
		return make(map[string]GameStats), nil
	}
	return all, nil
}

func (t *Tracker) saveStats(ctx context.Context, all map[string]GameStats) error {
	data, err := EncodeStats(all)
	if err != nil {
		return fmt.Errorf("analytics: encode stats: %w", err)
	}
	if err := t.kv.Set(ctx, t.statsKey(), data); err != nil {
		return fmt.Errorf("analytics: save stats: %w", err)
	}
	return nil
}

// loadSession discards an unreadable session blob.
func (t *Tracker) loadSession(ctx context.Context) (Session, bool, error) {
	data, ok, err := t.kv.Get(ctx, t.sessionKey())
	if err != nil {
		return Session{}, false, fmt.Errorf("analytics: load session: %w", err)
	}
	if !ok {
		return Session{}, false, nil
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil || s.GameID == "" {
		t.logger.Warn("session unreadable, discarding", "key", t.sessionKey(), "err", err)
		if err := t.kv.Delete(ctx, t.sessionKey()); err != nil {
			return Session{}, false, fmt.Errorf("analytics: clear session: %w", err)
		}
		return Session{}, false, nil
	}
	return s, true, nil
}

func (t *Tracker) saveGlobal(ctx context.Context, all map[string]GameStats, now time.Time) error {
	return t.setJSON(ctx, t.globalKey(), rollup(all, now))
}

// getJSON reports ok=false for missing or undecodable values.
func (t *Tracker) getJSON(ctx context.Context, key string, v any) (bool, error) {
	data, ok, err := t.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("analytics: load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.logger.Warn("value unreadable, ignoring", "key", key, "err", err)
		return false, nil
	}
	return true, nil
}

func (t *Tracker) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("analytics: encode %s: %w", key, err)
	}
	if err := t.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("analytics: save %s: %w", key, err)
	}
	return nil
}

func rollup(all map[string]GameStats, now time.Time) GlobalStats {
	g := GlobalStats{LastUpdated: now}
	fresh := make(map[string]GameStats, len(all))
	for id, s := range all {
		s.refresh(now)
		fresh[id] = s
		g.TotalVisits += s.VisitCount
		g.TotalPlayTime += s.TotalPlayTime
		if s.VisitCount > 0 {
			g.GamesPlayed++
		}
	}
	if ranked := byPopularity(fresh); len(ranked) > 0 {
		g.MostPopular = ranked[0]
	}
	return g
}

// byPopularity sorts ids by name, then stable-sorts by popularity descending.
func byPopularity(all map[string]GameStats) []string {
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	sort.SliceStable(ids, func(i, j int) bool {
		return all[ids[i]].PopularityScore > all[ids[j]].PopularityScore
	})
	return ids
}
