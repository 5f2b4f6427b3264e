package tui

import (
	"context"
	"testing"
	"time"

	"github.com/vovakirdan/arcade-portal/internal/analytics"
)

func TestLoadEntriesRanksByPopularity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := env.deps.Tracker.RecordVisit(ctx, "beta"); err != nil {
			t.Fatal(err)
		}
	}

	entries := LoadEntries(ctx, env.deps.Registry, env.deps.Tracker, env.deps.logger())
	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.ID
	}
	want := []string{"beta", "alpha", "later"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, expected %v", got, want)
		}
	}
	if entries[0].Summary.TodayVisits != 3 || entries[0].Summary.Trending != analytics.TrendingNew {
		t.Errorf("beta summary = %+v", entries[0].Summary)
	}
}

func TestLoadEntriesWithoutTracker(t *testing.T) {
	env := newTestEnv(t)
	entries := LoadEntries(context.Background(), env.deps.Registry, nil, env.deps.logger())
	if len(entries) != 3 || entries[0].ID != "alpha" {
		t.Errorf("entries = %+v, expected catalog order", entries)
	}
}

func TestMenuCursorBounds(t *testing.T) {
	env := newTestEnv(t)
	m := NewMenuModel(LoadEntries(context.Background(), env.deps.Registry, nil, env.deps.logger()), 80, 24)

	m, _ = m.Update(keyMsg("up"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected 0", m.cursor)
	}
	for i := 0; i < 10; i++ {
		m, _ = m.Update(keyMsg("down"))
	}
	if m.cursor != 2 {
		t.Errorf("cursor = %d, expected 2", m.cursor)
	}
}

func TestBuildReport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.deps.Tracker.RecordVisit(ctx, "alpha")
	env.now = env.now.Add(75 * time.Second)
	env.deps.Tracker.EndSession(ctx, "alpha")

	r, err := BuildReport(ctx, env.deps)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Games) != 3 {
		t.Fatalf("rows = %d, expected 3", len(r.Games))
	}
	if r.Games[0].GameID != "alpha" || r.Games[0].TotalPlayTime != "1m 15s" {
		t.Errorf("first row = %+v", r.Games[0])
	}
	if r.Games[1].TotalPlayTime != "0s" {
		t.Errorf("unvisited row play time = %q, expected 0s", r.Games[1].TotalPlayTime)
	}
	if r.Global.TotalVisits != 1 || r.Global.MostPopular != "alpha" {
		t.Errorf("global = %+v", r.Global)
	}
	if len(r.HotToday) != 1 || r.HotToday[0] != "alpha" {
		t.Errorf("HotToday = %v, expected [alpha]", r.HotToday)
	}
	if !contains(r.Footer(), "Hot today: alpha") {
		t.Errorf("footer = %q", r.Footer())
	}

	table := r.Table()
	for _, want := range []string{"Game", "ALPHA", "1m 15s"} {
		if !contains(table, want) {
			t.Errorf("table missing %q", want)
		}
	}
}
