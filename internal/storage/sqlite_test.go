package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestStoreKV(t *testing.T) {
	testKV(t, openTestStore(t))
}

func TestStoreKVPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, "arcade:game-stats", []byte(`{"snake":{}}`)); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "arcade:game-stats")
	if err != nil || !ok || string(v) != `{"snake":{}}` {
		t.Errorf("Get after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestStoreSaveAndTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("snake", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("tetris", 500); err != nil {
		t.Fatal(err)
	}

	scores, err := store.TopScores("snake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("scores not sorted descending: %+v", scores)
	}

	limited, err := store.TopScores("snake", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 scores with limit, got %d", len(limited))
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	if hs, err := store.HighScore("snake"); err != nil || hs != 0 {
		t.Errorf("HighScore on empty table = %d, %v; expected 0", hs, err)
	}

	store.SaveScore("snake", 30)
	store.SaveScore("snake", 70)

	if hs, _ := store.HighScore("snake"); hs != 70 {
		t.Errorf("HighScore = %d, expected 70", hs)
	}

	if err := store.ClearScores("snake"); err != nil {
		t.Fatal(err)
	}
	if hs, _ := store.HighScore("snake"); hs != 0 {
		t.Errorf("HighScore after clear = %d, expected 0", hs)
	}
}

func TestStoreSummary(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Summary("breakout")
	if err != nil {
		t.Fatal(err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty summary = %+v", empty)
	}

	store.SaveScore("breakout", 10)
	store.SaveScore("breakout", 30)

	sum, err := store.Summary("breakout")
	if err != nil {
		t.Fatal(err)
	}
	if sum.GamesCount != 2 || sum.HighScore != 30 || sum.AvgScore != 20 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}
