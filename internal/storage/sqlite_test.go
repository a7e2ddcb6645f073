package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestSaveRunAssignsUUID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{
		GameID:     "marathon",
		Player:     "ana",
		Difficulty: "hard",
		Score:      4200,
		Lines:      23,
		Level:      3,
		Duration:   95 * time.Second,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("run ID %q is not a UUID: %v", id, err)
	}

	runs, err := store.TopRuns("marathon", 5)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	r := runs[0]
	if r.ID != id || r.Player != "ana" || r.Difficulty != "hard" {
		t.Errorf("unexpected run: %+v", r)
	}
	if r.Score != 4200 || r.Lines != 23 || r.Level != 3 || r.Duration != 95*time.Second {
		t.Errorf("stats not round-tripped: %+v", r)
	}
	if r.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}
}

func TestTopRunsOrderAndIsolation(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("marathon", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("sprint", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	runs, err := store.TopRuns("marathon", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for i, want := range []int{200, 100, 50} {
		if runs[i].Score != want {
			t.Errorf("runs[%d].Score = %d, want %d", i, runs[i].Score, want)
		}
	}

	limited, err := store.TopRuns("marathon", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limit ignored: got %d runs", len(limited))
	}
}

func TestFastestRunsRanksClearedByTime(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Player: "topped", Score: 90000, Lines: 30, Duration: 50 * time.Second},
		{Player: "slow", Score: 20000, Lines: 40, Duration: 150 * time.Second, Cleared: true},
		{Player: "fast", Score: 15000, Lines: 41, Duration: 95 * time.Second, Cleared: true},
		{Player: "early", Score: 4000, Lines: 8, Duration: 20 * time.Second},
	}
	for _, r := range runs {
		r.GameID = "sprint"
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.FastestRuns("sprint", 10)
	if err != nil {
		t.Fatalf("FastestRuns() failed: %v", err)
	}
	var order []string
	for _, r := range got {
		order = append(order, r.Player)
	}
	want := []string{"fast", "slow", "topped", "early"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
	if !got[0].Cleared || got[2].Cleared {
		t.Errorf("cleared flag not round-tripped: %+v", got)
	}

	stats, err := store.GetGameStats("sprint")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.BestTime != 95*time.Second {
		t.Errorf("best time = %v, want 1m35s", stats.BestTime)
	}
}

func TestOpenAddsClearedColumn(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")
	old, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	_, err = old.Exec(`CREATE TABLE runs (
		id TEXT PRIMARY KEY, game_id TEXT NOT NULL, player TEXT NOT NULL DEFAULT '',
		difficulty TEXT NOT NULL DEFAULT '', score INTEGER NOT NULL,
		lines INTEGER NOT NULL DEFAULT 0, level INTEGER NOT NULL DEFAULT 1,
		duration_ms INTEGER NOT NULL DEFAULT 0, created_at DATETIME DEFAULT CURRENT_TIMESTAMP)`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := old.Exec(`INSERT INTO runs (id, game_id, score) VALUES ('a', 'sprint', 10)`); err != nil {
		t.Fatal(err)
	}
	old.Close()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on an old database failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveRun(Run{GameID: "sprint", Score: 20, Cleared: true}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	runs, err := store.FastestRuns("sprint", 10)
	if err != nil {
		t.Fatalf("FastestRuns() failed: %v", err)
	}
	if len(runs) != 2 || !runs[0].Cleared || runs[1].ID != "a" {
		t.Errorf("unexpected runs after migration: %+v", runs)
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{10, 20, 30} {
		if _, err := store.SaveScore("marathon", score); err != nil {
			t.Fatal(err)
		}
	}
	runs, err := store.RecentRuns("marathon", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 || runs[0].Score != 30 {
		t.Errorf("newest run should come first: %+v", runs)
	}
}

func TestHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("marathon")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("expected 0 for empty table, got %d", high)
	}

	store.SaveScore("marathon", 100)
	store.SaveScore("marathon", 300)
	store.SaveScore("marathon", 200)

	high, err = store.HighScore("marathon")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("expected 300, got %d", high)
	}
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("marathon", 100)
	store.SaveScore("sprint", 200)

	if err := store.ClearScores("marathon"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	runs, _ := store.TopRuns("marathon", 10)
	if len(runs) != 0 {
		t.Errorf("expected no marathon runs, got %d", len(runs))
	}
	runs, _ = store.TopRuns("sprint", 10)
	if len(runs) != 1 {
		t.Errorf("other modes must be untouched, got %d sprint runs", len(runs))
	}
}

func TestGetGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("marathon")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for empty table: %+v", empty)
	}

	store.SaveRun(Run{GameID: "marathon", Score: 100, Lines: 4, Level: 1, Duration: time.Minute})
	store.SaveRun(Run{GameID: "marathon", Score: 300, Lines: 12, Level: 2, Duration: 2 * time.Minute})

	stats, err := store.GetGameStats("marathon")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("unexpected score stats: %+v", stats)
	}
	if stats.TotalLines != 16 || stats.BestLevel != 2 || stats.TotalTime != 3*time.Minute {
		t.Errorf("unexpected run stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("last played should be set")
	}
}
