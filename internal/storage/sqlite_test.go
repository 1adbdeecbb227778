package storage

import (
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

func mustSave(t *testing.T, store *Store, rec Record) string {
	t.Helper()
	id, err := store.SaveGame(rec)
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsGames(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	mustSave(t, store, Record{Score: 3, Length: 6, Width: 10, Height: 10})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	games, err := store.AllGames()
	if err != nil {
		t.Fatalf("AllGames() failed: %v", err)
	}
	if len(games) != 1 {
		t.Errorf("Expected 1 game after reopen, got %d", len(games))
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	rec := Record{
		Player:     "alice",
		Score:      12,
		Length:     15,
		Moves:      340,
		Width:      30,
		Height:     20,
		Won:        true,
		Difficulty: "hard",
		Duration:   95 * time.Second,
	}
	id := mustSave(t, store, rec)

	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveGame() returned non-UUID ID %q: %v", id, err)
	}

	got, err := store.GameByID(id)
	if err != nil {
		t.Fatalf("GameByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("GameByID() returned nil for saved game")
	}

	rec.ID = id
	rec.CreatedAt = got.CreatedAt
	if *got != rec {
		t.Errorf("GameByID() = %+v, expected %+v", *got, rec)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}
}

func TestStoreSaveKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	id := mustSave(t, store, Record{ID: "session-1", Score: 1, Length: 4, Width: 5, Height: 5})
	if id != "session-1" {
		t.Errorf("SaveGame() = %q, expected given ID", id)
	}

	if _, err := store.SaveGame(Record{ID: "session-1"}); err == nil {
		t.Error("Expected duplicate ID to fail")
	}
}

func TestStoreGameByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.GameByID("missing")
	if err != nil {
		t.Fatalf("GameByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing game, got %+v", got)
	}
}

func TestStoreTopGamesOrdering(t *testing.T) {
	store := openTestStore(t)

	first := mustSave(t, store, Record{Score: 5, Length: 8})
	mustSave(t, store, Record{Score: 20, Length: 23})
	mustSave(t, store, Record{Score: 5, Length: 10})
	second := mustSave(t, store, Record{Score: 5, Length: 8})
	mustSave(t, store, Record{Score: 1, Length: 4})

	games, err := store.TopGames(10)
	if err != nil {
		t.Fatalf("TopGames() failed: %v", err)
	}

	wantScores := []int{20, 5, 5, 5, 1}
	if len(games) != len(wantScores) {
		t.Fatalf("Expected %d games, got %d", len(wantScores), len(games))
	}
	for i, want := range wantScores {
		if games[i].Score != want {
			t.Errorf("games[%d].Score = %d, expected %d", i, games[i].Score, want)
		}
	}

	// Equal score: longer snake first, then the earlier game.
	if games[1].Length != 10 {
		t.Errorf("games[1].Length = %d, expected 10", games[1].Length)
	}
	if games[2].ID != first || games[3].ID != second {
		t.Errorf("Equal games out of insertion order: %s, %s", games[2].ID, games[3].ID)
	}
}

func TestStoreTopGamesLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 15 {
		mustSave(t, store, Record{Score: i * 10, Length: 3 + i})
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"explicit limit", 5, 5},
		{"default limit", 0, 10},
		{"limit above count", 50, 15},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			games, err := store.TopGames(tc.limit)
			if err != nil {
				t.Fatalf("TopGames() failed: %v", err)
			}
			if len(games) != tc.want {
				t.Errorf("Expected %d games, got %d", tc.want, len(games))
			}
			if len(games) > 0 && games[0].Score != 140 {
				t.Errorf("Expected top score 140, got %d", games[0].Score)
			}
		})
	}
}

func TestStoreAllGames(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		mustSave(t, store, Record{Score: i})
	}

	games, err := store.AllGames()
	if err != nil {
		t.Fatalf("AllGames() failed: %v", err)
	}

	if len(games) != 20 {
		t.Fatalf("Expected 20 games, got %d", len(games))
	}
	if games[0].Score != 19 {
		t.Errorf("Expected newest game first, got score %d", games[0].Score)
	}
}

func TestStorePlayerGames(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Record{Player: "alice", Score: 4})
	mustSave(t, store, Record{Player: "bob", Score: 9})
	mustSave(t, store, Record{Player: "alice", Score: 7})

	games, err := store.PlayerGames("alice", 10)
	if err != nil {
		t.Fatalf("PlayerGames() failed: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("Expected 2 games for alice, got %d", len(games))
	}
	if games[0].Score != 7 || games[1].Score != 4 {
		t.Errorf("Unexpected order: %d, %d", games[0].Score, games[1].Score)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty store, got %d", high)
	}

	mustSave(t, store, Record{Score: 100})
	mustSave(t, store, Record{Score: 250})
	mustSave(t, store, Record{Score: 150})

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 250 {
		t.Errorf("Expected high score 250, got %d", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed on empty store: %v", err)
	}
	if stats.Games != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Unexpected stats for empty store: %+v", stats)
	}

	mustSave(t, store, Record{Score: 2, Length: 5, Moves: 100})
	mustSave(t, store, Record{Score: 6, Length: 9, Moves: 300, Won: true})
	mustSave(t, store, Record{Score: 4, Length: 7, Moves: 200})

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}

	if stats.Games != 3 {
		t.Errorf("Games = %d, expected 3", stats.Games)
	}
	if stats.Wins != 1 {
		t.Errorf("Wins = %d, expected 1", stats.Wins)
	}
	if stats.HighScore != 6 {
		t.Errorf("HighScore = %d, expected 6", stats.HighScore)
	}
	if stats.AvgScore != 4 {
		t.Errorf("AvgScore = %v, expected 4", stats.AvgScore)
	}
	if stats.MaxLength != 9 {
		t.Errorf("MaxLength = %d, expected 9", stats.MaxLength)
	}
	if stats.TotalMoves != 600 {
		t.Errorf("TotalMoves = %d, expected 600", stats.TotalMoves)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not populated")
	}
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Record{Score: 100})
	mustSave(t, store, Record{Score: 200})

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	games, err := store.AllGames()
	if err != nil {
		t.Fatalf("AllGames() failed: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("Expected 0 games after clear, got %d", len(games))
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
