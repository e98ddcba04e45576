package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/board-runner/internal/board"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("runner", "ann", 42); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("runner")
	if err != nil || high != 42 {
		t.Errorf("HighScore() after reopen = %d, %v", high, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []struct {
		game   string
		player string
		score  int
	}{
		{"runner", "ann", 100},
		{"runner", "bob", 50},
		{"runner", "ann", 200},
		{"other", "bob", 500},
	} {
		if _, err := store.SaveScore(s.game, s.player, s.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("runner", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Player != "ann" || scores[2].Player != "bob" {
		t.Errorf("Players not stored: %v", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	other, err := store.TopScores("other", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 score for other game, got %d", len(other))
	}
}

func TestStoreAnonymousPlayer(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore("runner", "  ", 10); err != nil {
		t.Fatal(err)
	}
	scores, _ := store.TopScores("runner", 1)
	if len(scores) != 1 || scores[0].Player != AnonymousPlayer {
		t.Errorf("blank player should be stored as %q, got %v", AnonymousPlayer, scores)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", "p", (i+1)*100) //nolint:errcheck
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to 10
	all, _ := store.TopScores("test", 0)
	if len(all) != 5 {
		t.Errorf("Expected 5 scores with default limit, got %d", len(all))
	}
}

func TestStoreHighScoreAndPlayerBest(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("runner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("runner", "ann", 100) //nolint:errcheck
	store.SaveScore("runner", "bob", 300) //nolint:errcheck
	store.SaveScore("runner", "ann", 200) //nolint:errcheck

	high, _ = store.HighScore("runner")
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	best, err := store.PlayerBest("runner", "ann")
	if err != nil || best != 200 {
		t.Errorf("PlayerBest(ann) = %d, %v, expected 200", best, err)
	}
	if best, _ := store.PlayerBest("runner", "nobody"); best != 0 {
		t.Errorf("PlayerBest(nobody) = %d, expected 0", best)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("runner", "a", 100) //nolint:errcheck
	store.SaveScore("runner", "a", 200) //nolint:errcheck
	store.SaveScore("other", "a", 300)  //nolint:errcheck

	if err := store.ClearScores("runner"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	runnerScores, _ := store.TopScores("runner", 10)
	if len(runnerScores) != 0 {
		t.Errorf("Expected 0 runner scores after clear, got %d", len(runnerScores))
	}
	otherScores, _ := store.TopScores("other", 10)
	if len(otherScores) != 1 {
		t.Errorf("Other scores should not be affected by clearing runner")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("test", "p", i*10) //nolint:errcheck
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("runner")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for empty game: %+v", empty)
	}

	store.SaveScore("runner", "ann", 100) //nolint:errcheck
	store.SaveScore("runner", "bob", 300) //nolint:errcheck
	store.SaveScore("runner", "ann", 200) //nolint:errcheck

	stats, err := store.GetGameStats("runner")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Players != 2 || stats.HighScore != 300 || stats.TotalScore != 600 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %f, expected 200", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestPostsRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ts := time.Date(2024, 5, 1, 12, 0, 0, 123, time.UTC)

	op := board.Post{
		Number:     1,
		Timestamp:  ts,
		Text:       "Check out my Miata",
		IsOP:       true,
		ThreadName: board.DefaultThread,
		Image:      &board.Attachment{URL: "miata.png", Filename: "miata.png", Width: 500, Height: 575},
	}
	reply := board.Post{
		Number:    2,
		Timestamp: ts.Add(time.Minute),
		Text:      ">>1 nice",
		Video:     &board.Attachment{URL: "clip.webm"},
	}

	for _, p := range []board.Post{op, reply} {
		if _, err := store.SavePost(p); err != nil {
			t.Fatalf("SavePost() failed: %v", err)
		}
	}

	posts, err := store.LoadPosts()
	if err != nil {
		t.Fatalf("LoadPosts() failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("Expected 2 posts, got %d", len(posts))
	}

	got := posts[0]
	if got.Number != 1 || !got.IsOP || got.Text != op.Text || got.ThreadName != op.ThreadName {
		t.Errorf("OP not restored: %+v", got)
	}
	if !got.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, expected %v", got.Timestamp, ts)
	}
	if got.Image == nil || *got.Image != *op.Image {
		t.Errorf("Image = %+v, expected %+v", got.Image, op.Image)
	}
	if posts[1].Video == nil || posts[1].Video.URL != "clip.webm" || posts[1].Image != nil || posts[1].IsOP {
		t.Errorf("reply not restored: %+v", posts[1])
	}

	if _, err := store.SavePost(op); err == nil {
		t.Error("duplicate post number should be rejected")
	}

	if err := store.ClearPosts(); err != nil {
		t.Fatal(err)
	}
	if posts, _ := store.LoadPosts(); len(posts) != 0 {
		t.Error("ClearPosts should remove every post")
	}
}

func TestStoreBacksBoard(t *testing.T) {
	store := openTestStore(t)

	b, err := board.NewStore(board.WithPersister(store))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Publish("first"); err != nil {
		t.Fatal(err)
	}

	reopened, err := board.NewStore(board.WithPersister(store))
	if err != nil {
		t.Fatal(err)
	}
	all := reopened.All()
	if len(all) != 1 || all[0].Text != "first" || !all[0].IsOP {
		t.Errorf("board history not restored: %+v", all)
	}
}
