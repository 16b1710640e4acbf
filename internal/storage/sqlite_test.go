package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/merge-arcade/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist")
}

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.arcade/scores.db")
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(home, ".arcade", "scores.db"))
	assert.NoError(t, err)
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 500, 50, 400, 200} {
		_, err := store.SaveScore("2048", score)
		require.NoError(t, err)
	}
	_, err := store.SaveScore("2048_3x3", 900)
	require.NoError(t, err)

	scores, err := store.TopScores("2048", 3)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, []int{500, 400, 200}, []int{scores[0].Score, scores[1].Score, scores[2].Score})
	assert.False(t, scores[0].CreatedAt.IsZero(), "created_at should be parsed")

	all, err := store.TopScores("2048", 0)
	require.NoError(t, err)
	assert.Len(t, all, 5, "limit 0 falls back to the default of 10")
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("2048")
	require.NoError(t, err)
	assert.Zero(t, high)

	store.SaveScore("2048", 1200)
	store.SaveScore("2048", 3600)
	store.SaveScore("2048", 800)

	high, err = store.HighScore("2048")
	require.NoError(t, err)
	assert.Equal(t, 3600, high)
}

func TestStoreResults(t *testing.T) {
	store := openTestStore(t)

	games := []core.GameResult{
		{Outcome: core.OutcomeLost, Score: 1024, MaxTile: 128, Moves: 90, BoardSize: 4},
		{Outcome: core.OutcomeWon, Score: 20480, MaxTile: 2048, Moves: 950, BoardSize: 4},
		{Outcome: core.OutcomeUnfinished, Score: 16, MaxTile: 8, Moves: 4, BoardSize: 4},
	}
	for _, g := range games {
		_, err := store.SaveResult("2048", g)
		require.NoError(t, err)
	}
	_, err := store.SaveResult("2048_6x6", core.GameResult{Outcome: core.OutcomeWon, Score: 1, MaxTile: 4096, BoardSize: 6})
	require.NoError(t, err)

	recent, err := store.RecentResults("2048", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, games[2], recent[0].GameResult, "newest result comes first")
	assert.Equal(t, games[1], recent[1].GameResult)

	stats, err := store.GetGameStats("2048")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.GamesCount)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 20480, stats.HighScore)
	assert.Equal(t, 2048, stats.BestTile)
	assert.False(t, stats.LastPlayed.IsZero())
}

func TestStoreStatsEmpty(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("2048")
	require.NoError(t, err)
	assert.Zero(t, stats.GamesCount)
	assert.True(t, stats.LastPlayed.IsZero())
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("2048", 100)
	store.SaveResult("2048", core.GameResult{Outcome: core.OutcomeLost, Score: 100})
	store.SaveScore("2048_3x3", 300)

	require.NoError(t, store.ClearScores("2048"))

	scores, err := store.TopScores("2048", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)

	results, err := store.RecentResults("2048", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	other, err := store.TopScores("2048_3x3", 10)
	require.NoError(t, err)
	assert.Len(t, other, 1, "other variants keep their scores")
}

func TestStoreReopenKeepsDataAndVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")

	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.SaveScore("2048", 256)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	var version int
	require.NoError(t, store.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, len(migrations), version)

	high, err := store.HighScore("2048")
	require.NoError(t, err)
	assert.Equal(t, 256, high, "reopening must not rerun destructive steps")
}
