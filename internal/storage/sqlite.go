// Package storage persists scores and finished game results in SQLite
// through the pure-Go modernc.org/sqlite driver.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vovakirdan/merge-arcade/internal/core"
)

const sqliteTime = "2006-01-02 15:04:05"

// migrations are applied in order; PRAGMA user_version records how many
// have run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);`,

	`CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		outcome TEXT NOT NULL,
		score INTEGER NOT NULL,
		max_tile INTEGER NOT NULL,
		moves INTEGER NOT NULL,
		board_size INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_results_recent ON results(game_id, created_at DESC);`,
}

// Store is the score database.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one row of the high-score table.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// ResultEntry is one finished game.
type ResultEntry struct {
	ID     int64
	GameID string
	core.GameResult
	CreatedAt time.Time
}

// GameStats aggregates the results of one board.
type GameStats struct {
	GameID     string
	GamesCount int
	Wins       int
	HighScore  int
	BestTile   int
	AvgScore   float64
	LastPlayed time.Time
}

// Open opens the database at path, creating parent directories and
// applying pending migrations. A leading ~ is expanded to the home
// directory.
func Open(path string) (*Store, error) {
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: expand home: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	// One writer keeps SQLite from returning SQLITE_BUSY to concurrent
	// SSH sessions.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	for i := version; i < len(migrations); i++ {
		if _, err := s.db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// parseTime reads a DATETIME column, which the driver may return as a
// time.Time or as text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func (s *Store) insert(what, query string, args ...any) (int64, error) {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("storage: save %s: %w", what, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: save %s: %w", what, err)
	}
	return id, nil
}

// queryAll runs query and scans every row with scan.
func queryAll[T any](db *sql.DB, what string, scan func(*sql.Rows, *T) error, query string, args ...any) ([]T, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: query %s: %w", what, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var v T
		if err := scan(rows, &v); err != nil {
			return nil, fmt.Errorf("storage: scan %s: %w", what, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", what, err)
	}
	return out, nil
}

// SaveScore records a score for gameID and returns its row ID.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	return s.insert("score", "INSERT INTO scores (game_id, score) VALUES (?, ?)", gameID, score)
}

// TopScores returns the best limit scores of gameID, highest first.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return queryAll(s.db, "scores", func(rows *sql.Rows, e *ScoreEntry) error {
		var created any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &created); err != nil {
			return err
		}
		e.CreatedAt = parseTime(created)
		return nil
	}, `SELECT id, game_id, score, created_at FROM scores
		WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?`, gameID, limit)
}

// HighScore returns the best score of gameID, or 0.
func (s *Store) HighScore(gameID string) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM scores WHERE game_id = ?", gameID).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: query high score: %w", err)
	}
	return int(best.Int64), nil
}

// ClearScores deletes the scores and results of gameID.
func (s *Store) ClearScores(gameID string) error {
	for _, table := range []string{"scores", "results"} {
		if _, err := s.db.Exec("DELETE FROM "+table+" WHERE game_id = ?", gameID); err != nil {
			return fmt.Errorf("storage: clear %s: %w", table, err)
		}
	}
	return nil
}

// SaveResult records a finished game.
func (s *Store) SaveResult(gameID string, res core.GameResult) (int64, error) {
	return s.insert("result",
		`INSERT INTO results (game_id, outcome, score, max_tile, moves, board_size)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		gameID, res.Outcome, res.Score, res.MaxTile, res.Moves, res.BoardSize)
}

// RecentResults returns the latest finished games of gameID, newest first.
func (s *Store) RecentResults(gameID string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return queryAll(s.db, "results", func(rows *sql.Rows, e *ResultEntry) error {
		var created any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Outcome, &e.Score, &e.MaxTile, &e.Moves, &e.BoardSize, &created); err != nil {
			return err
		}
		e.CreatedAt = parseTime(created)
		return nil
	}, `SELECT id, game_id, outcome, score, max_tile, moves, board_size, created_at FROM results
		WHERE game_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, gameID, limit)
}

// GetGameStats aggregates the recorded results of gameID.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var last any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(outcome = ?), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(MAX(max_tile), 0),
		        COALESCE(AVG(score), 0),
		        MAX(created_at)
		 FROM results WHERE game_id = ?`,
		core.OutcomeWon, gameID,
	).Scan(&stats.GamesCount, &stats.Wins, &stats.HighScore, &stats.BestTile, &stats.AvgScore, &last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: game stats: %w", err)
	}
	stats.LastPlayed = parseTime(last)
	return stats, nil
}
