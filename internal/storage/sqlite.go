// Package storage persists finished snake games in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for game records.
type Store struct {
	db *sql.DB
}

// Record is one finished game.
type Record struct {
	ID         string
	Player     string
	Score      int
	Length     int
	Moves      uint64
	Width      int
	Height     int
	Won        bool
	Difficulty string
	Duration   time.Duration
	CreatedAt  time.Time
}

// GameStats contains aggregated statistics over all recorded games.
type GameStats struct {
	Games      int
	Wins       int
	HighScore  int
	AvgScore   float64
	MaxLength  int
	TotalMoves int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			length INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_top ON games(score DESC);
		CREATE INDEX IF NOT EXISTS idx_games_player ON games(player);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame records a finished game and returns its ID.
// A record without an ID is assigned a random UUID.
func (s *Store) SaveGame(rec Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO games
		 (id, player, score, length, moves, width, height, won, difficulty, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Player,
		rec.Score,
		rec.Length,
		int64(rec.Moves),
		rec.Width,
		rec.Height,
		rec.Won,
		rec.Difficulty,
		rec.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}

	return rec.ID, nil
}

const selectGames = `SELECT id, player, score, length, moves, width, height, won, difficulty, duration_ms, created_at
	 FROM games`

// TopGames retrieves the N best games, highest score first.
// Ties go to the longer snake, then to the earlier game.
func (s *Store) TopGames(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		selectGames+` ORDER BY score DESC, length DESC, rowid ASC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	return scanRecords(rows)
}

// AllGames retrieves every recorded game, newest first.
func (s *Store) AllGames() ([]Record, error) {
	rows, err := s.db.Query(selectGames + ` ORDER BY rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	return scanRecords(rows)
}

// PlayerGames retrieves the games of one player, highest score first.
func (s *Store) PlayerGames(player string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		selectGames+` WHERE player = ? ORDER BY score DESC, rowid ASC LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player games: %w", err)
	}
	return scanRecords(rows)
}

// GameByID retrieves a single game. It returns nil when no game has that ID.
func (s *Store) GameByID(id string) (*Record, error) {
	rows, err := s.db.Query(selectGames+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game: %w", err)
	}
	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r          Record
			moves      int64
			durationMS int64
			createdAt  any
		)
		if err := rows.Scan(
			&r.ID,
			&r.Player,
			&r.Score,
			&r.Length,
			&moves,
			&r.Width,
			&r.Height,
			&r.Won,
			&r.Difficulty,
			&durationMS,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Moves = uint64(moves)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseTime handles both time.Time and string values of a DATETIME column.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest recorded score, or 0 if no games exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM games").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Stats returns aggregated statistics over all games.
func (s *Store) Stats() (*GameStats, error) {
	stats := &GameStats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MAX(length), 0), COALESCE(SUM(moves), 0)
		 FROM games`,
	).Scan(&stats.Games, &stats.Wins, &stats.HighScore, &stats.AvgScore, &stats.MaxLength, &stats.TotalMoves)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM games ORDER BY rowid DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// Clear deletes all recorded games.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM games"); err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	return nil
}
