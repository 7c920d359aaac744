// Package storage provides SQLite-based persistence for snake runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// Run is a finished game as reported by a host.
type Run struct {
	RunID   string // Generated when empty
	Variant string
	Player  string
	Score   int
	Length  int
	Ticks   uint64
	Outcome string // "game_over" or "board_full"
	Cause   string
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	RunID     string
	Variant   string
	Player    string
	Score     int
	Length    int
	Ticks     uint64
	Outcome   string
	Cause     string
	CreatedAt time.Time
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and applies pending migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Several SSH sessions may write at once.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate applies the embedded goose migrations.
func (s *Store) migrate(ctx context.Context) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, fsys)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished run and returns the stored entry's ID and run ID.
func (s *Store) SaveScore(run Run) (int64, string, error) {
	if run.Variant == "" {
		return 0, "", errors.New("storage: cannot save score: empty variant")
	}
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	if run.Outcome == "" {
		run.Outcome = "game_over"
	}

	result, err := s.db.Exec(
		`INSERT INTO scores (run_id, variant, player, score, length, ticks, outcome, cause)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Variant, run.Player, run.Score, run.Length, int64(run.Ticks), run.Outcome, run.Cause,
	)
	if err != nil {
		return 0, "", fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, "", fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, run.RunID, nil
}

const selectScores = `SELECT id, run_id, variant, player, score, length, ticks, outcome, cause, created_at FROM scores`

// TopScores retrieves the top N scores for the given variant.
// Results are ordered by score descending; earlier runs win ties.
func (s *Store) TopScores(variant string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(selectScores+` WHERE variant = ? ORDER BY score DESC, id ASC LIMIT ?`, variant, limit)
}

// AllScores retrieves all scores for the given variant (no limit).
func (s *Store) AllScores(variant string) ([]ScoreEntry, error) {
	return s.queryScores(selectScores+` WHERE variant = ? ORDER BY score DESC, id ASC`, variant)
}

// ScoreByRun retrieves one entry by its run ID. It returns nil when no run matches.
func (s *Store) ScoreByRun(runID string) (*ScoreEntry, error) {
	entries, err := s.queryScores(selectScores+` WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var ticks int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.Variant, &e.Player, &e.Score, &e.Length, &ticks, &e.Outcome, &e.Cause, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given variant.
// Returns 0 if no scores exist.
func (s *Store) HighScore(variant string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE variant = ?",
		variant,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Rank returns the 1-based leaderboard position a score would take for the variant.
func (s *Store) Rank(variant string, score int) (int, error) {
	var better int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM scores WHERE variant = ? AND score > ?",
		variant, score,
	).Scan(&better)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query rank: %w", err)
	}
	return better + 1, nil
}

// ClearScores deletes all scores for the given variant.
func (s *Store) ClearScores(variant string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE variant = ?", variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a variant.
type GameStats struct {
	Variant    string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	BestLength int
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific variant.
func (s *Store) GetGameStats(variant string) (*GameStats, error) {
	stats := &GameStats{Variant: variant}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0),
		        COALESCE(MAX(length), 0), MAX(created_at)
		 FROM scores WHERE variant = ?`,
		variant,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.BestLength, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllGamesStats retrieves statistics for every variant that has been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT variant, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(length), MAX(created_at)
		 FROM scores
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.Variant, &gs.GamesCount, &gs.HighScore, &gs.AvgScore, &gs.TotalScore, &gs.BestLength, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.Variant] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and the string form SQLite may return for DATETIME.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, strings.TrimSpace(t)); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
