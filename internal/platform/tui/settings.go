package tui

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Scores is the score store used by the terminal UI.
// A nil Scores disables persistence; the game still works.
type Scores interface {
	SaveScore(run storage.Run) (int64, string, error)
	HighScore(variant string) (int, error)
	Rank(variant string, score int) (int, error)
	TopScores(variant string, limit int) ([]storage.ScoreEntry, error)
	GetGameStats(variant string) (*storage.GameStats, error)
}

// Settings is shared by every game started from one session.
type Settings struct {
	Config config.SnakeConfig
	Preset config.DifficultyPreset // Empty asks the player to choose
	Seed   int64                   // 0 = random based on time
	Player string
	Scores Scores
	Logger *log.Logger
}

func (s Settings) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

// Runtime builds the engine configuration for a game on a screen of the
// given size. The preset adjusts timing; the board shrinks to the screen
// when the configuration allows it.
func (s Settings) Runtime(preset config.DifficultyPreset, width, height int) core.RuntimeConfig {
	cfg := s.Config
	config.ApplyPreset(&cfg, preset)

	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rc := cfg.Runtime(seed)
	if cfg.Board.FitTerminal {
		rc.Board = FitBoard(rc.Board, rc.CellSize, width, height)
	}
	return rc
}
