package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant, or pick one from the menu.

Controls:
  Arrows/WASD/HJKL - Steer
  Mouse drag       - Steer (swipe)
  Mouse click      - Steer toward the clicked cell
  P/Space          - Pause
  R                - Restart (paused or after game over)
  B/Esc            - Back to menu (paused or after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slow start, gentle speed-up
  normal - Config timing, speeds up as you score
  hard   - Fast start, steep speed-up
  fixed  - Constant speed from the config

Examples:
  snake play
  snake play classic
  snake play marathon --difficulty hard
  snake play custom --config ./my-snake.yaml
  snake play classic --seed 42`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeVariants,
	RunE:              runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, preset, err := loadSettings()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	logPath := filepath.Join(config.Dir(), "snake.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(logPath), err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "snake")
	if err != nil {
		return err
	}

	settings := tui.Settings{
		Config: cfg,
		Preset: preset,
		Seed:   flagSeed,
		Player: os.Getenv("USER"),
		Logger: logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without score storage", "error", err)
		// Continue without storage - game still works
	} else {
		defer store.Close()
		settings.Scores = store
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	var session tui.SessionModel
	if len(args) == 0 {
		session = tui.NewSessionModel(settings, width, height)
	} else {
		session, err = tui.NewPlaySession(settings, args[0], width, height)
		if err != nil {
			return unknownVariant(args[0])
		}
	}

	if err := tui.Run(session); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
