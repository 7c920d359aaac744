// snake is a terminal snake game with local and SSH play.
//
// Usage:
//
//	snake list               - List available variants
//	snake play [variant]     - Play a variant (menu when omitted)
//	snake serve              - Start SSH and HTTP servers for remote play
//	snake scores <variant>   - Show high scores for a variant
//	snake config             - Print the resolved configuration
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.snake/scores.db)
//	--config <path>       - Use a custom snake.yaml
//	--difficulty <preset> - Skip the difficulty picker
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"

	// Import variants to register them
	_ "github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is a terminal snake game. Steer the snake to the food,
grow longer and avoid the walls and your own tail.

Available commands:
  list     - Show all variants
  play     - Play a variant directly, or pick one from the menu
  serve    - Start SSH server for remote play plus a score API
  scores   - View high scores
  config   - Print the resolved configuration

Examples:
  snake play
  snake play wrap --difficulty hard
  snake serve --ssh :2222 --http :8080
  snake scores classic`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          prefix,
	}), nil
}

// loadSettings resolves the configuration and difficulty flags and checks
// the configuration under every preset the session can apply.
func loadSettings() (config.SnakeConfig, config.DifficultyPreset, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.SnakeConfig{}, "", err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.SnakeConfig{}, "", err
	}
	if err := cfg.Validate(); err != nil {
		return config.SnakeConfig{}, "", err
	}
	// Without --difficulty the player may pick any preset later.
	if preset != "" {
		err = cfg.ValidatePresets(preset)
	} else {
		err = cfg.ValidatePresets()
	}
	if err != nil {
		return config.SnakeConfig{}, "", err
	}
	return cfg, preset, nil
}
