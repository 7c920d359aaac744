// Package config provides YAML-based configuration loading and difficulty
// presets for the snake game.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Timing TimingConfig `yaml:"timing"`
	Rules  RulesConfig  `yaml:"rules"`
	Speed  SpeedConfig  `yaml:"speed"`
}

// BoardConfig defines the playing field.
type BoardConfig struct {
	Cols     int `yaml:"cols"`
	Rows     int `yaml:"rows"`
	CellSize int `yaml:"cell_size"`
	// FitTerminal shrinks the board to the terminal when it does not fit.
	FitTerminal bool `yaml:"fit_terminal"`
}

// TimingConfig defines the simulation clock.
type TimingConfig struct {
	TickInterval Duration `yaml:"tick_interval"`
}

// RulesConfig defines boundary handling and the starting snake.
type RulesConfig struct {
	Boundary       string `yaml:"boundary"`        // "clamp" or "wrap"
	StartDirection string `yaml:"start_direction"` // "up", "down", "left", "right"
	InitialLength  int    `yaml:"initial_length"`
}

// SpeedConfig defines how the tick interval shrinks as the score grows.
type SpeedConfig struct {
	Enabled bool     `yaml:"enabled"`
	Every   int      `yaml:"every"` // Points between speed-ups
	Step    Duration `yaml:"step"`  // Interval reduction per speed-up
	Floor   Duration `yaml:"floor"` // Shortest allowed interval
}

// Duration is a time.Duration written as a Go duration string in YAML ("120ms").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Runtime converts the file configuration into the engine's RuntimeConfig.
// Unknown direction names fall back to right; Validate on the result
// reports every other problem.
func (c SnakeConfig) Runtime(seed int64) core.RuntimeConfig {
	dir, _ := core.ParseDirection(c.Rules.StartDirection)
	return core.RuntimeConfig{
		Board:          core.Board{Cols: c.Board.Cols, Rows: c.Board.Rows},
		CellSize:       c.Board.CellSize,
		TickInterval:   time.Duration(c.Timing.TickInterval),
		Boundary:       core.Boundary(c.Rules.Boundary),
		StartDirection: dir,
		InitialLength:  c.Rules.InitialLength,
		Seed:           seed,
		Speed: core.SpeedPolicy{
			Enabled: c.Speed.Enabled,
			Every:   c.Speed.Every,
			Step:    time.Duration(c.Speed.Step),
			Floor:   time.Duration(c.Speed.Floor),
		},
	}
}

// Validate checks the configuration the same way the engine will at Reset.
func (c SnakeConfig) Validate() error {
	if _, ok := core.ParseDirection(c.Rules.StartDirection); !ok {
		return fmt.Errorf("config: unknown start_direction %q", c.Rules.StartDirection)
	}
	if err := c.Runtime(0).Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c SnakeConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
