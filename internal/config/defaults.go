package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the hardcoded default configuration.
// It mirrors defaults/snake.yaml and is used when the embedded file cannot be parsed.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			Cols:        20,
			Rows:        20,
			CellSize:    1,
			FitTerminal: true,
		},
		Timing: TimingConfig{
			TickInterval: Duration(100 * time.Millisecond),
		},
		Rules: RulesConfig{
			Boundary:       "clamp",
			StartDirection: "right",
			InitialLength:  3,
		},
		Speed: SpeedConfig{
			Enabled: false,
			Every:   5,
			Step:    Duration(10 * time.Millisecond),
			Floor:   Duration(50 * time.Millisecond),
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
