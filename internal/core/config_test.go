package core

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RuntimeConfig)
		field  string
	}{
		{"zero cell size", func(c *RuntimeConfig) { c.CellSize = 0 }, "cell size"},
		{"negative cell size", func(c *RuntimeConfig) { c.CellSize = -20 }, "cell size"},
		{"empty board", func(c *RuntimeConfig) { c.Board = Board{} }, "board"},
		{"too narrow", func(c *RuntimeConfig) { c.Board = Board{Cols: 2, Rows: 10} }, "board"},
		{"too short moving up", func(c *RuntimeConfig) {
			c.Board = Board{Cols: 10, Rows: 2}
			c.StartDirection = DirUp
		}, "board"},
		{"no room for food", func(c *RuntimeConfig) { c.Board = Board{Cols: 3, Rows: 1} }, "board"},
		{"zero interval", func(c *RuntimeConfig) { c.TickInterval = 0 }, "tick interval"},
		{"zero length", func(c *RuntimeConfig) { c.InitialLength = 0 }, "initial length"},
		{"bad direction", func(c *RuntimeConfig) { c.StartDirection = Direction(9) }, "start direction"},
		{"bad boundary", func(c *RuntimeConfig) { c.Boundary = "bounce" }, "boundary"},
		{"speed every", func(c *RuntimeConfig) {
			c.Speed.Enabled = true
			c.Speed.Every = 0
		}, "speed.every"},
		{"speed floor above interval", func(c *RuntimeConfig) {
			c.Speed.Enabled = true
			c.Speed.Floor = time.Second
		}, "speed.floor"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v should match ErrInvalidConfig", err)
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error %v should be a *ConfigurationError", err)
			}
			if cfgErr.Field != tc.field {
				t.Errorf("Field = %q, expected %q", cfgErr.Field, tc.field)
			}
		})
	}
}

func TestSpeedPolicyNext(t *testing.T) {
	p := SpeedPolicy{Enabled: true, Every: 5, Step: 10 * time.Millisecond, Floor: 50 * time.Millisecond}

	tests := []struct {
		name     string
		current  time.Duration
		score    int
		expected time.Duration
	}{
		{"not a multiple", 100 * time.Millisecond, 4, 100 * time.Millisecond},
		{"multiple", 100 * time.Millisecond, 5, 90 * time.Millisecond},
		{"second step", 90 * time.Millisecond, 10, 80 * time.Millisecond},
		{"floor", 55 * time.Millisecond, 25, 50 * time.Millisecond},
		{"at floor", 50 * time.Millisecond, 30, 50 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Next(tc.current, tc.score); got != tc.expected {
				t.Errorf("Next(%s, %d) = %s, expected %s", tc.current, tc.score, got, tc.expected)
			}
		})
	}

	p.Enabled = false
	if got := p.Next(100*time.Millisecond, 5); got != 100*time.Millisecond {
		t.Errorf("Disabled policy should not change the interval, got %s", got)
	}
}
